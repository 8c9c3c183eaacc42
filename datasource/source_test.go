package datasource_test

import (
	"testing"

	"itchbook/datasource"
)

func TestCreateUnknownSource(t *testing.T) {
	_, err := datasource.Create("no-such-source", 20191230)
	if err == nil {
		t.Fatal("Create(unknown) returned nil error")
	}
	var unknown *datasource.UnknownSourceError
	if _, ok := err.(*datasource.UnknownSourceError); !ok {
		t.Errorf("Create(unknown) error = %T (%v), want %T", err, err, unknown)
	}
}

func TestCreateRegisteredSource(t *testing.T) {
	const name = "fake-for-test"
	datasource.Register(name, func(date int) (datasource.HistDataSource, error) {
		return nil, nil
	})

	src, err := datasource.Create(name, 1)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if src != nil {
		t.Errorf("Create() = %v, want nil (fake factory always returns nil)", src)
	}
}
