package config_test

import (
	"testing"

	"itchbook/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"ITCHBOOK_DATA_ROOT", "ITCHBOOK_REPLAY_DATE", "ITCHBOOK_SYMBOLS", "ITCHBOOK_DEPTH",
		"ITCHBOOK_KAFKA_BROKERS", "ITCHBOOK_FEED_TOPIC", "ITCHBOOK_TEE_TOPIC",
		"ITCHBOOK_FEED_ENABLED", "ITCHBOOK_TEE_ENABLED",
		"ITCHBOOK_CHECKPOINT_ENABLED", "ITCHBOOK_CHECKPOINT_DIR",
		"ITCHBOOK_GRPC_ENABLED", "ITCHBOOK_GRPC_PORT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Replay.DataRoot != "." {
		t.Errorf("Replay.DataRoot = %q, want \".\"", cfg.Replay.DataRoot)
	}
	if cfg.Replay.Depth != 5 {
		t.Errorf("Replay.Depth = %d, want 5", cfg.Replay.Depth)
	}
	if cfg.Replay.Symbols != nil {
		t.Errorf("Replay.Symbols = %v, want nil", cfg.Replay.Symbols)
	}
	if cfg.Kafka.FeedEnabled || cfg.Kafka.TeeEnabled {
		t.Errorf("Kafka side channels should default to disabled")
	}
	if cfg.GRPC.Port != 50051 {
		t.Errorf("GRPC.Port = %d, want 50051", cfg.GRPC.Port)
	}
}

func TestLoadOverridesFromEnv(t *testing.T) {
	t.Setenv("ITCHBOOK_REPLAY_DATE", "20191230")
	t.Setenv("ITCHBOOK_SYMBOLS", "AAPL, MSFT ,GOOGL")
	t.Setenv("ITCHBOOK_DEPTH", "10")
	t.Setenv("ITCHBOOK_FEED_ENABLED", "true")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Replay.Date != 20191230 {
		t.Errorf("Replay.Date = %d, want 20191230", cfg.Replay.Date)
	}
	want := []string{"AAPL", "MSFT", "GOOGL"}
	if len(cfg.Replay.Symbols) != len(want) {
		t.Fatalf("Replay.Symbols = %v, want %v", cfg.Replay.Symbols, want)
	}
	for i, s := range want {
		if cfg.Replay.Symbols[i] != s {
			t.Errorf("Replay.Symbols[%d] = %q, want %q", i, cfg.Replay.Symbols[i], s)
		}
	}
	if cfg.Replay.Depth != 10 {
		t.Errorf("Replay.Depth = %d, want 10", cfg.Replay.Depth)
	}
	if !cfg.Kafka.FeedEnabled {
		t.Errorf("Kafka.FeedEnabled = false, want true")
	}
}
