// Package config loads replay configuration from environment variables
// (optionally backed by a .env file), following the getenv-with-default
// style every config loader in the corpus uses rather than a flags-only
// or viper-style configuration library.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything a replay run needs.
type Config struct {
	Replay    ReplayConfig
	Kafka     KafkaConfig
	Checkpoint CheckpointConfig
	GRPC      GRPCConfig
}

// ReplayConfig selects which historical file to replay and how.
type ReplayConfig struct {
	DataRoot string   // directory containing nasdaq_itch.<date>.dat
	Date     int      // YYYYMMDD
	Symbols  []string // empty means replay every symbol in the file
	Depth    int       // ladder depth for printing/streaming
}

// KafkaConfig controls the optional publish/tee side channels.
type KafkaConfig struct {
	Brokers     []string
	FeedTopic   string
	TeeTopic    string
	FeedEnabled bool
	TeeEnabled  bool
}

// CheckpointConfig controls resumable replay progress tracking.
type CheckpointConfig struct {
	Enabled bool
	Dir     string
}

// GRPCConfig controls the optional level-streaming server.
type GRPCConfig struct {
	Enabled bool
	Port    int
}

// Load reads configuration from the environment, loading a .env file
// first if one is present (errors loading .env are ignored, matching
// the convention that .env is optional in every deployment).
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		Replay: ReplayConfig{
			DataRoot: getEnvString("ITCHBOOK_DATA_ROOT", "."),
			Date:     getEnvInt("ITCHBOOK_REPLAY_DATE", 0),
			Symbols:  getEnvList("ITCHBOOK_SYMBOLS", nil),
			Depth:    getEnvInt("ITCHBOOK_DEPTH", 5),
		},
		Kafka: KafkaConfig{
			Brokers:     getEnvList("ITCHBOOK_KAFKA_BROKERS", []string{"localhost:9092"}),
			FeedTopic:   getEnvString("ITCHBOOK_FEED_TOPIC", "itchbook.feed"),
			TeeTopic:    getEnvString("ITCHBOOK_TEE_TOPIC", "itchbook.raw"),
			FeedEnabled: getEnvBool("ITCHBOOK_FEED_ENABLED", false),
			TeeEnabled:  getEnvBool("ITCHBOOK_TEE_ENABLED", false),
		},
		Checkpoint: CheckpointConfig{
			Enabled: getEnvBool("ITCHBOOK_CHECKPOINT_ENABLED", false),
			Dir:     getEnvString("ITCHBOOK_CHECKPOINT_DIR", "./checkpoint"),
		},
		GRPC: GRPCConfig{
			Enabled: getEnvBool("ITCHBOOK_GRPC_ENABLED", false),
			Port:    getEnvInt("ITCHBOOK_GRPC_PORT", 50051),
		},
	}, nil
}

func getEnvString(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
