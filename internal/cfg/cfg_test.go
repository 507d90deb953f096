package cfg

import (
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/DRSN-tech/price-compare/pkg/logger"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "http://grocery.local/")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("MINIO_ENDPOINT", "")

	cfg, err := Load(logger.NewNopLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Upstream.BaseURL != "http://grocery.local" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.Upstream.BaseURL)
	}
	if cfg.Kafka.Enabled {
		t.Error("kafka must be disabled without brokers")
	}
	if cfg.Minio.Enabled {
		t.Error("minio must be disabled without endpoint")
	}
	if cfg.Http.Port != "8080" {
		t.Errorf("expected default port, got %q", cfg.Http.Port)
	}
	if cfg.Redis.SearchCacheTTL != 3*time.Minute {
		t.Errorf("unexpected cache ttl %v", cfg.Redis.SearchCacheTTL)
	}
	if cfg.RateLimit.Requests != 60 || cfg.RateLimit.Window != time.Minute {
		t.Errorf("unexpected rate limit %+v", cfg.RateLimit)
	}
}

func TestLoad_MissingUpstream(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "")

	if _, err := Load(logger.NewNopLogger()); err == nil {
		t.Fatal("expected error without UPSTREAM_BASE_URL")
	}
}

func TestLoad_KafkaAndMinio(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "http://grocery.local")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("KAFKA_TOPIC", "events")
	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("MINIO_PRESIGN_TTL", "1h")

	cfg, err := Load(logger.NewNopLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.Kafka.Enabled || len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "kafka-2:9092" {
		t.Errorf("unexpected kafka cfg %+v", cfg.Kafka)
	}
	if cfg.Kafka.Topic != "events" {
		t.Errorf("unexpected topic %q", cfg.Kafka.Topic)
	}
	if !cfg.Minio.Enabled || cfg.Minio.BucketName != "price-charts" || cfg.Minio.PresignTTL != time.Hour {
		t.Errorf("unexpected minio cfg %+v", cfg.Minio)
	}
}

func TestParseIntEnv(t *testing.T) {
	t.Setenv("SOME_INT", "abc")

	if _, err := parseIntEnv("SOME_INT", 1); !errors.Is(err, e.ErrIncorrectEnvVariable) {
		t.Errorf("expected ErrIncorrectEnvVariable, got %v", err)
	}
}
