package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvDefaults(t *testing.T) {
	cfg := LoadEnv()

	assert.Equal(t, "dev", cfg.Server.AppEnv)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, "sales.events", cfg.Kafka.Topic)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 3, cfg.Inventory.AlarmQuantity)

	require.NoError(t, cfg.Validate())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ALARM_QUANTITY", "7")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "25")

	cfg := LoadEnv()

	assert.Equal(t, 7, cfg.Inventory.AlarmQuantity)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 25, cfg.Postgres.MaxOpenConns)
}

func TestLoadEnvIgnoresMalformedInt(t *testing.T) {
	t.Setenv("ALARM_QUANTITY", "not a number")

	cfg := LoadEnv()
	assert.Equal(t, 3, cfg.Inventory.AlarmQuantity)
}

func TestValidate(t *testing.T) {
	cfg := LoadEnv()
	cfg.Inventory.AlarmQuantity = -1
	assert.Error(t, cfg.Validate())

	cfg = LoadEnv()
	cfg.Postgres.Host = ""
	assert.Error(t, cfg.Validate())

	cfg = LoadEnv()
	cfg.Kafka.Topic = ""
	assert.Error(t, cfg.Validate())
}
