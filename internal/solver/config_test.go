package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_DisabledByDefault(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 5000, cfg.TimeoutMs)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("VICTUS_SOLVER_ENABLED", "true")
	t.Setenv("VICTUS_SOLVER_ENDPOINT", "http://solver.internal:9000")
	t.Setenv("VICTUS_SOLVER_TIMEOUT_MS", "2500")
	t.Setenv("VICTUS_SOLVER_MAX_RETRIES", "3")

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "http://solver.internal:9000", cfg.Endpoint)
	assert.Equal(t, 2500, cfg.TimeoutMs)
	assert.Equal(t, 3, cfg.MaxRetries)
}

func TestLoadConfig_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("VICTUS_SOLVER_TIMEOUT_MS", "not-a-number")
	t.Setenv("VICTUS_SOLVER_MAX_RETRIES", "-2")

	cfg := LoadConfig()

	assert.Equal(t, 5000, cfg.TimeoutMs)
	assert.Equal(t, 1, cfg.MaxRetries)
}
