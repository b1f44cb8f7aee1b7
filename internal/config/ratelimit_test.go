package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvBool(t *testing.T) {
	t.Setenv("RL_TEST_BOOL", "")
	assert.True(t, envBool("RL_TEST_BOOL", true))
	assert.False(t, envBool("RL_TEST_BOOL", false))

	for _, v := range []string{"1", "true", "TRUE", "yes", "on"} {
		t.Setenv("RL_TEST_BOOL", v)
		assert.True(t, envBool("RL_TEST_BOOL", false), v)
	}
	for _, v := range []string{"0", "false", "no", "OFF"} {
		t.Setenv("RL_TEST_BOOL", v)
		assert.False(t, envBool("RL_TEST_BOOL", true), v)
	}
	// Garbage keeps the default.
	t.Setenv("RL_TEST_BOOL", "maybe")
	assert.True(t, envBool("RL_TEST_BOOL", true))
}

func TestEnvIntAndDur(t *testing.T) {
	t.Setenv("RL_TEST_INT", "17")
	assert.Equal(t, 17, envInt("RL_TEST_INT", 5))
	t.Setenv("RL_TEST_INT", "not-a-number")
	assert.Equal(t, 5, envInt("RL_TEST_INT", 5))

	t.Setenv("RL_TEST_DUR", "250ms")
	assert.Equal(t, 250*time.Millisecond, envDur("RL_TEST_DUR", time.Second))
	t.Setenv("RL_TEST_DUR", "bogus")
	assert.Equal(t, time.Second, envDur("RL_TEST_DUR", time.Second))
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	for _, k := range []string{"RATE_LIMIT_ENABLED", "RATE_LIMIT_CAPACITY",
		"RATE_LIMIT_REFILL_TOKENS", "RATE_LIMIT_REFILL_INTERVAL", "RATE_LIMIT_TTL",
		"RATE_LIMIT_KEY_STRATEGY", "RATE_LIMIT_PREFIX", "RATE_LIMIT_DEBUG",
		"RATE_LIMIT_BURST", "RATE_LIMIT_REFILL_EVERY"} {
		t.Setenv(k, "")
	}
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)               // clamped up from 0
	assert.Equal(t, 10*time.Second, cfg.TTL)       // at least 5x refill interval
	assert.Equal(t, "ip_user_route", cfg.KeyStrategy)
}

func TestLoadRateLimitConfigBurstOverride(t *testing.T) {
	for _, k := range []string{"RATE_LIMIT_CAPACITY", "RATE_LIMIT_BURST",
		"RATE_LIMIT_REFILL_EVERY", "RATE_LIMIT_REFILL_TOKENS", "RATE_LIMIT_REFILL_INTERVAL"} {
		t.Setenv(k, "")
	}
	t.Setenv("RATE_LIMIT_BURST", "120")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "500ms")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 120, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 500*time.Millisecond, cfg.RefillInterval)
}
