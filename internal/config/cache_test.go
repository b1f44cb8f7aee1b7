package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseMethods(t *testing.T) {
	m := parseMethods("get, POST ,head")
	assert.True(t, m["GET"])
	assert.True(t, m["POST"])
	assert.True(t, m["HEAD"])
	assert.False(t, m["DELETE"])

	assert.Empty(t, parseMethods(""))
	assert.Empty(t, parseMethods(" , ,"))
}

func TestParseDur(t *testing.T) {
	assert.Equal(t, 90*time.Second, parseDur("90s"))
	assert.Equal(t, 2*time.Minute, parseDur("2m"))
	// Bad input falls back to one second rather than disabling the cache.
	assert.Equal(t, time.Second, parseDur("nope"))
}

func TestGetenvDefault(t *testing.T) {
	t.Setenv("CACHE_TEST_KEY", "")
	assert.Equal(t, "fallback", getenv("CACHE_TEST_KEY", "fallback"))
	t.Setenv("CACHE_TEST_KEY", "set")
	assert.Equal(t, "set", getenv("CACHE_TEST_KEY", "fallback"))
}

func TestLoadCacheConfigDefaults(t *testing.T) {
	for _, k := range []string{"CACHE_ENABLED", "CACHE_METHODS", "CACHE_TTL",
		"CACHE_KEY_STRATEGY", "CACHE_PREFIX", "CACHE_MAX_BODY_BYTES"} {
		t.Setenv(k, "")
	}
	cfg := LoadCacheConfig()
	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.Methods["GET"])
	assert.Equal(t, "gigcache", cfg.Prefix)
	assert.Equal(t, 60*time.Second, cfg.TTL)
	assert.Equal(t, "route_query", cfg.KeyStrategy)
}
