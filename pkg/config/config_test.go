package config_test

import (
	"testing"
	"time"

	"github.com/limbo/missions/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestTypedGetters(t *testing.T) {
	cfg := config.New()
	t.Setenv("TEST_TTL", "90s")
	t.Setenv("TEST_BAD_TTL", "soon")
	t.Setenv("TEST_LIMIT", "15")
	t.Setenv("TEST_BAD_LIMIT", "many")
	t.Setenv("TEST_ADDR", ":9090")

	assert.Equal(t, 90*time.Second, cfg.GetDuration("TEST_TTL", time.Minute))
	assert.Equal(t, time.Minute, cfg.GetDuration("TEST_BAD_TTL", time.Minute))
	assert.Equal(t, time.Minute, cfg.GetDuration("TEST_UNSET_TTL", time.Minute))

	assert.Equal(t, 15, cfg.GetInt("TEST_LIMIT", 30))
	assert.Equal(t, 30, cfg.GetInt("TEST_BAD_LIMIT", 30))

	assert.Equal(t, ":9090", cfg.GetString("TEST_ADDR"))
	assert.Equal(t, ":8080", cfg.GetStringOr("TEST_UNSET_ADDR", ":8080"))
}
