package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/ihimanshusharma33/video-demo/internal/room"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel)
	assert.Equal(t, room.PolicyPeerPair, cfg.Policy)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"PORT":             "8080",
		"LOG_LEVEL":        "debug",
		"ROOM_POLICY":      "host",
		"SHUTDOWN_TIMEOUT": "3",
		"ALLOWED_ORIGINS":  "app.example.com, staging.example.com",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
	assert.Equal(t, room.PolicyHostCentric, cfg.Policy)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"app.example.com", "staging.example.com"}, cfg.AllowedOrigins)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := []struct {
		name string
		vars map[string]string
	}{
		{"bad port", map[string]string{"PORT": "not-a-port"}},
		{"bad level", map[string]string{"LOG_LEVEL": "loud"}},
		{"bad policy", map[string]string{"ROOM_POLICY": "anarchy"}},
		{"bad timeout", map[string]string{"SHUTDOWN_TIMEOUT": "soon"}},
		{"negative timeout", map[string]string{"SHUTDOWN_TIMEOUT": "-1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromEnv(env(tc.vars))
			assert.Error(t, err)
		})
	}
}
