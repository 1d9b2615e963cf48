package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/ihimanshusharma33/video-demo/internal/room"
)

const (
	envPort            = "PORT"
	envLogLevel        = "LOG_LEVEL"
	envRoomPolicy      = "ROOM_POLICY"
	envShutdownTimeout = "SHUTDOWN_TIMEOUT"
	envAllowedOrigins  = "ALLOWED_ORIGINS"
)

type Config struct {
	Port            string
	LogLevel        zapcore.Level
	Policy          room.Policy
	ShutdownTimeout time.Duration
	// AllowedOrigins are websocket origin patterns; "*" allows any origin.
	AllowedOrigins []string
}

// Load reads configuration from the environment, with an optional .env
// file layered underneath.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, so tests can feed it a
// plain map.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:            "3000",
		LogLevel:        zapcore.InfoLevel,
		Policy:          room.PolicyPeerPair,
		ShutdownTimeout: 10 * time.Second,
		AllowedOrigins:  []string{"*"},
	}

	if v := getenv(envPort); v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("%s: %q is not a port number", envPort, v)
		}
		cfg.Port = v
	}

	if v := getenv(envLogLevel); v != "" {
		level, err := zapcore.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", envLogLevel, err)
		}
		cfg.LogLevel = level
	}

	if v := getenv(envRoomPolicy); v != "" {
		switch room.Policy(v) {
		case room.PolicyPeerPair, room.PolicyHostCentric:
			cfg.Policy = room.Policy(v)
		default:
			return Config{}, fmt.Errorf("%s: %q is not a room policy (want %q or %q)",
				envRoomPolicy, v, room.PolicyPeerPair, room.PolicyHostCentric)
		}
	}

	if v := getenv(envShutdownTimeout); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs < 0 {
			return Config{}, fmt.Errorf("%s: %q is not a number of seconds", envShutdownTimeout, v)
		}
		cfg.ShutdownTimeout = time.Duration(secs) * time.Second
	}

	if v := getenv(envAllowedOrigins); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.AllowedOrigins = origins
		}
	}

	return cfg, nil
}
