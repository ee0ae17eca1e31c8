package server

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds backend API settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// AllowedOrigins lists CORS origins. "*" allows any origin.
	// http://localhost:PORT is always allowed.
	AllowedOrigins []string

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
	}
}

// ConfigFromEnv reads CURIO_LISTEN_ADDR and CURIO_CORS_ORIGINS
// (comma separated).
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if a := os.Getenv("CURIO_LISTEN_ADDR"); a != "" {
		cfg.Addr = a
	}
	if o := os.Getenv("CURIO_CORS_ORIGINS"); o != "" {
		for _, origin := range strings.Split(o, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}
	return cfg
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %v", c.ShutdownTimeout)
	}
	return nil
}

func (c Config) allowOrigin(origin string) bool {
	if strings.HasPrefix(origin, "http://localhost:") {
		return true
	}
	for _, o := range c.AllowedOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}
