package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Server.validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Glossary.validate(); err != nil {
		return fmt.Errorf("glossary: %w", err)
	}
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.RateLimit.validate(); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}
	return nil
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (s *ServerConfig) validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("port must be in 1..65535 (got %d)", s.Port)
	}
	if s.ReadTimeout <= 0 || s.WriteTimeout <= 0 || s.IdleTimeout <= 0 {
		return fmt.Errorf("read, write and idle timeouts must be > 0")
	}
	if s.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be > 0 (got %v)", s.ShutdownTimeout)
	}
	if s.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be > 0 (got %d)", s.MaxBodyBytes)
	}
	return nil
}

func (g *GlossaryConfig) validate() error {
	if strings.TrimSpace(g.Path) == "" {
		return fmt.Errorf("path is required")
	}
	switch strings.ToLower(strings.TrimSpace(g.Format)) {
	case "", "auto", "json", "yaml", "yml":
	default:
		return fmt.Errorf("format must be one of auto, json, yaml (got %q)", g.Format)
	}
	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(l.Format) {
	case "json", "text":
		return nil
	default:
		return fmt.Errorf("format must be json or text (got %q)", l.Format)
	}
}

func (r *RateLimitConfig) validate() error {
	if r.RequestsPerMinute < 0 {
		return fmt.Errorf("requests_per_minute must be >= 0 (got %d)", r.RequestsPerMinute)
	}
	if r.RequestsPerMinute > 0 && r.Burst < 1 {
		return fmt.Errorf("burst must be >= 1 when limiting is enabled (got %d)", r.Burst)
	}
	return nil
}
