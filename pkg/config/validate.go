package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure. The API key is
// not checked; a missing key surfaces as an unavailable backend at runtime.
func (c *Config) Validate() error {
	var errs []error

	// server.port must be positive.
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be > 0, got %d", c.Server.Port))
	}

	// engine.provider must be a known value.
	switch c.Engine.Provider {
	case "openai", "litellm":
		// valid
	default:
		errs = append(errs, fmt.Errorf("engine.provider must be \"openai\" or \"litellm\", got %q", c.Engine.Provider))
	}

	// engine.base_url is required and must be an absolute URL.
	if c.Engine.BaseURL == "" {
		errs = append(errs, fmt.Errorf("engine.base_url is required"))
	} else if u, err := url.Parse(c.Engine.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("engine.base_url must be an absolute URL, got %q", c.Engine.BaseURL))
	}

	if c.Engine.Model == "" {
		errs = append(errs, fmt.Errorf("engine.model is required"))
	}

	// Code generation makes two sequential completions, each bounded by
	// engine.timeout, and both must finish inside server.write_timeout.
	// A zero write timeout means no deadline.
	if c.Server.WriteTimeout > 0 && c.Engine.Timeout > 0 && c.Server.WriteTimeout <= 2*c.Engine.Timeout {
		errs = append(errs, fmt.Errorf("server.write_timeout (%s) must exceed twice engine.timeout (%s)",
			c.Server.WriteTimeout, c.Engine.Timeout))
	}

	if c.Observability.Metrics.Enabled && !strings.HasPrefix(c.Observability.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("observability.metrics.path must start with \"/\", got %q", c.Observability.Metrics.Path))
	}

	return errors.Join(errs...)
}
