package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	switch c.Store.Backend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("store.backend must be json or sqlite (got %q)", c.Store.Backend)
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		return fmt.Errorf("store.path must not be empty")
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be > 0 (got %v)", c.Fetch.Timeout)
	}
	if c.Fetch.MaxBodyBytes <= 0 {
		return fmt.Errorf("fetch.max_body_bytes must be > 0 (got %d)", c.Fetch.MaxBodyBytes)
	}
	if c.Fetch.Workers <= 0 {
		return fmt.Errorf("fetch.workers must be > 0 (got %d)", c.Fetch.Workers)
	}

	if c.Study.SampleSize <= 0 {
		return fmt.Errorf("study.sample_size must be > 0 (got %d)", c.Study.SampleSize)
	}

	return nil
}
