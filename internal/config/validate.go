package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Import.validate(); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	if c.Queue.Enabled {
		if err := c.Queue.validate(); err != nil {
			return fmt.Errorf("queue: %w", err)
		}
	}

	if c.RateLimit.ImportPerMinute <= 0 {
		return fmt.Errorf("rate_limit.import_per_minute must be > 0 (got %d)", c.RateLimit.ImportPerMinute)
	}

	return nil
}

func (i *ImportConfig) validate() error {
	if i.MaxFileSize <= 0 {
		return fmt.Errorf("max_file_size must be > 0 (got %d)", i.MaxFileSize)
	}
	if i.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be > 0 (got %d)", i.ChunkSize)
	}
	if i.FailureCap < 0 {
		return fmt.Errorf("failure_cap must be >= 0 (got %d)", i.FailureCap)
	}
	if i.MaxRows < 0 {
		return fmt.Errorf("max_rows must be >= 0 (got %d)", i.MaxRows)
	}
	return nil
}

func (q *QueueConfig) validate() error {
	if q.RedisAddr == "" {
		return fmt.Errorf("redis_addr is required when the queue is enabled")
	}
	if q.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be > 0 (got %d)", q.Concurrency)
	}
	if q.Name == "" {
		return fmt.Errorf("name is required")
	}
	if q.MaxRetry < 0 {
		return fmt.Errorf("max_retry must be >= 0 (got %d)", q.MaxRetry)
	}
	return nil
}
