package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Import    ImportConfig    `yaml:"import"`
	Queue     QueueConfig     `yaml:"queue"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds bearer token validation settings. Tokens are issued by
// the external auth service sharing the same secret.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"dailyspark"`
}

// ImportConfig holds bulk vocabulary import limits.
type ImportConfig struct {
	MaxFileSize int64 `yaml:"max_file_size" env:"IMPORT_MAX_FILE_SIZE" env-default:"10485760"`
	ChunkSize   int   `yaml:"chunk_size"    env:"IMPORT_CHUNK_SIZE"    env-default:"50"`
	FailureCap  int   `yaml:"failure_cap"   env:"IMPORT_FAILURE_CAP"   env-default:"100"`
	MaxRows     int   `yaml:"max_rows"      env:"IMPORT_MAX_ROWS"      env-default:"0"`
}

// QueueConfig holds the Redis-backed background job settings.
type QueueConfig struct {
	Enabled       bool          `yaml:"enabled"        env:"QUEUE_ENABLED"        env-default:"false"`
	RedisAddr     string        `yaml:"redis_addr"     env:"QUEUE_REDIS_ADDR"     env-default:"localhost:6379"`
	RedisPassword string        `yaml:"redis_password" env:"QUEUE_REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db"       env:"QUEUE_REDIS_DB"       env-default:"0"`
	Concurrency   int           `yaml:"concurrency"    env:"QUEUE_CONCURRENCY"    env-default:"4"`
	Name          string        `yaml:"name"           env:"QUEUE_NAME"           env-default:"imports"`
	MaxRetry      int           `yaml:"max_retry"      env:"QUEUE_MAX_RETRY"      env-default:"3"`
	Retention     time.Duration `yaml:"retention"      env:"QUEUE_RETENTION"      env-default:"24h"`
}

// RateLimitConfig holds per-IP request limits.
type RateLimitConfig struct {
	ImportPerMinute int           `yaml:"import_per_minute" env:"RATE_LIMIT_IMPORT_PER_MINUTE" env-default:"10"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"  env:"RATE_LIMIT_CLEANUP_INTERVAL"  env-default:"5m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
