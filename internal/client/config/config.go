package config

import "time"

// EnvPrefix is prepended to every environment variable the loader reads.
const EnvPrefix = "QRCONTACTS_"

// Config holds runtime settings for the qrcontacts CLI.
//
// Fields:
//   - CacheDSN: path of the local SQLite cache (accounts and records).
//   - RemoteDSN: PostgreSQL DSN of the remote store. Empty means cache-only.
//   - RemoteTimeout: per-call timeout for remote operations.
//   - OnlineCheckInterval: how often the client probes remote reachability.
//   - SessionSecret / SessionTTL: HMAC key and lifetime of the local session token.
//   - LogLevel: debug, info, warn or error.
//   - S3: object storage for profile pictures. Empty Bucket keeps pictures local.
type Config struct {
	CacheDSN            string        `env:"CACHE_DSN"`
	RemoteDSN           string        `env:"REMOTE_DSN"`
	RemoteTimeout       time.Duration `env:"REMOTE_TIMEOUT"`
	OnlineCheckInterval time.Duration `env:"ONLINE_CHECK_INTERVAL"`
	SessionSecret       string        `env:"SESSION_SECRET"`
	SessionTTL          time.Duration `env:"SESSION_TTL"`
	LogLevel            string        `env:"LOG_LEVEL"`
	S3                  S3            `envPrefix:"S3_"`
}

// S3 holds settings of the S3-compatible picture storage.
type S3 struct {
	Endpoint  string `env:"ENDPOINT"`
	Region    string `env:"REGION"`
	Bucket    string `env:"BUCKET"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
}

// LoadDefaults populates c with sensible defaults.
// NOTE: the session secret is a development value and should be overridden.
func (c *Config) LoadDefaults() {
	c.CacheDSN = "qrcontacts.db"
	c.RemoteDSN = ""
	c.RemoteTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.SessionSecret = "secretKey"
	c.SessionTTL = 30 * 24 * time.Hour
	c.LogLevel = "info"
	c.S3 = S3{Region: "us-east-1"}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a .env file, JSON (if present), the environment and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadDotEnv(dotEnvFile)
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
