package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/qrcontacts/internal/flagx"
	"github.com/dmitrijs2005/qrcontacts/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key from an empty value.
type JsonConfig struct {
	CacheDSN            *string         `json:"cache_dsn"`
	RemoteDSN           *string         `json:"remote_dsn"`
	RemoteTimeout       *timex.Duration `json:"remote_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	SessionSecret       *string         `json:"session_secret"`
	SessionTTL          *timex.Duration `json:"session_ttl"`
	LogLevel            *string         `json:"log_level"`
	S3                  *JsonS3         `json:"s3"`
}

type JsonS3 struct {
	Endpoint  *string `json:"endpoint"`
	Region    *string `json:"region"`
	Bucket    *string `json:"bucket"`
	AccessKey *string `json:"access_key"`
	SecretKey *string `json:"secret_key"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without those flags it does nothing. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.StringValue(os.Args[1:], "c", "config")
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc JsonConfig) apply(cfg *Config) {
	set(&cfg.CacheDSN, jc.CacheDSN)
	set(&cfg.RemoteDSN, jc.RemoteDSN)
	setDuration(&cfg.RemoteTimeout, jc.RemoteTimeout)
	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)
	set(&cfg.SessionSecret, jc.SessionSecret)
	setDuration(&cfg.SessionTTL, jc.SessionTTL)
	set(&cfg.LogLevel, jc.LogLevel)

	if s3 := jc.S3; s3 != nil {
		set(&cfg.S3.Endpoint, s3.Endpoint)
		set(&cfg.S3.Region, s3.Region)
		set(&cfg.S3.Bucket, s3.Bucket)
		set(&cfg.S3.AccessKey, s3.AccessKey)
		set(&cfg.S3.SecretKey, s3.SecretKey)
	}
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
