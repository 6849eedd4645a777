package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/qrcontacts/internal/flagx"
)

// clientFlags are the flags parseFlags owns; -c and -config belong to parseJson.
var clientFlags = []string{"-d", "-r", "-t", "-i", "-s", "-l", "-e", "-b", "-g", "-u", "-p"}

// parseFlags populates selected Config fields from command-line flags.
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], clientFlags...)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.CacheDSN, "d", cfg.CacheDSN, "local cache database path")
	fs.StringVar(&cfg.RemoteDSN, "r", cfg.RemoteDSN, "remote database DSN (empty for cache-only)")
	remoteTimeout := fs.Int("t", int(cfg.RemoteTimeout.Seconds()), "remote call timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.SessionSecret, "s", cfg.SessionSecret, "session signing secret")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.S3.Endpoint, "e", cfg.S3.Endpoint, "S3 endpoint")
	fs.StringVar(&cfg.S3.Bucket, "b", cfg.S3.Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3.Region, "g", cfg.S3.Region, "S3 region")
	fs.StringVar(&cfg.S3.AccessKey, "u", cfg.S3.AccessKey, "S3 access key")
	fs.StringVar(&cfg.S3.SecretKey, "p", cfg.S3.SecretKey, "S3 secret key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Only explicit flags touch durations; defaults may hold sub-second values.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RemoteTimeout = time.Duration(*remoteTimeout) * time.Second
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		}
	})
}
