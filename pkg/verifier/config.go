package verifier

import "time"

// Config configures the verification service listeners.
type Config struct {
	ListenAddr        string        `env:"WALLET_SERVER_LISTEN_ADDR" env-default:":8080"`
	MetricsListenAddr string        `env:"WALLET_METRICS_LISTEN_ADDR" env-default:":4242"`
	MaxBodyBytes      int64         `env:"WALLET_SERVER_MAX_BODY_BYTES" env-default:"65536"`
	ShutdownTimeout   time.Duration `env:"WALLET_SERVER_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

func (c Config) withDefaults() Config {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.MetricsListenAddr == "" {
		c.MetricsListenAddr = ":4242"
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 64 << 10
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 5 * time.Second
	}
	return c
}
