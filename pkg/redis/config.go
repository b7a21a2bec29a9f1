package redis

import "time"

// Config is meant to be nested with envPrefix:"REDIS_".
type Config struct {
	ConnectionURL string `env:"URL" envDefault:"redis://localhost:6379/0"`
	// RetryAttempts counts retries after the first ping.
	RetryAttempts  uint64        `env:"RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"RETRY_INTERVAL" envDefault:"1s"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`
}
