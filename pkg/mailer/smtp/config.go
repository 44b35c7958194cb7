package smtp

import "time"

// Config holds SMTP submission settings.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Host string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port int    `env:"SMTP_PORT" envDefault:"587"`

	// Username defaults to the sender address of each email.
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`

	// LocalName is the HELO hostname. Empty means "localhost".
	LocalName string `env:"SMTP_LOCAL_NAME"`

	Timeout time.Duration `env:"SMTP_TIMEOUT" envDefault:"30s"`
}

// Defaults used when Config fields are zero.
const (
	DefaultHost    = "smtp.gmail.com"
	DefaultPort    = 587
	DefaultTimeout = 30 * time.Second
)

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port <= 0 {
		c.Port = DefaultPort
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}
