package mailer

// Config holds mailer configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" envDefault:"Scheduled Email"`
}

// DefaultFallbackSubject is used when neither the job nor Config sets a subject.
const DefaultFallbackSubject = "Scheduled Email"
