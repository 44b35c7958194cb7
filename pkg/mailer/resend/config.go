package resend

// Config holds Resend email provider configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	APIKey string `env:"RESEND_API_KEY"`

	// SenderEmail and SenderName replace the job sender when ForceSender is set,
	// or fill it in when the job has none. Resend only accepts verified domains.
	SenderEmail string `env:"RESEND_FROM_EMAIL"`
	SenderName  string `env:"RESEND_FROM_NAME"`
	ForceSender bool   `env:"RESEND_FORCE_SENDER"`
}
