package email

import "cinemarathi_backend/internal/logger"

// Provider sends account emails.
type Provider interface {
	// Send delivers a prepared message.
	Send(email *Email) error

	// SendTemplate renders templateName with data and sends it.
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error
}

// NewProvider returns an SMTP provider when SMTP is configured and a logging
// provider otherwise.
func NewProvider(cfg SMTPConfig) Provider {
	renderer := NewTemplateManager()
	if !cfg.Enabled() {
		logger.Warn("SMTP not configured, emails will only be logged")
		return NewLogProvider(renderer)
	}
	return NewSMTPProvider(cfg, renderer)
}
