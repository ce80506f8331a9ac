package email

import (
	"strings"
	"sync"

	"cinemarathi_backend/internal/logger"
)

// LogProvider records messages instead of sending them. It is used when SMTP
// is not configured and as a test double.
type LogProvider struct {
	renderer *TemplateManager

	mu   sync.Mutex
	sent []Email
}

func NewLogProvider(renderer *TemplateManager) *LogProvider {
	if renderer == nil {
		renderer = NewTemplateManager()
	}
	return &LogProvider{renderer: renderer}
}

func (p *LogProvider) Send(email *Email) error {
	p.mu.Lock()
	p.sent = append(p.sent, *email)
	p.mu.Unlock()

	logger.Info("email (not sent, SMTP disabled)",
		"to", strings.Join(email.To, ","),
		"subject", email.Subject,
	)
	return nil
}

func (p *LogProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	html, err := p.renderer.Render(templateName, data)
	if err != nil {
		return err
	}
	return p.Send(&Email{To: to, Subject: subject, HTMLBody: html})
}

// Sent returns a copy of everything passed to Send.
func (p *LogProvider) Sent() []Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Email, len(p.sent))
	copy(out, p.sent)
	return out
}
