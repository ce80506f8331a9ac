package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateManagerBuiltins(t *testing.T) {
	tm := NewTemplateManager()

	html, err := tm.Render(TemplateDeleteRequestProcessed, TemplateData{
		"RequestID": 5, "Email": "a@b.co", "Status": "completed",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "#5")
	assert.Contains(t, html, "<strong>completed</strong>")
	assert.Contains(t, html, "have been removed")

	html, err = tm.Render(TemplateDeleteRequestProcessed, TemplateData{
		"RequestID": 5, "Email": "a@b.co", "Status": "rejected",
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "have been removed")

	_, err = tm.Render("missing", nil)
	assert.Error(t, err)
}

func TestTemplateEscapesInput(t *testing.T) {
	html, err := NewTemplateManager().Render(TemplateDeleteRequestReceived, TemplateData{
		"RequestID": 1, "Email": "a@b.co", "Reason": "<script>x</script>",
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestNewProviderFallsBackToLog(t *testing.T) {
	p := NewProvider(SMTPConfig{})
	lp, ok := p.(*LogProvider)
	require.True(t, ok)

	require.NoError(t, p.SendTemplate([]string{"a@b.co"}, "Subject", TemplateDeleteRequestReceived, TemplateData{
		"RequestID": 1, "Email": "a@b.co", "Reason": "moving away from acting",
	}))
	sent := lp.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Subject", sent[0].Subject)
	assert.Equal(t, []string{"a@b.co"}, sent[0].To)
}

func TestNewProviderUsesSMTPWhenConfigured(t *testing.T) {
	p := NewProvider(SMTPConfig{Host: "smtp.example.com", Port: 587, FromEmail: "no-reply@cinemarathi.com"})
	_, ok := p.(*SMTPProvider)
	assert.True(t, ok)
}
