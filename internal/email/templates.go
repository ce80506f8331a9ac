package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

const (
	TemplateDeleteRequestReceived  = "delete_request_received"
	TemplateDeleteRequestProcessed = "delete_request_processed"
)

var builtinTemplates = map[string]string{
	TemplateDeleteRequestReceived: `<p>Hello,</p>
<p>We received a request to delete the CineMarathi account registered to {{.Email}}.</p>
<p>Reason given: {{.Reason}}</p>
<p>Request #{{.RequestID}} is pending review. We will email you once it has been processed.</p>`,
	TemplateDeleteRequestProcessed: `<p>Hello,</p>
<p>Your request #{{.RequestID}} to delete the CineMarathi account {{.Email}} is now <strong>{{.Status}}</strong>.</p>
{{if eq .Status "completed"}}<p>Your account and its data have been removed.</p>{{end}}`,
}

// TemplateManager renders named HTML templates.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager returns a manager preloaded with the built-in templates.
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}
	for name, body := range builtinTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			panic(err)
		}
	}
	return tm
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}
