package mail

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed templates/*.txt templates/*.html
var templateFS embed.FS

const TemplatePasswordReset = "password_reset"

// PasswordResetData feeds the password_reset template.
type PasswordResetData struct {
	Link     string
	Username string
}

// Renderer executes the embedded name.txt and name.html template pair.
type Renderer struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

func NewRenderer() (*Renderer, error) {
	text, err := texttemplate.ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("mail: parse text templates: %w", err)
	}
	html, err := htmltemplate.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("mail: parse html templates: %w", err)
	}
	return &Renderer{text: text, html: html}, nil
}

// Render returns the plain text and HTML bodies of template name.
func (r *Renderer) Render(name string, data any) (text, html string, err error) {
	var tb, hb bytes.Buffer
	if err := r.text.ExecuteTemplate(&tb, name+".txt", data); err != nil {
		return "", "", fmt.Errorf("mail: render %s.txt: %w", name, err)
	}
	if err := r.html.ExecuteTemplate(&hb, name+".html", data); err != nil {
		return "", "", fmt.Errorf("mail: render %s.html: %w", name, err)
	}
	return tb.String(), hb.String(), nil
}
