package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/eleven-am/taskdeck/internal/model"
)

const (
	LayoutMinimal = "minimal"
	LayoutCard    = "card"
)

const (
	defaultSubject = "Task completed: {{title}}"
	defaultContent = "The task \"{{title}}\" ({{priority}} priority) was completed on {{date}}."
)

var layouts = template.Must(template.New("layouts").Parse(`
{{define "minimal"}}<!DOCTYPE html>
<html><body style="font-family:sans-serif">
{{range .Paragraphs}}<p>{{.}}</p>
{{end}}</body></html>{{end}}

{{define "card"}}<!DOCTYPE html>
<html><body style="margin:0;padding:24px;background:#f4f4f5;font-family:sans-serif">
<div style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:8px;padding:24px">
<h2 style="margin-top:0">{{.Title}}</h2>
{{range .Paragraphs}}<p>{{.}}</p>
{{end}}<p style="color:#71717a;font-size:12px">Priority: {{.Priority}}</p>
</div>
</body></html>{{end}}
`))

type layoutData struct {
	Title      string
	Priority   string
	Paragraphs []string
}

// Renderer builds the completion email from a stored template, or from the
// built-in wording when there is none.
type Renderer struct {
	layout string
}

func NewRenderer(layout string) (*Renderer, error) {
	if layout == "" {
		layout = LayoutCard
	}
	if layouts.Lookup(layout) == nil {
		return nil, fmt.Errorf("unknown email layout %q", layout)
	}
	return &Renderer{layout: layout}, nil
}

// Render substitutes {{title}}, {{date}} and {{priority}} in the template's
// subject and content. The content is escaped into the HTML layout.
func (r *Renderer) Render(task model.Task, tmpl *model.EmailTemplate) (Message, error) {
	subject, content := defaultSubject, defaultContent
	if tmpl != nil {
		subject = tmpl.Subject
		if tmpl.Content != "" {
			content = tmpl.Content
		}
	}

	date := task.Date
	if date == "" {
		date = task.UpdatedAt.Format(model.DateLayout)
	}
	fill := strings.NewReplacer(
		"{{title}}", task.Title,
		"{{date}}", date,
		"{{priority}}", string(task.Priority),
	)
	subject = fill.Replace(subject)
	text := fill.Replace(content)

	var paragraphs []string
	for _, p := range strings.Split(text, "\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	var buf bytes.Buffer
	err := layouts.ExecuteTemplate(&buf, r.layout, layoutData{
		Title:      subject,
		Priority:   string(task.Priority),
		Paragraphs: paragraphs,
	})
	if err != nil {
		return Message{}, fmt.Errorf("render %s layout: %w", r.layout, err)
	}

	return Message{Subject: subject, HTML: buf.String(), Text: text}, nil
}
