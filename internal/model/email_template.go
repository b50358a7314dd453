package model

import "time"

// EmailTemplateTaskCompleted is the template type used for completion mails.
const EmailTemplateTaskCompleted = "task_completed"

type EmailTemplate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type EmailTemplateInput struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Subject string `json:"subject"`
	Content string `json:"content"`
}

func (in EmailTemplateInput) Validate() error {
	var v errs
	v.required("name", in.Name)
	v.required("subject", in.Subject)
	return v.err()
}

type EmailTemplatePatch struct {
	Name    *string `json:"name,omitempty"`
	Type    *string `json:"type,omitempty"`
	Subject *string `json:"subject,omitempty"`
	Content *string `json:"content,omitempty"`
}

func (p EmailTemplatePatch) Validate() error {
	var v errs
	if p.Name != nil {
		v.required("name", *p.Name)
	}
	if p.Subject != nil {
		v.required("subject", *p.Subject)
	}
	return v.err()
}

func (p EmailTemplatePatch) Apply(dst *EmailTemplate) {
	setString(&dst.Name, p.Name)
	setString(&dst.Type, p.Type)
	setString(&dst.Subject, p.Subject)
	setString(&dst.Content, p.Content)
}
