package model

import (
	"encoding/json"
	"time"

	"github.com/tidwall/gjson"
)

// ReportTemplate describes an export layout. Default templates are seeded by
// the stores and cannot be deleted.
type ReportTemplate struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	TemplateData json.RawMessage `json:"templateData"`
	Category     string          `json:"category,omitempty"`
	IsDefault    bool            `json:"isDefault"`
	CreatedBy    string          `json:"createdBy,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Fields lists the export columns named in templateData.fields.
func (r ReportTemplate) Fields() []string {
	var fields []string
	for _, f := range gjson.GetBytes(r.TemplateData, "fields").Array() {
		fields = append(fields, f.String())
	}
	return fields
}

// Layout returns templateData.layout, or "table" when unset.
func (r ReportTemplate) Layout() string {
	if l := gjson.GetBytes(r.TemplateData, "layout"); l.Exists() {
		return l.String()
	}
	return "table"
}

type ReportTemplateInput struct {
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	TemplateData json.RawMessage `json:"templateData"`
	Category     string          `json:"category,omitempty"`
	CreatedBy    string          `json:"createdBy,omitempty"`
}

func (in ReportTemplateInput) Validate() error {
	var v errs
	v.required("name", in.Name)
	if len(in.TemplateData) == 0 {
		v.add("templateData", "is required")
	}
	validJSON(&v, "templateData", in.TemplateData)
	return v.err()
}

type ReportTemplatePatch struct {
	Name         *string         `json:"name,omitempty"`
	Description  *string         `json:"description,omitempty"`
	TemplateData json.RawMessage `json:"templateData,omitempty"`
	Category     *string         `json:"category,omitempty"`
}

func (p ReportTemplatePatch) Validate() error {
	var v errs
	if p.Name != nil {
		v.required("name", *p.Name)
	}
	validJSON(&v, "templateData", p.TemplateData)
	return v.err()
}

func (p ReportTemplatePatch) Apply(dst *ReportTemplate) {
	setString(&dst.Name, p.Name)
	setString(&dst.Description, p.Description)
	if p.TemplateData != nil {
		dst.TemplateData = p.TemplateData
	}
	setString(&dst.Category, p.Category)
}

// DefaultReportTemplates are seeded once per store.
func DefaultReportTemplates() []ReportTemplateInput {
	return []ReportTemplateInput{
		{
			Name:         "Project Overview",
			Description:  "All projects with their status and dates",
			Category:     "projects",
			CreatedBy:    "system",
			TemplateData: json.RawMessage(`{"fields":["name","domain","status","createdAt"],"layout":"table","style":{"orientation":"portrait"}}`),
		},
		{
			Name:         "Task Summary",
			Description:  "Tasks grouped by status with priorities",
			Category:     "tasks",
			CreatedBy:    "system",
			TemplateData: json.RawMessage(`{"fields":["title","priority","status","date"],"layout":"grouped","style":{"orientation":"landscape"}}`),
		},
		{
			Name:         "Time Tracking",
			Description:  "Estimated against actual time per task",
			Category:     "tasks",
			CreatedBy:    "system",
			TemplateData: json.RawMessage(`{"fields":["title","estimatedTime","actualTime","date"],"layout":"table","style":{"orientation":"portrait"}}`),
		},
	}
}
