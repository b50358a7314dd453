// Package model holds the UI-facing entity shapes: camelCase JSON and string
// ids, together with their create inputs and partial-update patches.
package model

import "time"

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectPaused    ProjectStatus = "paused"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectPaused, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Domain      string        `json:"domain,omitempty"`
	FigmaLink   string        `json:"figmaLink,omitempty"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type ProjectInput struct {
	Name        string        `json:"name"`
	Domain      string        `json:"domain,omitempty"`
	FigmaLink   string        `json:"figmaLink,omitempty"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status,omitempty"`
}

// Normalize fills defaults.
func (in ProjectInput) Normalize() ProjectInput {
	if in.Status == "" {
		in.Status = ProjectActive
	}
	return in
}

func (in ProjectInput) Validate() error {
	var v errs
	v.required("name", in.Name)
	if in.Status != "" && !in.Status.Valid() {
		v.add("status", "must be one of active, paused, completed, cancelled")
	}
	return v.err()
}

// ProjectPatch is a partial update; nil fields are left unchanged.
type ProjectPatch struct {
	Name        *string        `json:"name,omitempty"`
	Domain      *string        `json:"domain,omitempty"`
	FigmaLink   *string        `json:"figmaLink,omitempty"`
	Description *string        `json:"description,omitempty"`
	Status      *ProjectStatus `json:"status,omitempty"`
}

func (p ProjectPatch) Validate() error {
	var v errs
	if p.Name != nil {
		v.required("name", *p.Name)
	}
	if p.Status != nil && !p.Status.Valid() {
		v.add("status", "must be one of active, paused, completed, cancelled")
	}
	return v.err()
}

func (p ProjectPatch) Apply(dst *Project) {
	setString(&dst.Name, p.Name)
	setString(&dst.Domain, p.Domain)
	setString(&dst.FigmaLink, p.FigmaLink)
	setString(&dst.Description, p.Description)
	if p.Status != nil {
		dst.Status = *p.Status
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
