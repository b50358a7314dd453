package model

import (
	"encoding/json"
	"time"

	"github.com/tidwall/gjson"
)

// CodeComponent is a reusable snippet. CodeJSON and ElementorData are opaque
// JSON documents with no schema.
type CodeComponent struct {
	ID            string          `json:"id"`
	ProjectID     *string         `json:"projectId"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category,omitempty"`
	Tags          []string        `json:"tags"`
	CodeJSON      json.RawMessage `json:"codeJson,omitempty"`
	PreviewImage  string          `json:"previewImage,omitempty"`
	ElementorData json.RawMessage `json:"elementorData,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type CodeComponentInput struct {
	ProjectID     *string         `json:"projectId,omitempty"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	CodeJSON      json.RawMessage `json:"codeJson,omitempty"`
	PreviewImage  string          `json:"previewImage,omitempty"`
	ElementorData json.RawMessage `json:"elementorData,omitempty"`
}

func (in CodeComponentInput) Validate() error {
	var v errs
	v.required("name", in.Name)
	v.reference("projectId", in.ProjectID)
	validJSON(&v, "codeJson", in.CodeJSON)
	validJSON(&v, "elementorData", in.ElementorData)
	return v.err()
}

// CodeComponentPatch leaves nil slices and nil documents unchanged.
type CodeComponentPatch struct {
	ProjectID     *string         `json:"projectId,omitempty"`
	Name          *string         `json:"name,omitempty"`
	Description   *string         `json:"description,omitempty"`
	Category      *string         `json:"category,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	CodeJSON      json.RawMessage `json:"codeJson,omitempty"`
	PreviewImage  *string         `json:"previewImage,omitempty"`
	ElementorData json.RawMessage `json:"elementorData,omitempty"`
}

func (p CodeComponentPatch) Validate() error {
	var v errs
	v.reference("projectId", p.ProjectID)
	if p.Name != nil {
		v.required("name", *p.Name)
	}
	validJSON(&v, "codeJson", p.CodeJSON)
	validJSON(&v, "elementorData", p.ElementorData)
	return v.err()
}

func (p CodeComponentPatch) Apply(dst *CodeComponent) {
	if p.ProjectID != nil {
		id := *p.ProjectID
		dst.ProjectID = &id
	}
	setString(&dst.Name, p.Name)
	setString(&dst.Description, p.Description)
	setString(&dst.Category, p.Category)
	if p.Tags != nil {
		dst.Tags = append([]string(nil), p.Tags...)
	}
	if p.CodeJSON != nil {
		dst.CodeJSON = p.CodeJSON
	}
	setString(&dst.PreviewImage, p.PreviewImage)
	if p.ElementorData != nil {
		dst.ElementorData = p.ElementorData
	}
}

func validJSON(v *errs, field string, doc json.RawMessage) {
	if len(doc) > 0 && !gjson.ValidBytes(doc) {
		v.add(field, "must be valid JSON")
	}
}
