package model

import "time"

// Account is a stored credential for a project. Password is kept as given.
type Account struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Email     string    `json:"email,omitempty"`
	Website   string    `json:"website"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type AccountInput struct {
	ProjectID string `json:"projectId"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email,omitempty"`
	Website   string `json:"website"`
	Notes     string `json:"notes,omitempty"`
}

func (in AccountInput) Validate() error {
	var v errs
	v.required("projectId", in.ProjectID)
	v.required("username", in.Username)
	v.required("password", in.Password)
	v.required("website", in.Website)
	return v.err()
}

type AccountPatch struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	Email    *string `json:"email,omitempty"`
	Website  *string `json:"website,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

func (p AccountPatch) Validate() error {
	var v errs
	if p.Username != nil {
		v.required("username", *p.Username)
	}
	if p.Password != nil {
		v.required("password", *p.Password)
	}
	if p.Website != nil {
		v.required("website", *p.Website)
	}
	return v.err()
}

func (p AccountPatch) Apply(dst *Account) {
	setString(&dst.Username, p.Username)
	setString(&dst.Password, p.Password)
	setString(&dst.Email, p.Email)
	setString(&dst.Website, p.Website)
	setString(&dst.Notes, p.Notes)
}
