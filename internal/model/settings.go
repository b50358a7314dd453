package model

import (
	"encoding/json"
	"time"

	"github.com/tidwall/gjson"
)

// DefaultUserID keys the single settings object.
const DefaultUserID = "default"

type Settings struct {
	UserID        string          `json:"userId"`
	Language      string          `json:"language"`
	Theme         string          `json:"theme"`
	Notifications json.RawMessage `json:"notifications"`
	CustomColors  json.RawMessage `json:"customColors"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// DefaultSettings is what a store returns before settings are ever written.
func DefaultSettings() Settings {
	return Settings{
		UserID:        DefaultUserID,
		Language:      "en",
		Theme:         "light",
		Notifications: json.RawMessage(`{"email":true,"push":false,"taskReminders":true}`),
		CustomColors:  json.RawMessage(`{}`),
	}
}

// NotificationEnabled reads a boolean switch from the notifications document.
// Missing switches count as enabled.
func (s Settings) NotificationEnabled(name string) bool {
	v := gjson.GetBytes(s.Notifications, name)
	if !v.Exists() {
		return true
	}
	return v.Bool()
}

type SettingsPatch struct {
	Language      *string         `json:"language,omitempty"`
	Theme         *string         `json:"theme,omitempty"`
	Notifications json.RawMessage `json:"notifications,omitempty"`
	CustomColors  json.RawMessage `json:"customColors,omitempty"`
}

func (p SettingsPatch) Validate() error {
	var v errs
	if p.Language != nil {
		v.required("language", *p.Language)
	}
	if p.Theme != nil {
		v.required("theme", *p.Theme)
	}
	validJSON(&v, "notifications", p.Notifications)
	validJSON(&v, "customColors", p.CustomColors)
	return v.err()
}

func (p SettingsPatch) Apply(dst *Settings) {
	setString(&dst.Language, p.Language)
	setString(&dst.Theme, p.Theme)
	if p.Notifications != nil {
		dst.Notifications = p.Notifications
	}
	if p.CustomColors != nil {
		dst.CustomColors = p.CustomColors
	}
}
