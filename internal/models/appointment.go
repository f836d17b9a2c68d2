package models

import (
	"time"

	"gestidoc/internal/validation"
)

// Appointment is a calendar entry. It shares the document identity block
// but carries no reference number.
type Appointment struct {
	DocMeta
	Title    string    `gorm:"not null" json:"title"`
	Client   string    `json:"client,omitempty"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Location string    `json:"location,omitempty"`
	Notes    string    `json:"notes,omitempty"`
}

func (a *Appointment) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("title", a.Title, v)
	if !a.End.IsZero() && a.End.Before(a.Start) {
		v["end"] = "before_start"
	}
	return v
}
