package models

import (
	"gorm.io/datatypes"

	"gestidoc/internal/validation"
)

// FreeDocument is a free-form note or document with no reference number.
type FreeDocument struct {
	DocMeta
	Title   string                      `gorm:"not null" json:"title"`
	Content string                      `json:"content,omitempty"`
	Tags    datatypes.JSONSlice[string] `json:"tags,omitempty"`
}

func (d *FreeDocument) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("title", d.Title, v)
	return v
}
