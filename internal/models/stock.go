package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"gestidoc/internal/search"
	"gestidoc/internal/validation"
)

// StockItem is one inventory row. Identity is the ID alone: stock has no
// reference number and is reached through the free-text filter, never by
// sequential scan in the UI. CustomFields is an open string mapping for
// whatever extra columns a given shop tracks (taille, couleur, ...).
type StockItem struct {
	ID           string                                `gorm:"primaryKey;size:64" json:"id"`
	Name         string                                `gorm:"not null" json:"name"`
	Category     string                                `json:"category"`
	Reference    string                                `json:"reference,omitempty"`
	Quantity     int                                   `json:"quantity"`
	Cost         float64                               `json:"cost,omitempty"`
	CustomFields datatypes.JSONType[map[string]string] `json:"customFields"`
	// SearchText is the lowercased, accent-folded concatenation of the
	// searchable fields. Maintained on every save so the page query can
	// filter in SQL instead of in application memory.
	SearchText string `gorm:"index" json:"-"`
	// Stamped by the stock hook; gorm auto-tracking stays off so the
	// persisted value is exactly the one the hook assigned.
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

func (s StockItem) RecordID() string { return s.ID }

func (s *StockItem) BeforeSave(tx *gorm.DB) error {
	s.SearchText = search.Normalize(strings.Join([]string{s.Name, s.Category, s.Reference}, " "))
	return nil
}

func (s *StockItem) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("name", s.Name, v)
	validation.NonNegativeInt("quantity", s.Quantity, v)
	return v
}
