package models

import (
	"gorm.io/datatypes"

	"gestidoc/internal/validation"
)

// PurchaseOrder is a commande fournisseur (CMD family).
type PurchaseOrder struct {
	DocMeta
	Fournisseur string                        `gorm:"not null" json:"fournisseur"`
	Items       datatypes.JSONSlice[LineItem] `json:"items"`
	TotalHT     float64                       `json:"totalHT"`
	TotalTVA    float64                       `json:"totalTVA"`
	TotalTTC    float64                       `json:"totalTTC"`
	Status      string                        `gorm:"not null;default:'brouillon'" json:"status"` // brouillon, envoyee, recue
	Notes       string                        `json:"notes,omitempty"`
}

func (p *PurchaseOrder) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("fournisseur", p.Fournisseur, v)
	for idx, it := range p.Items {
		validation.RequiredAt("items", idx, "description", it.Description, v)
		validation.PositiveFloatAt("items", idx, "quantity", it.Quantity, v)
	}
	return v
}

// ComputeTotals fills TotalHT/TotalTVA/TotalTTC from the line items.
func (p *PurchaseOrder) ComputeTotals() {
	ht, tva := sumLines(p.Items)
	p.TotalHT = ht
	p.TotalTVA = tva
	p.TotalTTC = ht + tva
}
