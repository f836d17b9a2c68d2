package models

import (
	"gorm.io/datatypes"

	"gestidoc/internal/validation"
)

// Invoicing models
type Invoice struct {
	DocMeta
	Client    string                        `gorm:"not null" json:"client"`
	ClientTVA string                        `json:"clientTVA,omitempty"` // numéro TVA intracommunautaire du client
	Items     datatypes.JSONSlice[LineItem] `json:"items"`
	Remise    float64                       `json:"remise,omitempty"`  // remise globale sur la facture
	Acompte   float64                       `json:"acompte,omitempty"` // acompte déjà versé
	TotalHT   float64                       `json:"totalHT"`
	TotalTVA  float64                       `json:"totalTVA"`
	TotalTTC  float64                       `json:"totalTTC"`
	Status    string                        `gorm:"not null;default:'brouillon'" json:"status"` // brouillon, envoyee, payee
}

func (i *Invoice) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("client", i.Client, v)
	for idx, it := range i.Items {
		validation.RequiredAt("items", idx, "description", it.Description, v)
		validation.PositiveFloatAt("items", idx, "quantity", it.Quantity, v)
	}
	return v
}

// ComputeTotals fills TotalHT/TotalTVA/TotalTTC from the line items and the
// invoice-level discount. Acompte is a prepayment and does not change TTC.
func (i *Invoice) ComputeTotals() {
	ht, tva := sumLines(i.Items)
	if i.Remise > 0 && i.Remise < ht {
		ht -= i.Remise
	}
	i.TotalHT = ht
	i.TotalTVA = tva
	i.TotalTTC = ht + tva
}
