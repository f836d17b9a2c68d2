package models

import (
	"gorm.io/datatypes"

	"gestidoc/internal/validation"
)

// Quote / estimate models (devis, PRO family).
type Quote struct {
	DocMeta
	Client               string                        `gorm:"not null" json:"client"`
	Items                datatypes.JSONSlice[LineItem] `json:"items"`
	TotalHT              float64                       `json:"totalHT"`
	TotalTVA             float64                       `json:"totalTVA"`
	TotalTTC             float64                       `json:"totalTTC"`
	Status               string                        `gorm:"not null;default:'brouillon'" json:"status"` // brouillon, envoye, accepte, refuse, converti
	ConvertedToInvoiceID string                        `json:"convertedToInvoiceId,omitempty"`             // renseigné quand le devis devient facture
	ValidUntil           string                        `json:"validUntil,omitempty"`
}

func (q *Quote) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("client", q.Client, v)
	for idx, it := range q.Items {
		validation.RequiredAt("items", idx, "description", it.Description, v)
		validation.PositiveFloatAt("items", idx, "quantity", it.Quantity, v)
	}
	return v
}

// ComputeTotals fills TotalHT/TotalTVA/TotalTTC from the line items.
func (q *Quote) ComputeTotals() {
	ht, tva := sumLines(q.Items)
	q.TotalHT = ht
	q.TotalTVA = tva
	q.TotalTTC = ht + tva
}
