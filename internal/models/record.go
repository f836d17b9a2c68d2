package models

import "time"

// DocMeta is the identity block shared by every document-family record.
// ID is the storage key, assigned at creation and never reassigned. Numero
// is the human-readable reference (facture/commande/devis families only),
// set exactly once at creation. Date is the creation timestamp. Only
// UpdatedAt moves after creation: every successful write refreshes it.
type DocMeta struct {
	ID     string    `gorm:"primaryKey;size:64" json:"id"`
	Numero string    `gorm:"index" json:"numero,omitempty"`
	Date   time.Time `json:"date"`
	// The hooks stamp UpdatedAt on every mutation with their own clock;
	// gorm's auto-tracking would overwrite that on the upsert path, so it
	// is switched off.
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

func (m DocMeta) RecordID() string { return m.ID }

// Meta exposes the identity block for generic code that needs to assign or
// preserve generated fields.
func (m *DocMeta) Meta() *DocMeta { return m }

// LineItem is one line on a billed document. Lines live inside the owning
// document's JSON column; there is no separate line-item table, so a
// document is always written and read as a single unit.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	VATRate     float64 `json:"vatRate"` // e.g. 0.20 for 20%
}

// Total returns the line amount before tax.
func (l LineItem) Total() float64 { return l.Quantity * l.UnitPrice }

// sumLines adds up the pre-tax and tax amounts of a document's lines.
// Negative VAT rates are treated as zero.
func sumLines(items []LineItem) (ht, tva float64) {
	for _, it := range items {
		lineHT := it.Total()
		ht += lineHT
		rate := it.VATRate
		if rate < 0 {
			rate = 0
		}
		tva += lineHT * rate
	}
	return ht, tva
}
