package main

import (
	"net/http"

	"gorm.io/gorm"

	"gestidoc/internal/bus"
	"gestidoc/internal/handlers"
	"gestidoc/internal/hooks"
	"gestidoc/internal/models"
	"gestidoc/internal/numbering"
)

// NewApp wires one hook per collection onto the shared store and bus and
// mounts the JSON routes. Each hook instance owns its own cache and cursor;
// the database underneath is the single shared source of truth.
func NewApp(conn *gorm.DB, b *bus.Bus) http.Handler {
	mux := http.NewServeMux()

	invoices := hooks.NewDocuments[models.Invoice, *models.Invoice](conn, b, hooks.DocumentsConfig{
		RefPrefix: numbering.PrefixInvoice, IDPrefix: "fac",
	})
	orders := hooks.NewDocuments[models.PurchaseOrder, *models.PurchaseOrder](conn, b, hooks.DocumentsConfig{
		RefPrefix: numbering.PrefixPurchaseOrder, IDPrefix: "cmd",
	})
	quotes := hooks.NewDocuments[models.Quote, *models.Quote](conn, b, hooks.DocumentsConfig{
		RefPrefix: numbering.PrefixQuote, IDPrefix: "pro",
	})
	appointments := hooks.NewDocuments[models.Appointment, *models.Appointment](conn, b, hooks.DocumentsConfig{
		IDPrefix: "rdv",
	})
	freeDocs := hooks.NewDocuments[models.FreeDocument, *models.FreeDocument](conn, b, hooks.DocumentsConfig{
		IDPrefix: "doc",
	})
	stock := hooks.NewStock(conn, b)

	handlers.MountDocuments(mux, "/invoices", invoices)
	handlers.MountDocuments(mux, "/purchase-orders", orders)
	handlers.MountDocuments(mux, "/quotes", quotes)
	handlers.MountDocuments(mux, "/appointments", appointments)
	handlers.MountDocuments(mux, "/documents", freeDocs)
	handlers.MountStock(mux, stock)

	// Out-of-band writers (restore tooling, the import collaborator when it
	// bypasses the hook routes) announce themselves here; every mounted
	// hook refetches on receipt.
	mux.HandleFunc("POST /signals/data-received", func(w http.ResponseWriter, r *http.Request) {
		b.Publish(bus.DataReceived)
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}
