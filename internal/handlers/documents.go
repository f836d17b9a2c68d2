// Package handlers is the thin JSON boundary over the entity hooks. Every
// mutating route surfaces hook failures as specific error payloads so the
// originating form can stay open and show a message.
package handlers

import (
	"encoding/json"
	"net/http"

	"gestidoc/internal/hooks"
	"gestidoc/internal/httpx"
	"gestidoc/internal/storage"
)

// totaler is implemented by document families whose totals can be derived
// from their line items.
type totaler interface {
	ComputeTotals()
}

// Documents serves one document family's routes over its hook.
type Documents[T storage.Record, PT hooks.Doc[T]] struct {
	Hook *hooks.Documents[T, PT]
}

// MountDocuments registers list/create/update/delete/import under base,
// e.g. base "/invoices" yields GET /invoices, PUT /invoices/{id}, and so on.
func MountDocuments[T storage.Record, PT hooks.Doc[T]](mux *http.ServeMux, base string, h *hooks.Documents[T, PT]) {
	d := &Documents[T, PT]{Hook: h}
	mux.HandleFunc("GET "+base, d.List)
	mux.HandleFunc("POST "+base, d.Create)
	mux.HandleFunc("PUT "+base+"/import", d.Import)
	mux.HandleFunc("PUT "+base+"/{id}", d.Update)
	mux.HandleFunc("DELETE "+base+"/{id}", d.Delete)
}

func (d *Documents[T, PT]) List(w http.ResponseWriter, r *http.Request) {
	if err := d.Hook.Refresh(r.Context()); err != nil {
		httpx.WriteError(w, err)
		return
	}
	items := d.Hook.Items()
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

func (d *Documents[T, PT]) Create(w http.ResponseWriter, r *http.Request) {
	rec, ok := d.decode(w, r)
	if !ok {
		return
	}
	created, err := d.Hook.Add(r.Context(), rec)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (d *Documents[T, PT]) Update(w http.ResponseWriter, r *http.Request) {
	rec, ok := d.decode(w, r)
	if !ok {
		return
	}
	// The path id is authoritative; the body may omit or contradict it.
	PT(&rec).Meta().ID = r.PathValue("id")
	updated, err := d.Hook.Update(r.Context(), rec)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (d *Documents[T, PT]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := d.Hook.Delete(r.Context(), r.PathValue("id")); err != nil {
		httpx.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Import swaps the entire collection for the uploaded records. The caller
// (the import collaborator) is responsible for having parsed its tabular
// file into records already.
func (d *Documents[T, PT]) Import(w http.ResponseWriter, r *http.Request) {
	var recs []T
	if err := json.NewDecoder(r.Body).Decode(&recs); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := d.Hook.Replace(r.Context(), recs); err != nil {
		httpx.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads the request body into a record. With ?totals=auto the
// totals are recomputed from the line items before the write; without it
// caller-supplied totals are stored untouched, like any other field.
func (d *Documents[T, PT]) decode(w http.ResponseWriter, r *http.Request) (T, bool) {
	var rec T
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return rec, false
	}
	if r.URL.Query().Get("totals") == "auto" {
		if tot, ok := any(PT(&rec)).(totaler); ok {
			tot.ComputeTotals()
		}
	}
	return rec, true
}
