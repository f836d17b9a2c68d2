package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"gestidoc/internal/hooks"
	"gestidoc/internal/httpx"
	"gestidoc/internal/models"
	"gestidoc/internal/storage"
)

// Stock serves the paginated stock routes.
type Stock struct {
	Hook *hooks.Stock
}

func MountStock(mux *http.ServeMux, h *hooks.Stock) {
	s := &Stock{Hook: h}
	mux.HandleFunc("GET /stock", s.List)
	mux.HandleFunc("POST /stock", s.Create)
	mux.HandleFunc("PUT /stock/import", s.Import)
	mux.HandleFunc("PUT /stock/{id}", s.Update)
	mux.HandleFunc("DELETE /stock/{id}", s.Delete)
}

// List: GET /stock?q=&page=&pageSize= — a one-off page read carrying the
// request's own query state. The hook's filter and cursor belong to its
// attached view and are never moved by a List request, so concurrent
// clients cannot drag each other's pages around.
func (s *Stock) List(w http.ResponseWriter, r *http.Request) {
	q := storage.PageQuery{
		Query:    r.URL.Query().Get("q"),
		Page:     1,
		PageSize: hooks.DefaultPageSize,
	}
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			q.Page = n
		}
	}
	if v := r.URL.Query().Get("pageSize"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			q.PageSize = n
		}
	}

	page, err := s.Hook.GetPage(r.Context(), q)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":       page.Items,
		"currentPage": q.Page,
		"totalPages":  page.TotalPages(q.PageSize),
		"totalStock":  page.TotalCount,
	})
}

func (s *Stock) Create(w http.ResponseWriter, r *http.Request) {
	var item models.StockItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	created, err := s.Hook.Add(r.Context(), item)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (s *Stock) Update(w http.ResponseWriter, r *http.Request) {
	var item models.StockItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	item.ID = r.PathValue("id")
	updated, err := s.Hook.Update(r.Context(), item)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (s *Stock) Delete(w http.ResponseWriter, r *http.Request) {
	if err := s.Hook.Delete(r.Context(), r.PathValue("id")); err != nil {
		httpx.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Stock) Import(w http.ResponseWriter, r *http.Request) {
	var items []models.StockItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := s.Hook.Replace(r.Context(), items); err != nil {
		httpx.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
