package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gestidoc/internal/storage"
	"gestidoc/internal/validation"
)

func TestJSONSetsContentTypeAndBody(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusCreated, map[string]any{"id": "fac-1-abcd0001"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type %q", ct)
	}
	if !strings.Contains(w.Body.String(), "fac-1-abcd0001") {
		t.Fatalf("body %q", w.Body.String())
	}
}

func TestWriteErrorTaxonomy(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantError  string
	}{
		{(validation.Violations{"client": "required"}).Err(), http.StatusBadRequest, "validation_failed"},
		{storage.ErrNotFound, http.StatusNotFound, "not_found"},
		{fmt.Errorf("by_id: %w", storage.ErrNotFound), http.StatusNotFound, "not_found"},
		{storage.ErrBadPage, http.StatusBadRequest, "bad_page"},
		{&storage.StorageError{Op: "put", Err: fmt.Errorf("disk full")}, http.StatusInternalServerError, "storage_failure"},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		WriteError(w, c.err)
		if w.Code != c.wantStatus {
			t.Fatalf("%v: expected %d got %d", c.err, c.wantStatus, w.Code)
		}
		var resp ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Error != c.wantError {
			t.Fatalf("%v: expected %q got %q", c.err, c.wantError, resp.Error)
		}
	}
}

func TestWriteErrorCarriesViolationDetails(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, (validation.Violations{"quantity": "must_not_be_negative"}).Err())
	if !strings.Contains(w.Body.String(), "must_not_be_negative") {
		t.Fatalf("details missing: %s", w.Body.String())
	}
}
