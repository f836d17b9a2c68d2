// Package hooks holds the per-collection read/write facades the UI talks
// to. A hook owns a cached copy of its collection (or its current page, for
// stock) plus a loading flag and the last error. Every mutation writes
// through the store and then re-reads before the cache moves, so the
// visible items always reflect what was actually persisted — never the
// mutation's input alone.
package hooks

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"gestidoc/internal/bus"
	"gestidoc/internal/models"
	"gestidoc/internal/numbering"
	"gestidoc/internal/storage"
	"gestidoc/internal/validation"
)

// Doc constrains a document model to the pointer type that can expose and
// validate its identity block.
type Doc[T any] interface {
	*T
	Meta() *models.DocMeta
	Validate() validation.Violations
}

// DocumentsConfig names a document family. RefPrefix is empty for families
// without reference numbers (appointments, free documents).
type DocumentsConfig struct {
	RefPrefix string
	IDPrefix  string
}

// Documents is the facade for one full-fetch collection. Instantiate once
// per mounted view: the cache and error state belong to that view alone,
// while the underlying table is shared by every hook on the same database.
type Documents[T storage.Record, PT Doc[T]] struct {
	col *storage.Collection[T]
	bus *bus.Bus
	cfg DocumentsConfig
	now func() time.Time

	mu      sync.Mutex
	items   []T
	loading bool
	err     error

	cancel func()
}

func NewDocuments[T storage.Record, PT Doc[T]](db *gorm.DB, b *bus.Bus, cfg DocumentsConfig) *Documents[T, PT] {
	h := &Documents[T, PT]{
		col: storage.NewCollection[T](db),
		bus: b,
		cfg: cfg,
		now: time.Now,
	}
	// Out-of-band writes (import, restore) announce themselves with a
	// payload-free signal; the only safe reaction is a full re-read.
	h.cancel = b.Subscribe(bus.DataReceived, func() {
		_ = h.Refresh(context.Background())
	})
	return h
}

// Close detaches the hook from the notification bus.
func (h *Documents[T, PT]) Close() {
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

// Items returns the cached collection snapshot.
func (h *Documents[T, PT]) Items() []T {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]T, len(h.items))
	copy(out, h.items)
	return out
}

func (h *Documents[T, PT]) Loading() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loading
}

func (h *Documents[T, PT]) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Refresh re-reads the whole collection into the cache.
func (h *Documents[T, PT]) Refresh(ctx context.Context) error {
	h.mu.Lock()
	h.loading = true
	h.mu.Unlock()
	return h.reload(ctx)
}

// Add validates data, assigns the generated fields (id, reference, creation
// time) and writes the record through the store. The returned record is the
// persisted one. Caller-supplied fields are stored unchanged.
func (h *Documents[T, PT]) Add(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := PT(&rec).Validate().Err(); err != nil {
		h.setErr(err)
		return zero, err
	}
	now := h.now()
	meta := PT(&rec).Meta()
	meta.ID = numbering.NewID(h.cfg.IDPrefix, now)
	if h.cfg.RefPrefix != "" {
		meta.Numero = numbering.Reference(h.cfg.RefPrefix, now)
	}
	meta.Date = now
	meta.UpdatedAt = now
	if err := h.mutate(ctx, func() error { return h.col.Put(ctx, rec) }); err != nil {
		return zero, err
	}
	return rec, nil
}

// Update replaces the stored record with rec, keeping the immutable fields
// (id, numero, date) from what is already persisted and refreshing
// updatedAt. Updating an absent id surfaces storage.ErrNotFound and leaves
// the cache untouched.
func (h *Documents[T, PT]) Update(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := PT(&rec).Validate().Err(); err != nil {
		h.setErr(err)
		return zero, err
	}
	stored, err := h.col.ByID(ctx, rec.RecordID())
	if err != nil {
		h.setErr(err)
		return zero, err
	}
	meta, prev := PT(&rec).Meta(), PT(&stored).Meta()
	meta.Numero = prev.Numero
	meta.Date = prev.Date
	meta.UpdatedAt = h.now()
	if err := h.mutate(ctx, func() error { return h.col.Put(ctx, rec) }); err != nil {
		return zero, err
	}
	return rec, nil
}

// Delete removes the record permanently. Deleting an absent id is a no-op
// that still refreshes the cache. Confirmation prompts are a UI concern
// layered above this call.
func (h *Documents[T, PT]) Delete(ctx context.Context, id string) error {
	return h.mutate(ctx, func() error { return h.col.Delete(ctx, id) })
}

// Replace swaps the entire collection for recs (wholesale import).
func (h *Documents[T, PT]) Replace(ctx context.Context, recs []T) error {
	return h.mutate(ctx, func() error { return h.col.Replace(ctx, recs) })
}

// mutate runs one write, then re-reads the collection before resolving. On
// write failure the cached items and loading flag keep their pre-call
// values, the error is recorded and returned, and no sync signal fires.
// Only a committed write followed by a successful re-read publishes
// SyncRequested.
func (h *Documents[T, PT]) mutate(ctx context.Context, write func() error) error {
	h.mu.Lock()
	wasLoading := h.loading
	h.loading = true
	h.mu.Unlock()

	if err := write(); err != nil {
		h.mu.Lock()
		h.loading = wasLoading
		h.err = err
		h.mu.Unlock()
		return err
	}
	if err := h.reload(ctx); err != nil {
		return err
	}
	h.bus.Publish(bus.SyncRequested)
	return nil
}

func (h *Documents[T, PT]) reload(ctx context.Context) error {
	recs, err := h.col.All(ctx)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loading = false
	if err != nil {
		h.err = err
		return err
	}
	h.items = recs
	h.err = nil
	return nil
}

func (h *Documents[T, PT]) setErr(err error) {
	h.mu.Lock()
	h.err = err
	h.mu.Unlock()
}
