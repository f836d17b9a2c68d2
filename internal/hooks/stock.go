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
)

// DefaultPageSize is how many stock rows a view shows per page.
const DefaultPageSize = 25

// Stock is the paginated facade over the stock collection. Unlike the
// document hooks it never materializes the full collection: it holds one
// page plus the filter and cursor, and every read goes through the store's
// page query so filtering and counting stay in SQL even at thousands of
// rows.
type Stock struct {
	col *storage.Collection[models.StockItem]
	bus *bus.Bus
	now func() time.Time

	mu       sync.Mutex
	items    []models.StockItem
	loading  bool
	err      error
	filter   string
	page     int
	pageSize int
	total    int64

	cancel func()
}

func NewStock(db *gorm.DB, b *bus.Bus) *Stock {
	h := &Stock{
		col:      storage.NewCollection[models.StockItem](db).WithSearchColumn("search_text"),
		bus:      b,
		now:      time.Now,
		page:     1,
		pageSize: DefaultPageSize,
	}
	h.cancel = b.Subscribe(bus.DataReceived, func() {
		_ = h.Refresh(context.Background())
	})
	return h
}

// Close detaches the hook from the notification bus.
func (h *Stock) Close() {
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

// Items returns the cached current page.
func (h *Stock) Items() []models.StockItem {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]models.StockItem, len(h.items))
	copy(out, h.items)
	return out
}

func (h *Stock) Loading() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loading
}

func (h *Stock) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *Stock) Filter() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.filter
}

func (h *Stock) CurrentPage() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.page
}

// TotalStock is how many items match the current filter across the whole
// collection, not just the cached page.
func (h *Stock) TotalStock() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.total
}

func (h *Stock) TotalPages() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return storage.Page[models.StockItem]{TotalCount: h.total}.TotalPages(h.pageSize)
}

// GetPage runs a one-off page read with the caller's own query state. The
// hook's filter and cursor belong to its attached view and stay where they
// are, so independent callers cannot move each other's pages.
func (h *Stock) GetPage(ctx context.Context, q storage.PageQuery) (storage.Page[models.StockItem], error) {
	return h.col.GetPage(ctx, q)
}

// SetFilter replaces the free-text filter, rewinds to page one and reloads.
func (h *Stock) SetFilter(ctx context.Context, text string) error {
	h.mu.Lock()
	h.filter = text
	h.page = 1
	h.loading = true
	h.mu.Unlock()
	return h.reload(ctx)
}

// GoToPage moves the cursor and reloads. Pages past the end come back empty
// with the true total; that is the caller's cue to navigate, not an error.
func (h *Stock) GoToPage(ctx context.Context, n int) error {
	if n < 1 {
		n = 1
	}
	h.mu.Lock()
	h.page = n
	h.loading = true
	h.mu.Unlock()
	return h.reload(ctx)
}

// SetPageSize changes the page length for subsequent reads.
func (h *Stock) SetPageSize(n int) {
	if n < 1 {
		return
	}
	h.mu.Lock()
	h.pageSize = n
	h.mu.Unlock()
}

// Refresh re-reads the current page.
func (h *Stock) Refresh(ctx context.Context) error {
	h.mu.Lock()
	h.loading = true
	h.mu.Unlock()
	return h.reload(ctx)
}

// Add validates the item, assigns its id and timestamp and writes it
// through the store, then re-reads the current page.
func (h *Stock) Add(ctx context.Context, item models.StockItem) (models.StockItem, error) {
	if err := item.Validate().Err(); err != nil {
		h.setErr(err)
		return models.StockItem{}, err
	}
	now := h.now()
	item.ID = numbering.NewID("stk", now)
	item.UpdatedAt = now
	if err := h.mutate(ctx, func() error { return h.col.Put(ctx, item) }); err != nil {
		return models.StockItem{}, err
	}
	return item, nil
}

// Update replaces the stored item, keeping its id and refreshing
// updatedAt. Updating an absent id surfaces storage.ErrNotFound and leaves
// the cached page untouched.
func (h *Stock) Update(ctx context.Context, item models.StockItem) (models.StockItem, error) {
	if err := item.Validate().Err(); err != nil {
		h.setErr(err)
		return models.StockItem{}, err
	}
	if _, err := h.col.ByID(ctx, item.ID); err != nil {
		h.setErr(err)
		return models.StockItem{}, err
	}
	item.UpdatedAt = h.now()
	if err := h.mutate(ctx, func() error { return h.col.Put(ctx, item) }); err != nil {
		return models.StockItem{}, err
	}
	return item, nil
}

// Delete removes the item. When that empties the current page and an
// earlier page exists, the cursor steps back one page so the view never
// strands on an empty page.
func (h *Stock) Delete(ctx context.Context, id string) error {
	if err := h.mutate(ctx, func() error { return h.col.Delete(ctx, id) }); err != nil {
		return err
	}
	h.mu.Lock()
	stepBack := len(h.items) == 0 && h.page > 1
	if stepBack {
		h.page--
		h.loading = true
	}
	h.mu.Unlock()
	if stepBack {
		return h.reload(ctx)
	}
	return nil
}

// Replace swaps the entire stock collection (wholesale import) and rewinds
// to the first page.
func (h *Stock) Replace(ctx context.Context, items []models.StockItem) error {
	h.mu.Lock()
	h.page = 1
	h.mu.Unlock()
	return h.mutate(ctx, func() error { return h.col.Replace(ctx, items) })
}

// mutate mirrors Documents.mutate: write, re-read, publish SyncRequested —
// or restore the pre-call state and surface the error.
func (h *Stock) mutate(ctx context.Context, write func() error) error {
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

func (h *Stock) reload(ctx context.Context) error {
	h.mu.Lock()
	q := storage.PageQuery{Query: h.filter, Page: h.page, PageSize: h.pageSize}
	h.mu.Unlock()

	page, err := h.col.GetPage(ctx, q)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.loading = false
	if err != nil {
		h.err = err
		return err
	}
	h.items = page.Items
	h.total = page.TotalCount
	h.err = nil
	return nil
}

func (h *Stock) setErr(err error) {
	h.mu.Lock()
	h.err = err
	h.mu.Unlock()
}
