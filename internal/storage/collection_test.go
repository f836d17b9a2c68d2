package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gestidoc/internal/models"
)

func setupStockCollection(t *testing.T) *Collection[models.StockItem] {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.StockItem{}))
	return NewCollection[models.StockItem](db).WithSearchColumn("search_text")
}

func stockItem(id, name, category string, qty int) models.StockItem {
	return models.StockItem{ID: id, Name: name, Category: category, Quantity: qty, UpdatedAt: time.Now()}
}

func TestPutAllByID(t *testing.T) {
	col := setupStockCollection(t)
	ctx := context.Background()

	require.NoError(t, col.Put(ctx, stockItem("s1", "Clavier", "Périphériques", 3)))
	require.NoError(t, col.Put(ctx, stockItem("s2", "Souris", "Périphériques", 8)))

	all, err := col.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	got, err := col.ByID(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, "Clavier", got.Name)
	require.Equal(t, 3, got.Quantity)

	_, err = col.ByID(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPutIsIdempotentUpsert(t *testing.T) {
	col := setupStockCollection(t)
	ctx := context.Background()

	item := stockItem("s1", "Clavier", "Périphériques", 3)
	require.NoError(t, col.Put(ctx, item))
	require.NoError(t, col.Put(ctx, item))

	n, err := col.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestPutLastWriteWins(t *testing.T) {
	col := setupStockCollection(t)
	ctx := context.Background()

	// Two contexts writing the same id: no merge, no conflict error — the
	// later payload simply replaces the earlier one.
	require.NoError(t, col.Put(ctx, stockItem("s1", "Clavier", "Périphériques", 3)))
	require.NoError(t, col.Put(ctx, stockItem("s1", "Clavier mécanique", "Périphériques", 5)))

	got, err := col.ByID(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, "Clavier mécanique", got.Name)
	require.Equal(t, 5, got.Quantity)
}

// The store must persist exactly the updatedAt the caller assigned, on
// both the insert and the conflict-update path. The hooks own that
// timestamp; nothing below them may restamp it.
func TestPutKeepsCallerAssignedUpdatedAt(t *testing.T) {
	col := setupStockCollection(t)
	ctx := context.Background()

	at := time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC)
	item := stockItem("s1", "Clavier", "Périphériques", 1)
	item.UpdatedAt = at
	require.NoError(t, col.Put(ctx, item))

	got, err := col.ByID(ctx, "s1")
	require.NoError(t, err)
	require.True(t, got.UpdatedAt.Equal(at), "insert restamped updatedAt: %v", got.UpdatedAt)

	item.Name = "Clavier mécanique"
	item.UpdatedAt = at.Add(time.Hour)
	require.NoError(t, col.Put(ctx, item))

	got, err = col.ByID(ctx, "s1")
	require.NoError(t, err)
	require.True(t, got.UpdatedAt.Equal(at.Add(time.Hour)), "upsert restamped updatedAt: %v", got.UpdatedAt)
}

func TestDeleteIsIdempotent(t *testing.T) {
	col := setupStockCollection(t)
	ctx := context.Background()

	require.NoError(t, col.Put(ctx, stockItem("s1", "Clavier", "", 1)))
	require.NoError(t, col.Delete(ctx, "s1"))
	require.NoError(t, col.Delete(ctx, "s1"))
	require.NoError(t, col.Delete(ctx, "never-existed"))

	n, err := col.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestReplaceLeavesNoResidue(t *testing.T) {
	col := setupStockCollection(t)
	ctx := context.Background()

	require.NoError(t, col.Put(ctx, stockItem("old1", "Ancien", "", 1)))
	require.NoError(t, col.Put(ctx, stockItem("old2", "Vieux", "", 2)))

	imported := []models.StockItem{
		stockItem("new1", "Écran", "Écrans", 4),
		stockItem("new2", "Câble", "Câbles", 9),
	}
	require.NoError(t, col.Replace(ctx, imported))

	all, err := col.All(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(all))
	for _, it := range all {
		ids = append(ids, it.ID)
	}
	require.ElementsMatch(t, []string{"new1", "new2"}, ids)
}

func TestReplaceWithEmptySetClearsCollection(t *testing.T) {
	col := setupStockCollection(t)
	ctx := context.Background()

	require.NoError(t, col.Put(ctx, stockItem("s1", "Clavier", "", 1)))
	require.NoError(t, col.Replace(ctx, nil))

	n, err := col.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestGetPageAccentAndCaseInsensitive(t *testing.T) {
	col := setupStockCollection(t)
	ctx := context.Background()

	require.NoError(t, col.Put(ctx, stockItem("s1", "Écran A2337", "Écrans", 5)))
	require.NoError(t, col.Put(ctx, stockItem("s2", "Clavier", "Périphériques", 2)))

	page, err := col.GetPage(ctx, PageQuery{Query: "ecran", Page: 1, PageSize: 25})
	require.NoError(t, err)
	require.GreaterOrEqual(t, page.TotalCount, int64(1))
	require.Len(t, page.Items, 1)
	require.Equal(t, "Écran A2337", page.Items[0].Name)

	// Matching also covers the reference field.
	ref := stockItem("s3", "Dalle", "Écrans", 1)
	ref.Reference = "ECR-77"
	require.NoError(t, col.Put(ctx, ref))

	page, err = col.GetPage(ctx, PageQuery{Query: "ecr-77", Page: 1, PageSize: 25})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.TotalCount)
}

func TestGetPageSumAcrossPagesEqualsTotal(t *testing.T) {
	col := setupStockCollection(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		require.NoError(t, col.Put(ctx, stockItem(fmt.Sprintf("s%02d", i), fmt.Sprintf("Écran %d", i), "Écrans", i)))
	}
	require.NoError(t, col.Put(ctx, stockItem("zz", "Clavier", "Périphériques", 1)))

	const pageSize = 3
	seen := map[string]bool{}
	var total int64
	for p := 1; ; p++ {
		page, err := col.GetPage(ctx, PageQuery{Query: "écran", Page: p, PageSize: pageSize})
		require.NoError(t, err)
		require.LessOrEqual(t, len(page.Items), pageSize)
		total = page.TotalCount
		if len(page.Items) == 0 {
			break
		}
		for _, it := range page.Items {
			require.False(t, seen[it.ID], "item %s returned twice", it.ID)
			seen[it.ID] = true
		}
	}
	require.EqualValues(t, 7, total)
	require.Len(t, seen, 7)
}

func TestGetPageBeyondLastPage(t *testing.T) {
	col := setupStockCollection(t)
	ctx := context.Background()

	require.NoError(t, col.Put(ctx, stockItem("s1", "Écran", "Écrans", 1)))

	page, err := col.GetPage(ctx, PageQuery{Query: "", Page: 99, PageSize: 25})
	require.NoError(t, err)
	require.Empty(t, page.Items)
	require.EqualValues(t, 1, page.TotalCount)
}

func TestGetPageEmptyQueryReturnsEverything(t *testing.T) {
	col := setupStockCollection(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, col.Put(ctx, stockItem(fmt.Sprintf("s%d", i), "Article", "", i)))
	}

	page, err := col.GetPage(ctx, PageQuery{Query: "", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 4)
	require.EqualValues(t, 4, page.TotalCount)
}

func TestGetPageRejectsBadBounds(t *testing.T) {
	col := setupStockCollection(t)
	ctx := context.Background()

	_, err := col.GetPage(ctx, PageQuery{Page: 1, PageSize: 0})
	require.ErrorIs(t, err, ErrBadPage)

	_, err = col.GetPage(ctx, PageQuery{Page: 0, PageSize: 10})
	require.ErrorIs(t, err, ErrBadPage)
}

func TestTotalPages(t *testing.T) {
	require.Equal(t, 0, Page[models.StockItem]{TotalCount: 0}.TotalPages(25))
	require.Equal(t, 1, Page[models.StockItem]{TotalCount: 1}.TotalPages(25))
	require.Equal(t, 1, Page[models.StockItem]{TotalCount: 25}.TotalPages(25))
	require.Equal(t, 2, Page[models.StockItem]{TotalCount: 26}.TotalPages(25))
}
