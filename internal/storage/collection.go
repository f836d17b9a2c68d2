// Package storage is the durable collection layer: one homogeneous table of
// records per collection, addressed by string id, with filtering and
// counting pushed down into SQL.
package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is anything a Collection can persist.
type Record interface {
	RecordID() string
}

// Collection is one logical table of records. It makes no ordering promise
// on All; ordering is a caller concern. All operations either complete with
// the described effect or fail without leaving a partial write visible.
type Collection[T Record] struct {
	db           *gorm.DB
	searchColumn string
}

func NewCollection[T Record](db *gorm.DB) *Collection[T] {
	return &Collection[T]{db: db}
}

// WithSearchColumn names the precomputed normalized column Page filters
// against. Collections without one reject Page calls.
func (c *Collection[T]) WithSearchColumn(column string) *Collection[T] {
	c.searchColumn = column
	return c
}

// All returns every record currently stored.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	var recs []T
	if err := c.db.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, wrap("all", err)
	}
	return recs, nil
}

// ByID returns the record with the given id, or ErrNotFound.
func (c *Collection[T]) ByID(ctx context.Context, id string) (T, error) {
	var rec T
	err := c.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, ErrNotFound
	}
	if err != nil {
		return rec, wrap("by_id", err)
	}
	return rec, nil
}

// Put inserts or replaces the record keyed by its id. Two concurrent
// writers to the same id resolve last-write-wins with no conflict
// detection; compare-and-swap on updatedAt would be the extension point if
// that ever stops being acceptable.
func (c *Collection[T]) Put(ctx context.Context, rec T) error {
	err := c.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error
	return wrap("put", err)
}

// Delete removes the record. Deleting an absent id is a no-op, so the call
// is idempotent. Removal is permanent: no tombstone is kept.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	var zero T
	err := c.db.WithContext(ctx).Where("id = ?", id).Delete(&zero).Error
	return wrap("delete", err)
}

// Replace clears the collection and inserts recs in one transaction. Used
// for wholesale import; readers never observe the intermediate empty state.
func (c *Collection[T]) Replace(ctx context.Context, recs []T) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var zero T
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&zero).Error; err != nil {
			return err
		}
		if len(recs) == 0 {
			return nil
		}
		return tx.CreateInBatches(&recs, 200).Error
	})
	return wrap("replace", err)
}

// Count returns the number of stored records.
func (c *Collection[T]) Count(ctx context.Context) (int64, error) {
	var zero T
	var n int64
	if err := c.db.WithContext(ctx).Model(&zero).Count(&n).Error; err != nil {
		return 0, wrap("count", err)
	}
	return n, nil
}
