// Package numbering generates document references and storage ids.
package numbering

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prefixes of the document families that carry a reference number.
const (
	PrefixInvoice       = "FAC"
	PrefixPurchaseOrder = "CMD"
	PrefixQuote         = "PRO"
)

// Reference builds the human-readable document number: prefix, two-digit
// year and month, then the last five digits of the creation time in unix
// milliseconds — e.g. FAC-2608-31245. References sort in creation order
// within a window but are NOT globally unique: the suffix wraps every 100
// seconds, so two documents created close together can collide. That
// matches the numbering of all existing documents and is kept as-is; the
// storage key is the id, never the reference, so a duplicate reference is a
// display anomaly rather than a data hazard.
func Reference(prefix string, t time.Time) string {
	return fmt.Sprintf("%s-%s-%05d", prefix, t.Format("0601"), t.UnixMilli()%100000)
}

// NewID builds the storage key for a new record: lowercase family prefix,
// the full creation time in unix milliseconds and a short random suffix.
// Unlike Reference it is collision-resistant enough to key a collection
// even when records are created in the same millisecond.
func NewID(prefix string, t time.Time) string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%s-%d-%s", strings.ToLower(prefix), t.UnixMilli(), suffix)
}
