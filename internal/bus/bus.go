// Package bus is the process-wide change notification broadcast. It
// decouples writers from the independent views that each keep their own
// cached copy of a collection.
package bus

import (
	"sync"

	"github.com/google/uuid"
)

// Signal names one kind of broadcast. Signals carry no payload on purpose:
// receivers re-read their own collection instead of trusting data embedded
// in an event, which could be partial or arrive out of order.
type Signal string

const (
	// DataReceived means an external process wrote to the store out of
	// band (import, restore). Every view should refetch its collection.
	DataReceived Signal = "data-received"
	// SyncRequested means a local mutation committed and outbound
	// replication should run.
	SyncRequested Signal = "sync-requested"
)

// Bus dispatches signals synchronously, at most once per emission, to the
// listeners subscribed at that moment. A listener registered after Publish
// returns does not see the emission. Fire-and-forget: no error path, no
// delivery receipt.
type Bus struct {
	mu   sync.Mutex
	subs map[Signal]map[string]func()
}

func New() *Bus {
	return &Bus{subs: make(map[Signal]map[string]func())}
}

// Subscribe registers fn for sig and returns its cancel function. fn runs
// on the publisher's goroutine; keep it short or hand off.
func (b *Bus) Subscribe(sig Signal, fn func()) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[sig] == nil {
		b.subs[sig] = make(map[string]func())
	}
	key := uuid.NewString()
	b.subs[sig][key] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[sig], key)
	}
}

// Publish calls every listener currently subscribed to sig.
func (b *Bus) Publish(sig Signal) {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.subs[sig]))
	for _, fn := range b.subs[sig] {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
