// Package voicelog keeps the most recent voice-pipeline events for the debug console.
package voicelog

import (
	"sync"
	"time"
)

const DefaultCapacity = 100

type Entry struct {
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
	Type      string `json:"type"`
}

// Ring is a bounded, concurrency-safe log with live subscribers. Slow
// subscribers miss entries rather than block writers.
type Ring struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
	subs    map[chan Entry]struct{}
	now     func() time.Time
}

func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{
		entries: make([]Entry, capacity),
		subs:    make(map[chan Entry]struct{}),
		now:     time.Now,
	}
}

// Add records a message; an empty type defaults to "info".
func (r *Ring) Add(message, typ string) Entry {
	if typ == "" {
		typ = "info"
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e := Entry{Timestamp: r.now().Format("2006-01-02 15:04:05.000"), Message: message, Type: typ}
	r.entries[r.next] = e
	r.next = (r.next + 1) % len(r.entries)
	if r.next == 0 {
		r.full = true
	}
	for ch := range r.subs {
		select {
		case ch <- e:
		default:
		}
	}
	return e
}

// Snapshot returns the retained entries, oldest first.
func (r *Ring) Snapshot() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Ring) snapshotLocked() []Entry {
	if !r.full {
		return append([]Entry(nil), r.entries[:r.next]...)
	}
	out := make([]Entry, 0, len(r.entries))
	out = append(out, r.entries[r.next:]...)
	return append(out, r.entries[:r.next]...)
}

// Subscribe returns the current snapshot and a channel of later entries.
// Call cancel to release the subscription.
func (r *Ring) Subscribe(buffer int) ([]Entry, <-chan Entry, func()) {
	ch := make(chan Entry, max(buffer, 1))
	r.mu.Lock()
	snap := r.snapshotLocked()
	r.subs[ch] = struct{}{}
	r.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subs, ch)
			r.mu.Unlock()
			close(ch)
		})
	}
	return snap, ch, cancel
}
