package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/ancarat/orderdesk/internal/domain/ledger"
	"github.com/ancarat/orderdesk/internal/domain/repository"
)

// SegmentResolver resolves the daily ledger segment for a transaction-type
// prefix and derives the next order sequence by scanning existing codes.
//
// The scan is the store's substitute for an atomic counter: the backing
// spreadsheet has none, so the previous sequence is recovered from the codes
// already written. Resolving never mutates an existing segment; a brand-new
// segment is created with its header exactly once and starts at sequence 1.
//
// Two concurrent submissions that both scan before either appends would mint
// the same code, so callers hold the per-segment lock across scan and append.
// That serializes writers within this process; writers in other processes
// remain unserialized, which the desk accepts at its volume.
type SegmentResolver struct {
	store  repository.TabularStore
	schema ledger.Schema

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewSegmentResolver creates a resolver for the given store and schema.
func NewSegmentResolver(store repository.TabularStore, schema ledger.Schema) *SegmentResolver {
	return &SegmentResolver{
		store:  store,
		schema: schema,
		locks:  make(map[string]*sync.Mutex),
	}
}

// Lock acquires the process-wide lock for a segment title and returns the
// release function. Held across the resolve-then-append window.
func (r *SegmentResolver) Lock(title string) func() {
	r.mu.Lock()
	m, ok := r.locks[title]
	if !ok {
		m = &sync.Mutex{}
		r.locks[title] = m
	}
	r.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// Resolve returns the segment title and next free sequence for a prefix on
// the given business day. Reading is idempotent: without an intervening
// append, repeated calls return the same sequence.
func (r *SegmentResolver) Resolve(ctx context.Context, prefix string, today time.Time) (repository.Segment, error) {
	title := ledger.SegmentTitle(prefix, today)

	titles, err := r.store.ListSegments(ctx)
	if err != nil {
		return repository.Segment{}, err
	}

	if !slices.Contains(titles, title) {
		if err := r.store.CreateSegment(ctx, title); err != nil {
			return repository.Segment{}, err
		}
		if err := r.store.WriteHeader(ctx, title, r.schema.Header); err != nil {
			return repository.Segment{}, err
		}
		return repository.Segment{Title: title, NextSequence: 1}, nil
	}

	codes, err := r.store.ReadColumn(ctx, title)
	if err != nil {
		return repository.Segment{}, err
	}

	// Rows that fail to parse contribute no candidate, so a segment full of
	// junk still restarts at 1 instead of 0+1.
	max := 0
	for _, code := range codes {
		if n, ok := r.schema.SequenceFromCode(code); ok && n > max {
			max = n
		}
	}

	return repository.Segment{Title: title, NextSequence: max + 1}, nil
}
