package repository

import (
	"context"
	"time"
)

// Segment is a resolved daily ledger partition and the next free sequence
// number within it.
type Segment struct {
	Title        string
	NextSequence int
}

// SequenceAllocator resolves the target segment and next order sequence for
// a transaction-type prefix on a business day. The default implementation
// scans existing order codes; a backend with a real atomic counter can be
// swapped in without touching callers.
type SequenceAllocator interface {
	Resolve(ctx context.Context, prefix string, today time.Time) (Segment, error)
}
