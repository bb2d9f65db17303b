package repository

import "context"

// TabularStore is the ledger's storage protocol: any backend that can list
// day segments, create one, write its header once, read a column and append
// rows is compatible. The Google Sheets backend is the production one; a
// local workbook backend exists for development.
type TabularStore interface {
	// ListSegments returns the titles of all segments in the ledger.
	ListSegments(ctx context.Context) ([]string, error)
	// CreateSegment adds an empty segment with the given title.
	CreateSegment(ctx context.Context, title string) error
	// WriteHeader writes the header cells to the first row of a segment.
	WriteHeader(ctx context.Context, title string, header []string) error
	// ReadColumn returns the values of the first column below the header.
	ReadColumn(ctx context.Context, title string) ([]string, error)
	// AppendRows appends rows after the last occupied row of a segment,
	// with insert-rows semantics, preserving the given order.
	AppendRows(ctx context.Context, title string, rows [][]interface{}) error
}

// ReferenceStore reads reference ranges (agents, delivery dates) from a
// tabular source.
type ReferenceStore interface {
	// ReadRange returns the rows of a named range as string cells.
	ReadRange(ctx context.Context, sheetID, rangeRef string) ([][]string, error)
}

// PriceFeed retrieves the live product catalog from the external price API.
type PriceFeed interface {
	// Fetch returns the raw catalog rows: [name, sellText, buyText, optionalId].
	Fetch(ctx context.Context) ([][]string, error)
}
