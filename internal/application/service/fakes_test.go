package service

import (
	"context"
	"errors"
	"sync"

	"github.com/ancarat/orderdesk/internal/config"
)

// fakeStore is an in-memory TabularStore tracking every call it serves.
type fakeStore struct {
	mu sync.Mutex

	segments map[string][]string        // title -> code column
	headers  map[string][]string        // title -> header row
	appended map[string][][]interface{} // title -> appended rows

	listErr   error
	createErr error
	readErr   error
	appendErr error

	listCalls   int
	createCalls int
	headerCalls int
	appendCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		segments: make(map[string][]string),
		headers:  make(map[string][]string),
		appended: make(map[string][][]interface{}),
	}
}

func (f *fakeStore) ListSegments(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	titles := make([]string, 0, len(f.segments))
	for t := range f.segments {
		titles = append(titles, t)
	}
	return titles, nil
}

func (f *fakeStore) CreateSegment(ctx context.Context, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	f.segments[title] = nil
	return nil
}

func (f *fakeStore) WriteHeader(ctx context.Context, title string, header []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.headerCalls++
	f.headers[title] = header
	return nil
}

func (f *fakeStore) ReadColumn(ctx context.Context, title string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.segments[title], nil
}

func (f *fakeStore) AppendRows(ctx context.Context, title string, rows [][]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appendCalls++
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended[title] = append(f.appended[title], rows...)
	for _, row := range rows {
		if len(row) > 0 {
			if code, ok := row[0].(string); ok {
				f.segments[title] = append(f.segments[title], code)
			}
		}
	}
	return nil
}

func (f *fakeStore) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls + f.createCalls + f.headerCalls + f.appendCalls
}

// fakeRefStore serves reference ranges keyed by range reference.
type fakeRefStore struct {
	ranges map[string][][]string
	err    error
}

func (f *fakeRefStore) ReadRange(ctx context.Context, sheetID, rangeRef string) ([][]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ranges[rangeRef], nil
}

// fakeFeed returns canned catalog rows and counts fetches.
type fakeFeed struct {
	rows  [][]string
	err   error
	calls int
}

func (f *fakeFeed) Fetch(ctx context.Context) ([][]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

var errBoom = errors.New("boom")

func testSettings() func() config.Settings {
	return func() config.Settings {
		return config.Settings{
			LedgerSheetID:   "ledger-sheet",
			AgentSheetID:    "agent-sheet",
			DeliverySheetID: "delivery-sheet",
			ProductFeedURL:  "http://feed.local/products",
		}
	}
}
