package workbook

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/ancarat/orderdesk/pkg/apperror"
	"github.com/xuri/excelize/v2"
)

// Store is a TabularStore backed by a local .xlsx workbook. It exists so the
// desk can run against a file during development or when the spreadsheet
// service is unreachable; one sheet per ledger segment, same layout as the
// hosted store.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a workbook store at the given path, creating the file on
// first use.
func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) open() (*excelize.File, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		f := excelize.NewFile()
		if err := f.SaveAs(s.path); err != nil {
			return nil, apperror.Wrap(apperror.ErrStoreUnavailable, err.Error())
		}
		return f, nil
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrStoreUnavailable, err.Error())
	}
	return f, nil
}

// ListSegments returns the sheet names in the workbook.
func (s *Store) ListSegments(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

// CreateSegment adds an empty sheet with the given title.
func (s *Store) CreateSegment(ctx context.Context, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.NewSheet(title); err != nil {
		return apperror.Wrap(apperror.ErrStoreUnavailable, err.Error())
	}
	if err := f.Save(); err != nil {
		return apperror.Wrap(apperror.ErrStoreUnavailable, err.Error())
	}
	return nil
}

// WriteHeader writes the header cells to row 1 of a segment.
func (s *Store) WriteHeader(ctx context.Context, title string, header []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := f.SetSheetRow(title, "A1", &cells); err != nil {
		return apperror.Wrap(apperror.ErrStoreUnavailable, err.Error())
	}
	if err := f.Save(); err != nil {
		return apperror.Wrap(apperror.ErrStoreUnavailable, err.Error())
	}
	return nil
}

// ReadColumn reads column A below the header row of a segment.
func (s *Store) ReadColumn(ctx context.Context, title string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(title)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrStoreUnavailable, err.Error())
	}

	values := make([]string, 0, len(rows))
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		values = append(values, row[0])
	}
	return values, nil
}

// AppendRows appends rows after the last occupied row of a segment.
func (s *Store) AppendRows(ctx context.Context, title string, rows [][]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(rows) == 0 {
		return nil
	}

	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	existing, err := f.GetRows(title)
	if err != nil {
		return apperror.Wrap(apperror.ErrStoreUnavailable, err.Error())
	}

	next := len(existing) + 1
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", next+i)
		r := row
		if err := f.SetSheetRow(title, cell, &r); err != nil {
			return apperror.Wrap(apperror.ErrStoreUnavailable, err.Error())
		}
	}
	if err := f.Save(); err != nil {
		return apperror.Wrap(apperror.ErrStoreUnavailable, err.Error())
	}
	return nil
}
