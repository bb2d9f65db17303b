package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ancarat/orderdesk/internal/config"
	"github.com/ancarat/orderdesk/pkg/apperror"
)

func TestDatesSkipsHeaderRow(t *testing.T) {
	ref := &fakeRefStore{ranges: map[string][][]string{
		"Ngay_Giao!A:B": {
			{"Mã SP", "Ngày giao"},
			{"g1", "10/03/2025"},
			{"g5", " 12/03/2025 "},
			{"", "ignored"},
			{"g9"},
		},
	}}
	svc := NewDeliveryService(ref, testSettings())

	dates, err := svc.Dates(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(dates) != 3 {
		t.Fatalf("got %d entries, want 3", len(dates))
	}
	if dates["g1"] != "10/03/2025" {
		t.Errorf("g1 = %q, want 10/03/2025", dates["g1"])
	}
	if dates["g5"] != "12/03/2025" {
		t.Errorf("g5 = %q, want trimmed date", dates["g5"])
	}
	if dates["g9"] != "" {
		t.Errorf("g9 = %q, want empty date", dates["g9"])
	}
}

func TestDatesRequiresSheetID(t *testing.T) {
	svc := NewDeliveryService(&fakeRefStore{}, func() config.Settings {
		return config.Settings{}
	})

	if _, err := svc.Dates(context.Background()); !errors.Is(err, apperror.ErrConfigMissing) {
		t.Fatalf("err = %v, want ErrConfigMissing", err)
	}
}

func TestDatesPropagatesStoreError(t *testing.T) {
	svc := NewDeliveryService(&fakeRefStore{err: errBoom}, testSettings())
	if _, err := svc.Dates(context.Background()); err == nil {
		t.Fatal("expected error from store")
	}
}
