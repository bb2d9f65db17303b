package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ancarat/orderdesk/internal/domain/entity"
)

func sampleSummary() *entity.OrderSummary {
	line := entity.PricedLine{}
	line.Product = "Gold 1g"
	line.LockedPrice = 1000000
	line.Quantity = 2
	line.LockedSubtotal = 2000000
	line.LockedDiscount = 50000
	line.LockedFinal = 1950000

	return &entity.OrderSummary{
		OrderCode:       "107032025BDL",
		Counterparty:    "ABC Dealer",
		DiscountPercent: 2.5,
		Lines:           []entity.PricedLine{line},
		Operator:        "Lan",
		CreatedAt:       "07/03/2025 09:30",
		Flow:            "sell",
	}
}

func TestOrderPlacedPostsWebhook(t *testing.T) {
	var got webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	NewDiscordNotifier(srv.URL).OrderPlaced(context.Background(), sampleSummary())

	if len(got.Embeds) != 1 {
		t.Fatalf("got %d embeds, want 1", len(got.Embeds))
	}
	e := got.Embeds[0]

	var foundCode, foundTotals bool
	for _, f := range e.Fields {
		if f.Value == "107032025BDL" {
			foundCode = true
		}
		if strings.Contains(f.Value, "1.950.000 ₫") {
			foundTotals = true
		}
	}
	if !foundCode {
		t.Error("payload missing order code field")
	}
	if !foundTotals {
		t.Error("payload missing formatted totals field")
	}
}

func TestOrderPlacedSwallowsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	// Must not panic or propagate anything.
	NewDiscordNotifier(srv.URL).OrderPlaced(context.Background(), sampleSummary())
}

func TestOrderPlacedDisabledWithoutURL(t *testing.T) {
	NewDiscordNotifier("").OrderPlaced(context.Background(), sampleSummary())
}

func TestBuildItemsTableTruncates(t *testing.T) {
	lines := make([]entity.PricedLine, maxTableRows+5)
	for i := range lines {
		lines[i].Product = "Gold 1g"
		lines[i].Quantity = 1
	}

	table := buildItemsTable(lines)
	if !strings.Contains(table, "và 5 sản phẩm khác") {
		t.Errorf("table should note the 5 overflow lines:\n%s", table)
	}
}

func TestBuildItemsTableEmpty(t *testing.T) {
	if got := buildItemsTable(nil); got != "Không có sản phẩm" {
		t.Errorf("empty table = %q", got)
	}
}

func TestFormatVND(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0 ₫"},
		{1000, "1.000 ₫"},
		{1950000, "1.950.000 ₫"},
		{-52500, "-52.500 ₫"},
		{999, "999 ₫"},
	}
	for _, tt := range tests {
		if got := formatVND(tt.in); got != tt.want {
			t.Errorf("formatVND(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPad(t *testing.T) {
	if got := pad("ab", 4); got != "ab  " {
		t.Errorf("pad short = %q", got)
	}
	if got := pad("abcdef", 4); got != "abcd" {
		t.Errorf("pad long = %q", got)
	}
	// Rune-aware: Vietnamese product names must not be split mid-rune.
	if got := pad("vàng", 6); got != "vàng  " {
		t.Errorf("pad unicode = %q", got)
	}
}
