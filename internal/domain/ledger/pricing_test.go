package ledger

import (
	"math"
	"testing"

	"github.com/ancarat/orderdesk/internal/domain/entity"
	"github.com/ancarat/orderdesk/internal/domain/enum"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestPriceLinesSellDealer(t *testing.T) {
	lines := []entity.OrderLine{
		{Product: "Gold 1g", LockedPrice: 1000000, Quantity: 2, DiscountPercent: 2.5},
	}
	live := map[string]entity.LivePrice{
		"gold 1g": {Sell: 1050000, Buy: 990000},
	}

	priced := PriceLines(lines, live, enum.FlowSell)
	if len(priced) != 1 {
		t.Fatalf("got %d priced lines, want 1", len(priced))
	}

	p := priced[0]
	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"locked subtotal", p.LockedSubtotal, 2000000},
		{"locked discount", p.LockedDiscount, 50000},
		{"locked final", p.LockedFinal, 1950000},
		{"live price", p.LivePrice, 1050000},
		{"live subtotal", p.LiveSubtotal, 2100000},
		{"live discount", p.LiveDiscountAmount, 52500},
		{"live final", p.LiveFinal, 2047500},
	}
	for _, c := range checks {
		if !almostEqual(c.got, c.want) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestPriceLinesBuyBackSignFlips(t *testing.T) {
	lines := []entity.OrderLine{
		{Product: "Gold 1g", LockedPrice: 1000000, Quantity: 2, DiscountPercent: 0.5},
	}
	live := map[string]entity.LivePrice{
		"gold 1g": {Sell: 1050000, Buy: 990000},
	}

	p := PriceLines(lines, live, enum.FlowBuyBack)[0]

	// Buying back, the discount increases the payout.
	if !almostEqual(p.LockedFinal, p.LockedSubtotal+p.LockedDiscount) {
		t.Errorf("locked final = %v, want subtotal + discount", p.LockedFinal)
	}
	if !almostEqual(p.LockedFinal, 2010000) {
		t.Errorf("locked final = %v, want 2010000", p.LockedFinal)
	}

	// The buy-back flow quotes the buy side of the feed.
	if !almostEqual(p.LivePrice, 990000) {
		t.Errorf("live price = %v, want buy price 990000", p.LivePrice)
	}
	if !almostEqual(p.LiveFinal, p.LiveSubtotal+p.LiveDiscountAmount) {
		t.Errorf("live final = %v, want subtotal + discount", p.LiveFinal)
	}
}

func TestPriceLinesSignInvariant(t *testing.T) {
	lines := []entity.OrderLine{
		{Product: "a", LockedPrice: 123456, Quantity: 3, DiscountPercent: 1.25},
		{Product: "b", LockedPrice: 999999, Quantity: 1, DiscountPercent: 10},
		{Product: "c", LockedPrice: 50000, Quantity: 7},
	}
	live := map[string]entity.LivePrice{
		"a": {Sell: 130000, Buy: 120000},
		"b": {Sell: 1000001, Buy: 999000},
	}

	for _, flow := range []enum.Flow{enum.FlowSell, enum.FlowBuyBack} {
		for _, p := range PriceLines(lines, live, flow) {
			want := p.LockedSubtotal - p.LockedDiscount
			wantLive := p.LiveSubtotal - p.LiveDiscountAmount
			if flow == enum.FlowBuyBack {
				want = p.LockedSubtotal + p.LockedDiscount
				wantLive = p.LiveSubtotal + p.LiveDiscountAmount
			}
			if !almostEqual(p.LockedFinal, want) {
				t.Errorf("%s %s: locked final = %v, want %v", flow, p.Product, p.LockedFinal, want)
			}
			if !almostEqual(p.LiveFinal, wantLive) {
				t.Errorf("%s %s: live final = %v, want %v", flow, p.Product, p.LiveFinal, wantLive)
			}
		}
	}
}

func TestPriceLinesUnknownProductQuotesZero(t *testing.T) {
	lines := []entity.OrderLine{
		{Product: "Mystery", LockedPrice: 500000, Quantity: 1, DiscountPercent: 2},
	}

	p := PriceLines(lines, nil, enum.FlowSell)[0]
	if p.LivePrice != 0 || p.LiveSubtotal != 0 || p.LiveFinal != 0 {
		t.Errorf("unknown product priced live as %v/%v/%v, want zeros", p.LivePrice, p.LiveSubtotal, p.LiveFinal)
	}
	if !almostEqual(p.LockedFinal, 490000) {
		t.Errorf("locked final = %v, want 490000", p.LockedFinal)
	}
}

func TestPriceLinesCaseInsensitiveLookup(t *testing.T) {
	lines := []entity.OrderLine{
		{Product: "  GOLD 1G ", LockedPrice: 1000000, Quantity: 1},
	}
	live := map[string]entity.LivePrice{
		"gold 1g": {Sell: 1050000},
	}

	p := PriceLines(lines, live, enum.FlowSell)[0]
	if !almostEqual(p.LivePrice, 1050000) {
		t.Errorf("live price = %v, want 1050000", p.LivePrice)
	}
}

func TestLookupKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Gold 1g", "gold 1g"},
		{"  GOLD 1G ", "gold 1g"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := LookupKey(tt.in); got != tt.want {
			t.Errorf("LookupKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTotals(t *testing.T) {
	lines := []entity.PricedLine{
		{LockedSubtotal: 2000000, LockedDiscount: 50000, LockedFinal: 1950000},
		{LockedSubtotal: 500000, LockedDiscount: 0, LockedFinal: 500000},
	}

	subtotal, discount, final := Totals(lines)
	if !almostEqual(subtotal, 2500000) || !almostEqual(discount, 50000) || !almostEqual(final, 2450000) {
		t.Errorf("Totals = %v/%v/%v, want 2500000/50000/2450000", subtotal, discount, final)
	}
}
