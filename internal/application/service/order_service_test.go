package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ancarat/orderdesk/internal/domain/entity"
	"github.com/ancarat/orderdesk/internal/domain/enum"
	"github.com/ancarat/orderdesk/pkg/apperror"
)

func testRefRanges() map[string][][]string {
	return map[string][][]string{
		"Dai_Ly!A2:C": {
			{"ABC Dealer", "2,5", "1"},
			{"XYZ Dealer", "3", "0,5"},
		},
		"Ngay_Giao!A:B": {
			{"Mã SP", "Ngày giao"},
			{"g1", "10/03/2025"},
		},
	}
}

func testFeedRows() [][]string {
	return [][]string{
		{"Gold 1g", "1,050,000", "990000", "g1"},
		{"Gold 5g", "5250000", "4950000", "g5"},
	}
}

func newTestOrderService(t *testing.T, store *fakeStore, ref *fakeRefStore, feed *fakeFeed) *OrderService {
	t.Helper()
	schema := fullSchema(t)
	svc := NewOrderService(
		NewAgentService(ref, testSettings()),
		NewCatalogService(feed, time.Minute),
		NewDeliveryService(ref, testSettings()),
		NewSegmentResolver(store, schema),
		store,
		schema,
		time.UTC,
	)
	svc.now = func() time.Time {
		return time.Date(2025, time.March, 7, 9, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestSubmitSellDealer(t *testing.T) {
	store := newFakeStore()
	svc := newTestOrderService(t, store, &fakeRefStore{ranges: testRefRanges()}, &fakeFeed{rows: testFeedRows()})

	summary, err := svc.Submit(context.Background(), &SubmitInput{
		Counterparty: "abc dealer",
		Operator:     "Lan",
		Flow:         enum.FlowSell,
		Lines: []entity.OrderLine{
			{Product: "Gold 1g", LockedPrice: 1000000, Quantity: 2, DiscountPercent: 2.5},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if summary.OrderCode != "107032025BDL" {
		t.Errorf("order code = %q, want 107032025BDL", summary.OrderCode)
	}
	if summary.CreatedAt != "07/03/2025 09:30" {
		t.Errorf("created at = %q, want 07/03/2025 09:30", summary.CreatedAt)
	}
	if summary.Flow != "sell" {
		t.Errorf("flow = %q, want sell", summary.Flow)
	}

	rows := store.appended["Ban_Dai_Ly_07_03_2025"]
	if len(rows) != 1 {
		t.Fatalf("appended %d rows, want 1", len(rows))
	}
	row := rows[0]
	if len(row) != 17 {
		t.Fatalf("row has %d cells, want 17", len(row))
	}

	checks := []struct {
		idx  int
		want interface{}
	}{
		{0, "107032025BDL"},
		{1, "abc dealer"},
		{2, 2.5},
		{3, "Gold 1g"},
		{4, 1000000.0},
		{5, 1050000.0},
		{6, 2},
		{7, 2000000.0},
		{8, 50000.0},
		{9, 1950000.0},
		{10, 2100000.0},
		{11, 52500.0},
		{12, 2047500.0},
		{13, "Lan"},
		{14, "09:30"},
		{15, "10/03/2025"},
	}
	for _, c := range checks {
		if row[c.idx] != c.want {
			t.Errorf("cell %d = %v, want %v", c.idx, row[c.idx], c.want)
		}
	}
}

func TestSubmitUnknownCounterpartyIsWalkIn(t *testing.T) {
	store := newFakeStore()
	svc := newTestOrderService(t, store, &fakeRefStore{ranges: testRefRanges()}, &fakeFeed{rows: testFeedRows()})

	summary, err := svc.Submit(context.Background(), &SubmitInput{
		Counterparty: "Nguyen Van A",
		Operator:     "Lan",
		Flow:         enum.FlowSell,
		Lines: []entity.OrderLine{
			{Product: "Gold 1g", LockedPrice: 1000000, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if summary.OrderCode != "107032025BKL" {
		t.Errorf("order code = %q, want walk-in suffix BKL", summary.OrderCode)
	}
	if _, ok := store.appended["Ban_Khach_Le_07_03_2025"]; !ok {
		t.Error("order not appended to walk-in segment")
	}
}

func TestSubmitBuyBackUsesBuyPriceAndFlippedSign(t *testing.T) {
	store := newFakeStore()
	svc := newTestOrderService(t, store, &fakeRefStore{ranges: testRefRanges()}, &fakeFeed{rows: testFeedRows()})

	summary, err := svc.Submit(context.Background(), &SubmitInput{
		Counterparty: "ABC Dealer",
		Operator:     "Lan",
		Flow:         enum.FlowBuyBack,
		Lines: []entity.OrderLine{
			{Product: "Gold 1g", LockedPrice: 1000000, Quantity: 2, DiscountPercent: 0.5},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if summary.OrderCode != "107032025MDL" {
		t.Errorf("order code = %q, want 107032025MDL", summary.OrderCode)
	}

	row := store.appended["Mua_Dai_Ly_07_03_2025"][0]
	if row[5] != 990000.0 {
		t.Errorf("live price = %v, want buy side 990000", row[5])
	}
	// Locked: 2000000 subtotal, 10000 discount, payout grows on buy-back.
	if row[9] != 2010000.0 {
		t.Errorf("locked final = %v, want 2010000", row[9])
	}
	// Delivery date only applies to the sell flow.
	if row[15] != "" {
		t.Errorf("delivery date = %v, want blank on buy-back", row[15])
	}
}

func TestSubmitNoValidLines(t *testing.T) {
	store := newFakeStore()
	feed := &fakeFeed{rows: testFeedRows()}
	svc := newTestOrderService(t, store, &fakeRefStore{ranges: testRefRanges()}, feed)

	_, err := svc.Submit(context.Background(), &SubmitInput{
		Counterparty: "ABC Dealer",
		Operator:     "Lan",
		Flow:         enum.FlowSell,
		Lines: []entity.OrderLine{
			{Product: "", LockedPrice: 1000000, Quantity: 1},
			{Product: "Gold 1g", LockedPrice: 0, Quantity: 1},
			{Product: "Gold 1g", LockedPrice: 1000000, Quantity: 0},
		},
	})
	if !errors.Is(err, apperror.ErrNoValidLines) {
		t.Fatalf("err = %v, want ErrNoValidLines", err)
	}

	// Rejection happens before any store or feed traffic.
	if store.totalCalls() != 0 {
		t.Errorf("store saw %d calls, want 0", store.totalCalls())
	}
	if feed.calls != 0 {
		t.Errorf("feed saw %d calls, want 0", feed.calls)
	}
}

func TestSubmitProceedsWhenFeedDown(t *testing.T) {
	store := newFakeStore()
	svc := newTestOrderService(t, store, &fakeRefStore{ranges: testRefRanges()}, &fakeFeed{err: errBoom})

	summary, err := svc.Submit(context.Background(), &SubmitInput{
		Counterparty: "ABC Dealer",
		Operator:     "Lan",
		Flow:         enum.FlowSell,
		Lines: []entity.OrderLine{
			{Product: "Gold 1g", LockedPrice: 1000000, Quantity: 2, DiscountPercent: 2.5},
		},
	})
	if err != nil {
		t.Fatalf("order should stand on locked prices, got %v", err)
	}

	row := store.appended["Ban_Dai_Ly_07_03_2025"][0]
	if row[5] != "" {
		t.Errorf("live price cell = %v, want blank", row[5])
	}
	if row[9] != 1950000.0 {
		t.Errorf("locked final = %v, want 1950000", row[9])
	}
	if row[12] != 0.0 {
		t.Errorf("live final = %v, want 0", row[12])
	}
	if len(summary.Lines) != 1 {
		t.Errorf("summary has %d lines, want 1", len(summary.Lines))
	}
}

func TestSubmitAgentDirectoryDownFallsBackToWalkIn(t *testing.T) {
	store := newFakeStore()
	svc := newTestOrderService(t, store, &fakeRefStore{err: errBoom}, &fakeFeed{rows: testFeedRows()})

	summary, err := svc.Submit(context.Background(), &SubmitInput{
		Counterparty: "ABC Dealer",
		Operator:     "Lan",
		Flow:         enum.FlowSell,
		Lines: []entity.OrderLine{
			{Product: "Gold 1g", LockedPrice: 1000000, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if summary.OrderCode != "107032025BKL" {
		t.Errorf("order code = %q, want walk-in suffix when directory is down", summary.OrderCode)
	}
}

func TestSubmitSequenceContinues(t *testing.T) {
	store := newFakeStore()
	store.segments["Ban_Dai_Ly_07_03_2025"] = []string{"307032025BDL", "107032025BDL"}
	svc := newTestOrderService(t, store, &fakeRefStore{ranges: testRefRanges()}, &fakeFeed{rows: testFeedRows()})

	summary, err := svc.Submit(context.Background(), &SubmitInput{
		Counterparty: "ABC Dealer",
		Operator:     "Lan",
		Flow:         enum.FlowSell,
		Lines: []entity.OrderLine{
			{Product: "Gold 1g", LockedPrice: 1000000, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if summary.OrderCode != "407032025BDL" {
		t.Errorf("order code = %q, want 407032025BDL", summary.OrderCode)
	}
}

func TestSubmitOneRowPerLine(t *testing.T) {
	store := newFakeStore()
	svc := newTestOrderService(t, store, &fakeRefStore{ranges: testRefRanges()}, &fakeFeed{rows: testFeedRows()})

	summary, err := svc.Submit(context.Background(), &SubmitInput{
		Counterparty: "ABC Dealer",
		Operator:     "Lan",
		Flow:         enum.FlowSell,
		Lines: []entity.OrderLine{
			{Product: "Gold 1g", LockedPrice: 1000000, Quantity: 2, DiscountPercent: 2.5},
			{Product: "Gold 5g", LockedPrice: 5000000, Quantity: 1, DiscountPercent: 2.5},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	rows := store.appended["Ban_Dai_Ly_07_03_2025"]
	if len(rows) != 2 {
		t.Fatalf("appended %d rows, want 2", len(rows))
	}
	// All lines of a batch share one order code.
	if rows[0][0] != rows[1][0] || rows[0][0] != summary.OrderCode {
		t.Errorf("rows carry codes %v and %v, want shared %q", rows[0][0], rows[1][0], summary.OrderCode)
	}
	if store.appendCalls != 1 {
		t.Errorf("append calls = %d, want a single batch append", store.appendCalls)
	}
}

func TestSubmitAppendErrorPropagates(t *testing.T) {
	store := newFakeStore()
	store.appendErr = apperror.Wrap(apperror.ErrStoreUnavailable, "down")
	svc := newTestOrderService(t, store, &fakeRefStore{ranges: testRefRanges()}, &fakeFeed{rows: testFeedRows()})

	_, err := svc.Submit(context.Background(), &SubmitInput{
		Counterparty: "ABC Dealer",
		Operator:     "Lan",
		Flow:         enum.FlowSell,
		Lines: []entity.OrderLine{
			{Product: "Gold 1g", LockedPrice: 1000000, Quantity: 1},
		},
	})
	if !errors.Is(err, apperror.ErrStoreUnavailable) {
		t.Fatalf("err = %v, want ErrStoreUnavailable", err)
	}
}
