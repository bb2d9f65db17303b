package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/ancarat/orderdesk/internal/domain/entity"
	"github.com/ancarat/orderdesk/internal/domain/enum"
	"github.com/ancarat/orderdesk/internal/domain/ledger"
	"github.com/ancarat/orderdesk/internal/domain/repository"
	"github.com/ancarat/orderdesk/pkg/apperror"
)

// OrderService assembles and appends orders: it classifies the counterparty,
// resolves the day segment and sequence, computes both pricing views and
// performs the single batch append. Notification happens outside it.
type OrderService struct {
	agents    *AgentService
	catalog   *CatalogService
	delivery  *DeliveryService
	allocator repository.SequenceAllocator
	resolver  *SegmentResolver
	store     repository.TabularStore
	schema    ledger.Schema
	loc       *time.Location

	now func() time.Time
}

// NewOrderService creates the order assembler.
func NewOrderService(
	agents *AgentService,
	catalog *CatalogService,
	delivery *DeliveryService,
	resolver *SegmentResolver,
	store repository.TabularStore,
	schema ledger.Schema,
	loc *time.Location,
) *OrderService {
	return &OrderService{
		agents:    agents,
		catalog:   catalog,
		delivery:  delivery,
		allocator: resolver,
		resolver:  resolver,
		store:     store,
		schema:    schema,
		loc:       loc,
		now:       time.Now,
	}
}

// SubmitInput is one order submission: a batch of lines against a single
// counterparty, entered by one operator.
type SubmitInput struct {
	Counterparty string
	Operator     string
	Flow         enum.Flow
	Lines        []entity.OrderLine
}

// Submit appends the order to the ledger and returns its summary. The append
// is all-or-nothing: a failed resolve or append leaves no side effects and
// is safe to retry, since a retry re-derives the sequence fresh.
func (s *OrderService) Submit(ctx context.Context, input *SubmitInput) (*entity.OrderSummary, error) {
	lines := filterLines(input.Lines, input.Counterparty)
	if len(lines) == 0 {
		return nil, apperror.ErrNoValidLines
	}

	kind, _ := s.agents.Classify(ctx, input.Counterparty)
	prefix := s.schema.SegmentPrefix(input.Flow, kind)

	now := s.now().In(s.loc)
	title := ledger.SegmentTitle(prefix, now)

	// One writer per segment within this process; see SegmentResolver.
	unlock := s.resolver.Lock(title)
	defer unlock()

	segment, err := s.allocator.Resolve(ctx, prefix, now)
	if err != nil {
		return nil, err
	}

	code := s.schema.BuildCode(segment.NextSequence, now, input.Flow, kind)

	live, err := s.catalog.LivePrices(ctx, distinctProducts(lines))
	if err != nil {
		// The order still stands on its locked prices; live columns stay blank.
		log.Printf("Live prices unavailable for order %s: %v", code, err)
		live = nil
	}

	priced := ledger.PriceLines(lines, live, input.Flow)
	deliveryDates := s.deliveryDates(ctx, input.Flow)

	timeStr := now.Format("15:04")
	rows := make([][]interface{}, 0, len(priced))
	for _, p := range priced {
		rec := entity.OrderRecord{
			Code:            code,
			Counterparty:    p.Counterparty,
			DiscountPercent: p.DiscountPercent,
			Product:         p.Product,
			LockedPrice:     p.LockedPrice,
			LivePrice:       p.LivePrice,
			Quantity:        p.Quantity,
			LockedSubtotal:  p.LockedSubtotal,
			LockedDiscount:  p.LockedDiscount,
			LockedFinal:     p.LockedFinal,
			LiveSubtotal:    p.LiveSubtotal,
			LiveDiscount:    p.LiveDiscountAmount,
			LiveFinal:       p.LiveFinal,
			Operator:        input.Operator,
			Time:            timeStr,
			DeliveryDate:    deliveryDates[ledger.LookupKey(p.Product)],
			Note:            p.Note,
		}
		rows = append(rows, s.schema.Row(rec))
	}

	if err := s.store.AppendRows(ctx, segment.Title, rows); err != nil {
		return nil, err
	}

	return &entity.OrderSummary{
		OrderCode:       code,
		Counterparty:    input.Counterparty,
		DiscountPercent: priced[0].DiscountPercent,
		Lines:           priced,
		Operator:        input.Operator,
		CreatedAt:       now.Format("02/01/2006 15:04"),
		Flow:            string(input.Flow),
	}, nil
}

// deliveryDates returns a product-name keyed date map for sell-flow rows on
// layouts that carry the column. Any lookup failure degrades to blanks.
func (s *OrderService) deliveryDates(ctx context.Context, flow enum.Flow) map[string]string {
	if flow != enum.FlowSell || !s.schema.HasDelivery {
		return nil
	}

	ids, err := s.catalog.ProductIDs(ctx)
	if err != nil {
		log.Printf("Product ids unavailable, delivery dates left blank: %v", err)
		return nil
	}
	dates, err := s.delivery.Dates(ctx)
	if err != nil {
		log.Printf("Delivery dates unavailable, left blank: %v", err)
		return nil
	}

	// Keyed by lowercased product name, matching LookupKey at record build.
	byName := make(map[string]string)
	for name, id := range ids {
		if date, ok := dates[id]; ok {
			byName[name] = date
		}
	}
	return byName
}

// filterLines re-applies the upstream validity rules before any store call:
// positive quantity, positive locked price, a product name, and stamps the
// shared counterparty onto each line.
func filterLines(lines []entity.OrderLine, counterparty string) []entity.OrderLine {
	valid := make([]entity.OrderLine, 0, len(lines))
	for _, l := range lines {
		l.Counterparty = strings.TrimSpace(counterparty)
		l.Product = strings.TrimSpace(l.Product)
		if l.Product == "" || l.Quantity <= 0 || l.LockedPrice <= 0 {
			continue
		}
		valid = append(valid, l)
	}
	return valid
}

// distinctProducts returns the unique product names of a batch,
// case-insensitively de-duplicated to bound feed lookups.
func distinctProducts(lines []entity.OrderLine) []string {
	seen := make(map[string]bool, len(lines))
	names := make([]string, 0, len(lines))
	for _, l := range lines {
		key := ledger.LookupKey(l.Product)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, l.Product)
	}
	return names
}
