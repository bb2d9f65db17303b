package ledger

import (
	"strings"

	"github.com/ancarat/orderdesk/internal/domain/entity"
	"github.com/ancarat/orderdesk/internal/domain/enum"
)

// PriceLines computes both pricing views for a batch of order lines.
//
// The locked triple derives from the price agreed at order time, the live
// triple from the quote fetched at write time. The discount sign flips by
// flow: selling, the discount reduces what the counterparty pays; buying
// back, it increases what the desk pays out. Products missing from the live
// lookup price at zero and never fail the order.
func PriceLines(lines []entity.OrderLine, live map[string]entity.LivePrice, flow enum.Flow) []entity.PricedLine {
	priced := make([]entity.PricedLine, 0, len(lines))
	for _, line := range lines {
		quote := live[LookupKey(line.Product)]
		livePrice := quote.Sell
		if flow == enum.FlowBuyBack {
			livePrice = quote.Buy
		}

		p := entity.PricedLine{OrderLine: line, LivePrice: livePrice}
		p.LockedSubtotal = line.LockedPrice * float64(line.Quantity)
		p.LockedDiscount = p.LockedSubtotal * line.DiscountPercent / 100
		p.LiveSubtotal = livePrice * float64(line.Quantity)
		p.LiveDiscountAmount = p.LiveSubtotal * line.DiscountPercent / 100

		switch flow {
		case enum.FlowBuyBack:
			p.LockedFinal = p.LockedSubtotal + p.LockedDiscount
			p.LiveFinal = p.LiveSubtotal + p.LiveDiscountAmount
		default:
			p.LockedFinal = p.LockedSubtotal - p.LockedDiscount
			p.LiveFinal = p.LiveSubtotal - p.LiveDiscountAmount
		}

		priced = append(priced, p)
	}
	return priced
}

// LookupKey normalizes a product name for case-insensitive matching.
func LookupKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Totals sums the locked triple over a priced batch, for notification
// summaries.
func Totals(lines []entity.PricedLine) (subtotal, discount, final float64) {
	for _, l := range lines {
		subtotal += l.LockedSubtotal
		discount += l.LockedDiscount
		final += l.LockedFinal
	}
	return subtotal, discount, final
}
