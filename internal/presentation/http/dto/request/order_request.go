package request

import (
	"strings"

	"github.com/ancarat/orderdesk/internal/domain/entity"
)

// SubmitOrderRequest is one order submission: a counterparty, the batch
// discount percent, and the entered lines.
type SubmitOrderRequest struct {
	Counterparty    string             `json:"counterparty" binding:"required"`
	DiscountPercent float64            `json:"discount_percent"`
	Lines           []OrderLineRequest `json:"lines" binding:"required"`
}

// OrderLineRequest is one entered line.
type OrderLineRequest struct {
	Product     string  `json:"product"`
	LockedPrice float64 `json:"locked_price"`
	Quantity    int     `json:"quantity"`
	Note        string  `json:"note"`
}

// ToLines converts the request lines, dropping obviously invalid ones and
// stamping each with the batch discount. The service re-checks validity
// before touching any store.
func (r *SubmitOrderRequest) ToLines() []entity.OrderLine {
	lines := make([]entity.OrderLine, 0, len(r.Lines))
	for _, l := range r.Lines {
		product := strings.TrimSpace(l.Product)
		if product == "" || l.Quantity <= 0 || l.LockedPrice <= 0 {
			continue
		}
		lines = append(lines, entity.OrderLine{
			Product:         product,
			LockedPrice:     l.LockedPrice,
			Quantity:        l.Quantity,
			DiscountPercent: r.DiscountPercent,
			Note:            strings.TrimSpace(l.Note),
		})
	}
	return lines
}
