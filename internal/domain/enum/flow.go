package enum

// Flow distinguishes the two transaction directions the desk handles.
type Flow string

const (
	// FlowSell is the desk selling to a counterparty.
	FlowSell Flow = "sell"
	// FlowBuyBack is the desk repurchasing from a counterparty.
	FlowBuyBack Flow = "buyback"
)

// Valid reports whether the flow is one of the known values.
func (f Flow) Valid() bool {
	return f == FlowSell || f == FlowBuyBack
}
