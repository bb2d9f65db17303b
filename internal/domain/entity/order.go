package entity

// OrderLine is one entered line of a transaction before pricing. The request
// layer filters out non-positive quantities and prices, but the core still
// re-checks them before touching any store.
type OrderLine struct {
	Counterparty    string  `json:"counterparty"`
	Product         string  `json:"product"`
	LockedPrice     float64 `json:"locked_price"`
	Quantity        int     `json:"quantity"`
	DiscountPercent float64 `json:"discount_percent"`
	Note            string  `json:"note,omitempty"`
}

// PricedLine is an order line with both pricing views computed: the locked
// triple from the price agreed at order time and the live triple from the
// market price at write time.
type PricedLine struct {
	OrderLine

	LivePrice          float64 `json:"live_price"`
	LockedSubtotal     float64 `json:"locked_subtotal"`
	LockedDiscount     float64 `json:"locked_discount"`
	LockedFinal        float64 `json:"locked_final"`
	LiveSubtotal       float64 `json:"live_subtotal"`
	LiveDiscountAmount float64 `json:"live_discount"`
	LiveFinal          float64 `json:"live_final"`
}

// OrderRecord is the flattened tuple appended to the ledger, one per line.
// Records are immutable once written; corrections are new compensating rows.
type OrderRecord struct {
	Code            string
	Counterparty    string
	DiscountPercent float64
	Product         string
	LockedPrice     float64
	LivePrice       float64
	Quantity        int
	LockedSubtotal  float64
	LockedDiscount  float64
	LockedFinal     float64
	LiveSubtotal    float64
	LiveDiscount    float64
	LiveFinal       float64
	Operator        string
	Time            string
	DeliveryDate    string
	Note            string
}

// OrderSummary is what the notifier receives after a successful submission.
type OrderSummary struct {
	OrderCode       string       `json:"order_code"`
	Counterparty    string       `json:"counterparty"`
	DiscountPercent float64      `json:"discount_percent"`
	Lines           []PricedLine `json:"lines"`
	Operator        string       `json:"operator"`
	CreatedAt       string       `json:"created_at"`
	Flow            string       `json:"flow"`
}
