package entity

// Agent is a known dealer and its per-dealer discount rates. Read-only
// reference data pulled from the agent directory spreadsheet.
type Agent struct {
	Name                string  `json:"name"`
	SellDiscountPercent float64 `json:"sell_discount_percent"`
	BuyDiscountPercent  float64 `json:"buy_discount_percent"`
}
