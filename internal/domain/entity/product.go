package entity

// Product is one row of the live price catalog. It is fetched fresh from the
// external feed on every read and never persisted by this service.
type Product struct {
	Name      string  `json:"name"`
	SellPrice float64 `json:"sell_price"`
	BuyPrice  float64 `json:"buy_price"`
	ID        string  `json:"id"`
}

// LivePrice is the current market quote for a product, keyed by the
// lowercased product name.
type LivePrice struct {
	Sell float64 `json:"sell"`
	Buy  float64 `json:"buy"`
}
