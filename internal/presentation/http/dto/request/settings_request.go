package request

// UpdateSettingsRequest carries new runtime store and feed references.
type UpdateSettingsRequest struct {
	LedgerSheetID   string `json:"ledger_sheet_id" binding:"required"`
	AgentSheetID    string `json:"agent_sheet_id"`
	DeliverySheetID string `json:"delivery_sheet_id"`
	ProductFeedURL  string `json:"product_feed_url"`
}
