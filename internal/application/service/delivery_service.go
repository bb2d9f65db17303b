package service

import (
	"context"
	"strings"

	"github.com/ancarat/orderdesk/internal/config"
	"github.com/ancarat/orderdesk/internal/domain/repository"
	"github.com/ancarat/orderdesk/pkg/apperror"
)

// deliveryRange holds product id -> delivery date pairs, first row a header.
const deliveryRange = "Ngay_Giao!A:B"

// DeliveryService reads the product-id to delivery-date mapping used to
// enrich sell-flow order rows.
type DeliveryService struct {
	store    repository.ReferenceStore
	settings func() config.Settings
}

// NewDeliveryService creates a delivery-date service.
func NewDeliveryService(store repository.ReferenceStore, settings func() config.Settings) *DeliveryService {
	return &DeliveryService{store: store, settings: settings}
}

// Dates returns the delivery-date map keyed by product id.
func (s *DeliveryService) Dates(ctx context.Context) (map[string]string, error) {
	sheetID := s.settings().DeliverySheetID
	if sheetID == "" {
		return nil, apperror.Wrap(apperror.ErrConfigMissing, "DELIVERY_SHEET_ID is not set")
	}
	if s.store == nil {
		return nil, apperror.Wrap(apperror.ErrConfigMissing, "no reference store configured")
	}

	rows, err := s.store.ReadRange(ctx, sheetID, deliveryRange)
	if err != nil {
		return nil, err
	}

	dates := make(map[string]string)
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		id := strings.TrimSpace(row[0])
		if id == "" {
			continue
		}
		dates[id] = strings.TrimSpace(cell(row, 1))
	}
	return dates, nil
}
