package service

import (
	"log"
	"strings"
	"sync"

	"github.com/ancarat/orderdesk/internal/config"
	"github.com/ancarat/orderdesk/pkg/apperror"
)

// SettingsService holds the runtime store/feed references as one immutable
// value. Readers get a copy; an admin swap replaces the whole value. Swapping
// is refused in production, where references come from the environment only.
type SettingsService struct {
	mu        sync.RWMutex
	current   config.Settings
	allowSwap bool
}

// NewSettingsService creates the settings holder. Hot-swap is enabled for
// every environment except production.
func NewSettingsService(initial config.Settings, env string) *SettingsService {
	return &SettingsService{
		current:   initial,
		allowSwap: env != "production",
	}
}

// Current returns the active settings value.
func (s *SettingsService) Current() config.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Swap atomically replaces the settings value.
func (s *SettingsService) Swap(next config.Settings) error {
	if !s.allowSwap {
		return apperror.NewAppError(403, "Settings cannot be changed in production; use environment variables")
	}

	next.LedgerSheetID = strings.TrimSpace(next.LedgerSheetID)
	next.AgentSheetID = strings.TrimSpace(next.AgentSheetID)
	next.DeliverySheetID = strings.TrimSpace(next.DeliverySheetID)
	next.ProductFeedURL = strings.TrimSpace(next.ProductFeedURL)

	if next.LedgerSheetID == "" {
		return apperror.NewBadRequestError("Ledger sheet id is required")
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	log.Println("Runtime settings swapped")
	return nil
}

// Redacted returns the settings with identifiers shortened for display.
func (s *SettingsService) Redacted() map[string]string {
	cur := s.Current()
	return map[string]string{
		"ledger_sheet_id":   redact(cur.LedgerSheetID),
		"agent_sheet_id":    redact(cur.AgentSheetID),
		"delivery_sheet_id": redact(cur.DeliverySheetID),
		"product_feed_url":  cur.ProductFeedURL,
	}
}

func redact(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:4] + "..." + id[len(id)-4:]
}
