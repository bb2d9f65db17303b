package service

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/ancarat/orderdesk/internal/config"
	"github.com/ancarat/orderdesk/internal/domain/entity"
	"github.com/ancarat/orderdesk/internal/domain/enum"
	"github.com/ancarat/orderdesk/internal/domain/ledger"
	"github.com/ancarat/orderdesk/internal/domain/repository"
)

// agentRange is where the dealer directory lives in the reference sheet:
// name, sell discount, buy-back discount.
const agentRange = "Dai_Ly!A2:C"

// AgentService reads the dealer directory. A directory failure is never
// fatal: it degrades to an empty list, which classifies every counterparty
// as a walk-in customer.
type AgentService struct {
	store    repository.ReferenceStore
	settings func() config.Settings
}

// NewAgentService creates an agent directory service.
func NewAgentService(store repository.ReferenceStore, settings func() config.Settings) *AgentService {
	return &AgentService{store: store, settings: settings}
}

// Agents returns the dealer directory, or an empty slice on any failure.
func (s *AgentService) Agents(ctx context.Context) []entity.Agent {
	if s.store == nil {
		return nil
	}

	rows, err := s.store.ReadRange(ctx, s.settings().AgentSheetID, agentRange)
	if err != nil {
		log.Printf("Agent directory unavailable, treating all counterparties as walk-in: %v", err)
		return nil
	}

	agents := make([]entity.Agent, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}
		agents = append(agents, entity.Agent{
			Name:                name,
			SellDiscountPercent: parseDiscount(cell(row, 1)),
			BuyDiscountPercent:  parseDiscount(cell(row, 2)),
		})
	}
	return agents
}

// Classify resolves a counterparty to dealer or walk-in by case-insensitive
// membership in the directory. Unknown names are walk-ins, not errors.
func (s *AgentService) Classify(ctx context.Context, counterparty string) (enum.CounterpartyKind, *entity.Agent) {
	key := ledger.LookupKey(counterparty)
	for _, a := range s.Agents(ctx) {
		if ledger.LookupKey(a.Name) == key {
			agent := a
			return enum.CounterpartyDealer, &agent
		}
	}
	return enum.CounterpartyWalkIn, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

// parseDiscount parses a discount percent that may use a decimal comma.
func parseDiscount(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
