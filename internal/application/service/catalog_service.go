package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/ancarat/orderdesk/internal/domain/entity"
	"github.com/ancarat/orderdesk/internal/domain/ledger"
	"github.com/ancarat/orderdesk/internal/domain/repository"
	gocache "github.com/patrickmn/go-cache"
)

const productsCacheKey = "catalog:products"

// CatalogService normalizes the external price feed into typed products.
//
// The entry-form listing is cached for a short TTL to keep page loads off
// the feed; live prices used during submission are always fetched fresh.
type CatalogService struct {
	feed  repository.PriceFeed
	cache *gocache.Cache
}

// NewCatalogService creates a catalog service with the given listing TTL.
func NewCatalogService(feed repository.PriceFeed, cacheTTL time.Duration) *CatalogService {
	return &CatalogService{
		feed:  feed,
		cache: gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// Products returns the catalog for listing. Rows that are short, unnamed or
// missing a sell price are skipped, matching the feed's contract.
func (s *CatalogService) Products(ctx context.Context) ([]entity.Product, error) {
	if cached, ok := s.cache.Get(productsCacheKey); ok {
		return cached.([]entity.Product), nil
	}

	rows, err := s.feed.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	products := parseProducts(rows)
	s.cache.SetDefault(productsCacheKey, products)
	return products, nil
}

// LivePrices fetches the current quotes for the requested product names,
// bypassing the cache. Every requested name gets an entry; products missing
// from the feed quote at zero.
func (s *CatalogService) LivePrices(ctx context.Context, names []string) (map[string]entity.LivePrice, error) {
	rows, err := s.feed.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	quotes := make(map[string]entity.LivePrice)
	for _, p := range parsePriceRows(rows) {
		quotes[ledger.LookupKey(p.Name)] = entity.LivePrice{Sell: p.SellPrice, Buy: p.BuyPrice}
	}

	result := make(map[string]entity.LivePrice, len(names))
	for _, name := range names {
		result[ledger.LookupKey(name)] = quotes[ledger.LookupKey(name)]
	}
	return result, nil
}

// ProductIDs maps lowercased product names to their feed ids, for the
// delivery-date lookup. Products without an id are omitted.
func (s *CatalogService) ProductIDs(ctx context.Context) (map[string]string, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]string, len(products))
	for _, p := range products {
		if p.ID != "" {
			ids[ledger.LookupKey(p.Name)] = p.ID
		}
	}
	return ids, nil
}

// parseProducts keeps only listable rows: a name and a non-empty sell price.
func parseProducts(rows [][]string) []entity.Product {
	products := make([]entity.Product, 0, len(rows))
	for _, row := range rows {
		if len(row) < 3 || strings.TrimSpace(row[1]) == "" {
			continue
		}
		p := parseProductRow(row)
		if p.Name == "" {
			continue
		}
		products = append(products, p)
	}
	return products
}

// parsePriceRows is the looser variant used for quotes: short rows are
// skipped, but a blank sell price still yields a (zero-sell) quote.
func parsePriceRows(rows [][]string) []entity.Product {
	products := make([]entity.Product, 0, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		p := parseProductRow(row)
		if p.Name == "" {
			continue
		}
		products = append(products, p)
	}
	return products
}

func parseProductRow(row []string) entity.Product {
	p := entity.Product{Name: strings.TrimSpace(row[0])}
	p.SellPrice = parseAmount(row[1])
	p.BuyPrice = parseAmount(row[2])
	if len(row) >= 4 {
		p.ID = strings.TrimSpace(row[3])
	}
	return p
}

// parseAmount parses a numeric string that may carry thousands separators.
// Anything unparseable is zero, never an error.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
