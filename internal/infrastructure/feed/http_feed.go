package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ancarat/orderdesk/pkg/apperror"
)

// HTTPFeed fetches the product catalog from the external price API: a single
// JSON array of rows, each [name, sellPriceText, buyPriceText, optionalId].
type HTTPFeed struct {
	client *http.Client
	url    func() string
}

// NewHTTPFeed creates a feed client. The URL is resolved per call so a
// settings hot-swap takes effect immediately.
func NewHTTPFeed(url func() string) *HTTPFeed {
	return &HTTPFeed{
		client: &http.Client{Timeout: 10 * time.Second},
		url:    url,
	}
}

// Fetch retrieves the raw catalog rows as strings. Numeric cells keep their
// textual form; locale separators are the caller's problem.
func (f *HTTPFeed) Fetch(ctx context.Context) ([][]string, error) {
	url := f.url()
	if url == "" {
		return nil, apperror.Wrap(apperror.ErrConfigMissing, "PRODUCT_FEED_URL is not set")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrFeedUnavailable, err.Error())
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrFeedUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperror.Wrap(apperror.ErrFeedUnavailable, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var raw [][]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, apperror.Wrap(apperror.ErrFeedUnavailable, err.Error())
	}

	rows := make([][]string, 0, len(raw))
	for _, r := range raw {
		cells := make([]string, len(r))
		for i, v := range r {
			if v == nil {
				continue
			}
			cells[i] = fmt.Sprint(v)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
