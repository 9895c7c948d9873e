package nadac

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/rxscan/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client queries the NADAC datastore for per-unit acquisition prices by
// 11-digit NDC. The dataset's own row ordering is taken as-is: the resolver
// wants "the dataset's answer", not a client-side aggregation.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	datasetID   string
	rateLimiter *rate.Limiter
}

type queryResponse struct {
	Results []domain.PriceRow `json:"results"`
}

// NewClient creates a pricing dataset client
func NewClient(baseURL, datasetID string, requestsPerMinute int) *Client {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	limiter := rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     baseURL,
		datasetID:   datasetID,
		rateLimiter: limiter,
	}
}

// FindByNDC returns the top pricing row for an 11-digit NDC, or
// domain.ErrNoMatch when the dataset has no row for it
func (c *Client) FindByNDC(ctx context.Context, ndc11 string) (*domain.PriceRow, error) {
	endpoint := fmt.Sprintf("%s/api/1/datastore/query/%s/0", c.baseURL, c.datasetID)
	params := url.Values{}
	params.Add("conditions[0][property]", "ndc")
	params.Add("conditions[0][value]", ndc11)
	params.Add("conditions[0][operator]", "=")
	params.Add("limit", "1")
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			log.Printf("[NADAC] request error (attempt %d): %v", attempt, err)
			lastErr = err
			if ctx.Err() != nil {
				return nil, lastErr
			}
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, domain.ErrNoMatch
		}
		if resp.StatusCode != http.StatusOK {
			log.Printf("[NADAC] status %d (attempt %d): %s", resp.StatusCode, attempt, string(body))
			lastErr = fmt.Errorf("%w: status %d", domain.ErrPricingUnavailable, resp.StatusCode)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		var parsed queryResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, fmt.Errorf("%w: decode: %v", domain.ErrPricingUnavailable, err)
		}
		if len(parsed.Results) == 0 {
			return nil, domain.ErrNoMatch
		}
		row := parsed.Results[0]
		if row.EffectiveDate == "" {
			// A price without the dataset's own effective date is unusable
			return nil, domain.ErrNoMatch
		}
		return &row, nil
	}

	return nil, lastErr
}

func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "RxScan/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPricingUnavailable, err)
	}
	return resp, nil
}
