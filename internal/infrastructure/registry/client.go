package registry

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

// Client queries the openFDA NDC directory for product records by exact
// package or product identifier
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
}

// searchResponse is the wire shape of an NDC directory query
type searchResponse struct {
	Results []domain.ProductRecord `json:"results"`
}

// NewClient creates a registry client. requestsPerMinute throttles calls to
// stay inside the dataset's published rate limit.
func NewClient(apiKey, baseURL string, requestsPerMinute int) *Client {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 240
	}
	limiter := rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// FindByPackageNDC looks up the product carrying an exact dashed package
// identifier (e.g. "0781-1089-01")
func (c *Client) FindByPackageNDC(ctx context.Context, packageNDC string) (*domain.ProductRecord, error) {
	query := fmt.Sprintf(`packaging.package_ndc:%q`, packageNDC)
	return c.search(ctx, query)
}

// FindByProductNDC looks up a product by its exact dashed product
// identifier (e.g. "0781-1089")
func (c *Client) FindByProductNDC(ctx context.Context, productNDC string) (*domain.ProductRecord, error) {
	query := fmt.Sprintf(`product_ndc:%q`, productNDC)
	return c.search(ctx, query)
}

func (c *Client) search(ctx context.Context, query string) (*domain.ProductRecord, error) {
	endpoint := fmt.Sprintf("%s/drug/ndc.json", c.baseURL)
	params := url.Values{}
	params.Add("search", query)
	params.Add("limit", "1")
	if c.apiKey != "" {
		params.Add("api_key", c.apiKey)
	}
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			log.Printf("[REGISTRY] request error (attempt %d): %v", attempt, err)
			lastErr = err
			if ctx.Err() != nil {
				return nil, lastErr
			}
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		// The directory answers 404 for an empty result set
		if resp.StatusCode == http.StatusNotFound {
			return nil, domain.ErrNoMatch
		}
		if resp.StatusCode != http.StatusOK {
			log.Printf("[REGISTRY] status %d (attempt %d): %s", resp.StatusCode, attempt, string(body))
			lastErr = fmt.Errorf("%w: status %d", domain.ErrRegistryUnavailable, resp.StatusCode)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		var parsed searchResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, fmt.Errorf("%w: decode: %v", domain.ErrRegistryUnavailable, err)
		}
		if len(parsed.Results) == 0 {
			return nil, domain.ErrNoMatch
		}
		return &parsed.Results[0], nil
	}

	return nil, lastErr
}

func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "RxScan/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRegistryUnavailable, err)
	}
	return resp, nil
}
