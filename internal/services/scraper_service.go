// internal/services/scraper_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/recambia/recambia-backend/internal/config"
)

// ErrScrapeTimeout marks a provider lookup abandoned at the configured
// deadline, so callers can offer "try again" messaging instead of a generic
// upstream failure.
var ErrScrapeTimeout = errors.New("scrape provider timed out")

var ErrScraperNotConfigured = errors.New("scrape provider is not configured")

// ScraperService queries the external OEM-scraping provider. Lookups are
// slow (the provider drives a headless session), so the client enforces a
// hard upper bound — 240s by default — after which the request is abandoned.
type ScraperService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewScraperService(cfg config.ScraperConfig) *ScraperService {
	return &ScraperService{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// Lookup fetches the scraped part data for a license plate or OEM code. The
// provider answers with the same envelope the ingest endpoint accepts.
func (s *ScraperService) Lookup(ctx context.Context, query string) (*OemIngestEnvelope, error) {
	if s.baseURL == "" {
		return nil, ErrScraperNotConfigured
	}

	u, err := url.Parse(s.baseURL + "/lookup")
	if err != nil {
		return nil, fmt.Errorf("invalid scraper base URL: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, ErrScrapeTimeout
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrScrapeTimeout
		}
		return nil, fmt.Errorf("scrape request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("scrape provider returned %d: %s", resp.StatusCode, string(body))
	}

	var envelope OemIngestEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode scrape response: %w", err)
	}

	return &envelope, nil
}
