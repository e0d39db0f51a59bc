// internal/services/scraper_service_test.go
package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recambia/recambia-backend/internal/config"
)

func newTestScraper(baseURL string) *ScraperService {
	return NewScraperService(config.ScraperConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Timeout: 5,
	})
}

func TestScraperLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lookup", r.URL.Path)
		assert.Equal(t, "1234bcd", r.URL.Query().Get("q"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[{"oem":"04465-42180","description":"Pastillas de freno"}]}`))
	}))
	defer srv.Close()

	envelope, err := newTestScraper(srv.URL).Lookup(context.Background(), "1234bcd")
	require.NoError(t, err)
	require.NotNil(t, envelope)
	assert.True(t, envelope.Success)
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "04465-42180", envelope.Data[0].Oem)
}

func TestScraperLookupNotConfigured(t *testing.T) {
	s := NewScraperService(config.ScraperConfig{Timeout: 5})

	_, err := s.Lookup(context.Background(), "1234bcd")
	assert.ErrorIs(t, err, ErrScraperNotConfigured)
}

func TestScraperLookupTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestScraper(srv.URL).Lookup(ctx, "1234bcd")
	assert.ErrorIs(t, err, ErrScrapeTimeout)
}

func TestScraperLookupUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "scrape session failed", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestScraper(srv.URL).Lookup(context.Background(), "1234bcd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestScraperLookupBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := newTestScraper(srv.URL).Lookup(context.Background(), "1234bcd")
	assert.Error(t, err)
}
