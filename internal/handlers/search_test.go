// internal/handlers/search_test.go
package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/recambia/recambia-backend/internal/config"
	"github.com/recambia/recambia-backend/internal/services"
)

func newClickRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	searchService := services.NewSearchService(nil, nil, config.SearchConfig{
		SimilarityThreshold: 0.2,
		CandidateLimit:      50,
		SuggestionLimit:     10,
		PopularLimit:        5,
		HistoryLimit:        3,
	}, 0)
	handler := NewSearchHandler(searchService)

	r := gin.New()
	r.POST("/search/click", handler.LogClick)
	return r
}

func TestLogClickRejectsMalformedBody(t *testing.T) {
	r := newClickRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/search/click", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogClickRejectsEmptyQuery(t *testing.T) {
	r := newClickRouter()

	for _, body := range []string{`{}`, `{"query":""}`, `{"query":"   "}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/search/click", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
}
