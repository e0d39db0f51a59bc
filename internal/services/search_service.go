// internal/services/search_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/recambia/recambia-backend/internal/config"
	"github.com/recambia/recambia-backend/internal/models"
)

var ErrEmptyQuery = errors.New("query must not be empty")

const popularCacheKey = "search:popular"

type SearchService struct {
	db         *gorm.DB
	cache      *redis.Client
	cfg        config.SearchConfig
	popularTTL time.Duration
}

func NewSearchService(db *gorm.DB, cache *redis.Client, cfg config.SearchConfig, popularTTL time.Duration) *SearchService {
	return &SearchService{
		db:         db,
		cache:      cache,
		cfg:        cfg,
		popularTTL: popularTTL,
	}
}

// SuggestResult is the full response envelope of the suggestion endpoint.
// All three lists are bounded and returned in full on every call.
type SuggestResult struct {
	Suggestions []models.Suggestion    `json:"suggestions"`
	Popular     []models.PopularQuery  `json:"popular"`
	History     []models.SearchHistory `json:"history"`
}

// partCandidate is one raw matcher row, before classification.
type partCandidate struct {
	ID        uuid.UUID `gorm:"column:id"`
	Name      string    `gorm:"column:name"`
	Brand     string    `gorm:"column:brand"`
	Model     string    `gorm:"column:model"`
	Year      *int      `gorm:"column:year"`
	OemNumber string    `gorm:"column:oem_number"`
	Rank      float64   `gorm:"column:rank"`
	Sim       float64   `gorm:"column:sim"`
}

// NormalizeQuery trims surrounding whitespace and lower-cases the input. It
// is idempotent; click counting and OEM substring matching both rely on it.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// BuildPrefixQuery turns free text into an AND-of-prefixes tsquery
// expression: "pastillas freno" becomes "pastillas:* & freno:*". Each token
// gets a wildcard so search-as-you-type matches on partial words. Tokens are
// split on every non-alphanumeric rune: punctuation like "pastillas,freno"
// or "04465-42180" would otherwise reach to_tsquery as a multi-lexeme token
// and raise a tsquery syntax error. The expression itself is still bound as
// a parameter, never concatenated into SQL. Returns "" for input with no
// usable tokens, which short-circuits the matcher.
func BuildPrefixQuery(q string) string {
	words := strings.FieldsFunc(NormalizeQuery(q), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		tokens = append(tokens, w+":*")
	}
	return strings.Join(tokens, " & ")
}

// The matcher runs full-text and trigram matching in a single query: a row
// is eligible when the tsquery matches OR any per-field similarity clears
// the threshold, so typos ("Toyta") still find fuzzy hits while well-formed
// queries get exact full-text rank. Fuzzy similarity is the primary sort
// key, full-text rank breaks ties.
const matchCandidatesSQL = `
SELECT p.id, p.name, p.brand, p.model, p.year, p.oem_number,
       ts_rank(p.search_vector, to_tsquery('simple', @ts)) AS rank,
       GREATEST(
           similarity(p.name, @raw),
           similarity(p.brand, @raw),
           similarity(p.model, @raw),
           similarity(p.oem_number, @raw)
       ) AS sim
FROM parts p
WHERE p.deleted_at IS NULL
  AND p.status = 'active'
  AND (
      p.search_vector @@ to_tsquery('simple', @ts)
      OR similarity(p.name, @raw) > @threshold
      OR similarity(p.brand, @raw) > @threshold
      OR similarity(p.model, @raw) > @threshold
      OR similarity(p.oem_number, @raw) > @threshold
  )
ORDER BY sim DESC, rank DESC
LIMIT @limit`

func (s *SearchService) matchCandidates(ctx context.Context, tsQuery, rawQuery string) ([]partCandidate, error) {
	var candidates []partCandidate
	err := s.db.WithContext(ctx).Raw(matchCandidatesSQL, map[string]interface{}{
		"ts":        tsQuery,
		"raw":       rawQuery,
		"threshold": s.cfg.SimilarityThreshold,
		"limit":     s.cfg.CandidateLimit,
	}).Scan(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to match candidates: %w", err)
	}
	return candidates, nil
}

// classifySuggestions labels and deduplicates ranked candidates. Candidates
// sharing the same display key (name|brand|model|year, case-insensitive)
// collapse into the first one encountered, so the list never shows two
// visually identical entries. Classification precedence: an OEM-number
// substring hit wins over a name hit, which wins over the bare vehicle
// descriptor. Input order (the matcher's ranking) is preserved.
func classifySuggestions(candidates []partCandidate, rawQuery string, limit int) []models.Suggestion {
	q := NormalizeQuery(rawQuery)
	seen := make(map[string]struct{}, len(candidates))
	out := make([]models.Suggestion, 0, limit)

	for _, c := range candidates {
		if len(out) >= limit {
			break
		}

		key := dedupKey(c)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		switch {
		case c.OemNumber != "" && strings.Contains(strings.ToLower(c.OemNumber), q):
			id := c.ID
			out = append(out, models.Suggestion{
				Type:      models.SuggestionTypeReference,
				ID:        &id,
				OemNumber: c.OemNumber,
			})
		case c.Name != "":
			id := c.ID
			out = append(out, models.Suggestion{
				Type:      models.SuggestionTypeProduct,
				ID:        &id,
				Name:      c.Name,
				Brand:     c.Brand,
				Model:     c.Model,
				Year:      c.Year,
				OemNumber: c.OemNumber,
			})
		default:
			out = append(out, models.Suggestion{
				Type:  models.SuggestionTypeModel,
				Brand: c.Brand,
				Model: c.Model,
				Year:  c.Year,
			})
		}
	}

	return out
}

func dedupKey(c partCandidate) string {
	year := ""
	if c.Year != nil {
		year = strconv.Itoa(*c.Year)
	}
	return strings.ToLower(c.Name) + "|" + strings.ToLower(c.Brand) + "|" + strings.ToLower(c.Model) + "|" + year
}

// Suggest answers one suggestion request. The three sub-fetches are
// independent, so they run concurrently; any store failure fails the whole
// call and the caller decides how to degrade. An empty query skips the
// matcher entirely and returns popular+history only.
func (s *SearchService) Suggest(ctx context.Context, rawQuery string, userID *uuid.UUID) (*SuggestResult, error) {
	result := &SuggestResult{
		Suggestions: []models.Suggestion{},
		Popular:     []models.PopularQuery{},
		History:     []models.SearchHistory{},
	}

	var wg sync.WaitGroup
	var matchErr, popularErr, historyErr error

	if tsQuery := BuildPrefixQuery(rawQuery); tsQuery != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			candidates, err := s.matchCandidates(ctx, tsQuery, NormalizeQuery(rawQuery))
			if err != nil {
				matchErr = err
				return
			}
			result.Suggestions = classifySuggestions(candidates, rawQuery, s.cfg.SuggestionLimit)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		result.Popular, popularErr = s.PopularQueries(ctx)
	}()

	if userID != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result.History, historyErr = s.RecentHistory(ctx, *userID)
		}()
	}

	wg.Wait()

	for _, err := range []error{matchErr, popularErr, historyErr} {
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// PopularQueries returns the globally most-clicked queries, cache-aside via
// Redis when available. Cache failures degrade to the database read.
func (s *SearchService) PopularQueries(ctx context.Context) ([]models.PopularQuery, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, popularCacheKey).Bytes(); err == nil {
			var cached []models.PopularQuery
			if json.Unmarshal(data, &cached) == nil {
				return cached, nil
			}
		}
	}

	var logs []models.SearchLog
	if err := s.db.WithContext(ctx).
		Order("clicks DESC").
		Limit(s.cfg.PopularLimit).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch popular queries: %w", err)
	}

	popular := make([]models.PopularQuery, 0, len(logs))
	for _, l := range logs {
		popular = append(popular, models.PopularQuery{Type: "popular", Query: l.Query, Clicks: l.Clicks})
	}

	if s.cache != nil {
		if data, err := json.Marshal(popular); err == nil {
			if err := s.cache.Set(ctx, popularCacheKey, data, s.popularTTL).Err(); err != nil {
				logrus.WithError(err).Warn("Failed to cache popular queries")
			}
		}
	}

	return popular, nil
}

// RecentHistory returns the user's most recent searches, newest first.
func (s *SearchService) RecentHistory(ctx context.Context, userID uuid.UUID) ([]models.SearchHistory, error) {
	var history []models.SearchHistory
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(s.cfg.HistoryLimit).
		Find(&history).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch search history: %w", err)
	}
	return history, nil
}

// LogClick records a click-through on a suggestion. The counter increment is
// a single atomic upsert, so concurrent clicks on the same query never lose
// updates. A signed-in user also gets a history entry.
func (s *SearchService) LogClick(ctx context.Context, query string, userID *uuid.UUID) error {
	normalized := NormalizeQuery(query)
	if normalized == "" {
		return ErrEmptyQuery
	}

	entry := models.SearchLog{Query: normalized, Clicks: 1}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "query"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"clicks":     gorm.Expr("search_logs.clicks + 1"),
			"updated_at": time.Now(),
		}),
	}).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to record click: %w", err)
	}

	if userID != nil {
		history := models.SearchHistory{UserID: *userID, Query: strings.TrimSpace(query)}
		if err := s.db.WithContext(ctx).Create(&history).Error; err != nil {
			logrus.WithError(err).Warn("Failed to record search history")
		}
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, popularCacheKey).Err(); err != nil {
			logrus.WithError(err).Warn("Failed to invalidate popular cache")
		}
	}

	return nil
}
