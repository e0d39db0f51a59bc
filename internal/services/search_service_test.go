// internal/services/search_service_test.go
package services

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recambia/recambia-backend/internal/models"
)

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  frenos  ", "frenos"},
		{"lower-cases", "FRENOS", "frenos"},
		{"mixed", "  Pastillas De Freno ", "pastillas de freno"},
		{"empty", "", ""},
		{"only spaces", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeQuery(tt.input))
		})
	}
}

func TestNormalizeQueryIdempotent(t *testing.T) {
	inputs := []string{"  Frenos ", "04465-42180", "a", "  BOMBA de AGUA  "}
	for _, in := range inputs {
		once := NormalizeQuery(in)
		assert.Equal(t, once, NormalizeQuery(once))
	}
}

func TestBuildPrefixQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single token", "frenos", "frenos:*"},
		{"two tokens joined with AND", "pastillas freno", "pastillas:* & freno:*"},
		{"case folded", "TOYOTA Corolla", "toyota:* & corolla:*"},
		{"collapses inner whitespace", "bomba   agua", "bomba:* & agua:*"},
		{"single character token kept", "a", "a:*"},
		{"numeric token kept", "04465", "04465:*"},
		{"empty input", "", ""},
		{"whitespace only", "   ", ""},
		{"only punctuation", ",.-/", ""},
		{"tsquery metacharacters stripped", "freno & (disco)", "freno:* & disco:*"},
		{"wildcard injection split", "fre:*no", "fre:* & no:*"},
		{"comma-joined words split", "pastillas,freno", "pastillas:* & freno:*"},
		{"period-joined words split", "bomba.agua", "bomba:* & agua:*"},
		{"hyphenated oem code split", "04465-42180", "04465:* & 42180:*"},
		{"accented letters kept", "bujía", "bujía:*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildPrefixQuery(tt.input))
		})
	}
}

func TestBuildPrefixQueryIdempotentNormalization(t *testing.T) {
	// Normalizing twice must yield the same expression for any input.
	inputs := []string{"Frenos Delanteros", " 04465-42180 ", "toyta"}
	for _, in := range inputs {
		assert.Equal(t, BuildPrefixQuery(in), BuildPrefixQuery(NormalizeQuery(in)))
	}
}

func intPtr(v int) *int { return &v }

func candidate(name, brand, model, oem string, year *int) partCandidate {
	return partCandidate{
		ID:        uuid.New(),
		Name:      name,
		Brand:     brand,
		Model:     model,
		Year:      year,
		OemNumber: oem,
	}
}

func TestClassifySuggestionsPrecedence(t *testing.T) {
	// An OEM substring hit must win over a name hit, even when both match.
	c := candidate("Pastillas de freno", "Toyota", "Corolla", "04465-42180", intPtr(2014))

	got := classifySuggestions([]partCandidate{c}, "04465", 10)
	require.Len(t, got, 1)
	assert.Equal(t, models.SuggestionTypeReference, got[0].Type)
	assert.Equal(t, "04465-42180", got[0].OemNumber)
	require.NotNil(t, got[0].ID)
	assert.Equal(t, c.ID, *got[0].ID)
}

func TestClassifySuggestionsOemSubstringCaseInsensitive(t *testing.T) {
	c := candidate("Filtro de aceite", "Mann", "", "MN-90915", nil)

	got := classifySuggestions([]partCandidate{c}, "mn-909", 10)
	require.Len(t, got, 1)
	assert.Equal(t, models.SuggestionTypeReference, got[0].Type)
}

func TestClassifySuggestionsProduct(t *testing.T) {
	c := candidate("Pastillas de freno", "Toyota", "Corolla", "04465-42180", intPtr(2014))

	got := classifySuggestions([]partCandidate{c}, "pastillas", 10)
	require.Len(t, got, 1)
	assert.Equal(t, models.SuggestionTypeProduct, got[0].Type)
	assert.Equal(t, "Pastillas de freno", got[0].Name)
	assert.Equal(t, "Toyota", got[0].Brand)
	assert.Equal(t, "Corolla", got[0].Model)
	assert.Equal(t, "04465-42180", got[0].OemNumber)
	require.NotNil(t, got[0].Year)
	assert.Equal(t, 2014, *got[0].Year)
}

func TestClassifySuggestionsModelFallback(t *testing.T) {
	// No name and no OEM substring hit: only the vehicle descriptor remains.
	c := candidate("", "Renault", "Clio", "", intPtr(2009))

	got := classifySuggestions([]partCandidate{c}, "clio", 10)
	require.Len(t, got, 1)
	assert.Equal(t, models.SuggestionTypeModel, got[0].Type)
	assert.Equal(t, "Renault", got[0].Brand)
	assert.Equal(t, "Clio", got[0].Model)
	assert.Nil(t, got[0].ID)
	assert.Empty(t, got[0].Name)
}

func TestClassifySuggestionsDedup(t *testing.T) {
	// Distinct rows with identical display text collapse into the first one.
	a := candidate("Alternador", "Bosch", "Golf IV", "B-1001", intPtr(2001))
	b := candidate("alternador", "BOSCH", "golf iv", "B-2002", intPtr(2001))
	other := candidate("Alternador", "Bosch", "Golf IV", "B-3003", intPtr(2003))

	got := classifySuggestions([]partCandidate{a, b, other}, "alternador", 10)
	require.Len(t, got, 2)
	// First occurrence wins
	assert.Equal(t, "B-1001", got[0].OemNumber)
	// A different year is a different display key
	require.NotNil(t, got[1].Year)
	assert.Equal(t, 2003, *got[1].Year)
}

func TestClassifySuggestionsPreservesInputOrder(t *testing.T) {
	cands := []partCandidate{
		candidate("Disco de freno", "Brembo", "", "", nil),
		candidate("Disco de embrague", "Sachs", "", "", nil),
		candidate("Discos traseros", "ATE", "", "", nil),
	}

	got := classifySuggestions(cands, "disco", 10)
	require.Len(t, got, 3)
	assert.Equal(t, "Disco de freno", got[0].Name)
	assert.Equal(t, "Disco de embrague", got[1].Name)
	assert.Equal(t, "Discos traseros", got[2].Name)
}

func TestClassifySuggestionsTruncates(t *testing.T) {
	var cands []partCandidate
	for i := 0; i < 50; i++ {
		cands = append(cands, candidate("Bujia "+strings.Repeat("x", i+1), "NGK", "", "", nil))
	}

	got := classifySuggestions(cands, "bujia", 10)
	assert.Len(t, got, 10)
}

func TestClassifySuggestionsNoDuplicateKeys(t *testing.T) {
	cands := []partCandidate{
		candidate("Faro", "Valeo", "Megane", "", intPtr(2010)),
		candidate("Faro", "Valeo", "Megane", "", intPtr(2010)),
		candidate("Faro", "Valeo", "Megane", "", intPtr(2011)),
		candidate("Faro", "Hella", "Megane", "", intPtr(2010)),
	}

	got := classifySuggestions(cands, "faro", 10)
	require.Len(t, got, 3)

	seen := make(map[string]bool)
	for _, s := range got {
		year := ""
		if s.Year != nil {
			year = strconv.Itoa(*s.Year)
		}
		key := strings.ToLower(s.Name) + "|" + strings.ToLower(s.Brand) + "|" + strings.ToLower(s.Model) + "|" + year
		assert.False(t, seen[key], "duplicate composite key %q", key)
		seen[key] = true
	}
}
