// internal/models/search.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// SearchLog aggregates click-through popularity per normalized query string.
// Exactly one row exists per distinct normalized query; clicks only grow.
type SearchLog struct {
	BaseModel
	Query  string `json:"query" gorm:"size:255;not null;uniqueIndex"`
	Clicks int64  `json:"clicks" gorm:"not null;default:1"`
}

func (SearchLog) TableName() string {
	return "search_logs"
}

// SearchHistory records one past search of a signed-in user. Only the most
// recent entries are surfaced; old rows are retained.
type SearchHistory struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_search_history_user_created,priority:1"`
	Query     string    `json:"query" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_search_history_user_created,priority:2,sort:desc"`
}

func (SearchHistory) TableName() string {
	return "search_histories"
}

type SuggestionType string

const (
	SuggestionTypeReference SuggestionType = "reference"
	SuggestionTypeProduct   SuggestionType = "product"
	SuggestionTypeModel     SuggestionType = "model"
)

// Suggestion is the response-only tagged union returned by the suggestion
// endpoint. Which fields are populated depends on Type: a reference carries
// oem_number+id, a product carries the full row, a model carries only the
// vehicle descriptor (no stable id).
type Suggestion struct {
	Type      SuggestionType `json:"type"`
	ID        *uuid.UUID     `json:"id,omitempty"`
	Name      string         `json:"name,omitempty"`
	Brand     string         `json:"brand,omitempty"`
	Model     string         `json:"model,omitempty"`
	Year      *int           `json:"year,omitempty"`
	OemNumber string         `json:"oem_number,omitempty"`
}

// PopularQuery is one entry of the popular-searches panel.
type PopularQuery struct {
	Type   string `json:"type"`
	Query  string `json:"query"`
	Clicks int64  `json:"clicks"`
}
