// internal/models/part.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Part is a sellable spare part. The search_vector column is recomputed by a
// database trigger whenever name, brand, model, oem_number or year change, so
// reads always see a vector consistent with the row's text fields.
type Part struct {
	BaseModel
	SellerID       uuid.UUID      `json:"seller_id" gorm:"type:uuid;not null;index"`
	Name           string         `json:"name" gorm:"size:255;index"`
	Brand          string         `json:"brand" gorm:"size:100;index"`
	Model          string         `json:"model" gorm:"size:100;index"`
	OemNumber      string         `json:"oem_number" gorm:"size:100;index"`
	Year           *int           `json:"year,omitempty"`
	Description    string         `json:"description" gorm:"type:text"`
	Price          float64        `json:"price" gorm:"type:decimal(10,2)"`
	Condition      PartCondition  `json:"condition" gorm:"type:varchar(20);default:'used'"`
	Status         PartStatus     `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	InventoryCount int            `json:"inventory_count" gorm:"default:1"`
	Images         pq.StringArray `json:"images" gorm:"type:text[]"`
	Specifications JSONB          `json:"specifications" gorm:"type:jsonb"`
	SearchVector   string         `json:"-" gorm:"type:tsvector;->"`
	ViewCount      int64          `json:"view_count" gorm:"default:0"`
}
