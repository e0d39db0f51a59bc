// internal/models/oem.go
package models

import (
	"github.com/google/uuid"
)

// OemPart is a manufacturer part keyed by its normalized (upper-cased) OEM
// code. Its compatibility rows are fully replaced on every re-ingestion.
type OemPart struct {
	BaseModel
	Code        string `json:"code" gorm:"size:100;not null;uniqueIndex"`
	Description string `json:"description" gorm:"type:text"`
	Features    JSONB  `json:"features,omitempty" gorm:"type:jsonb"`

	Compatibilities []OemCompatibility `json:"compatibilities,omitempty" gorm:"foreignKey:OemPartID;constraint:OnDelete:CASCADE"`
}

func (OemPart) TableName() string {
	return "oem_parts"
}

// OemCompatibility is one vehicle fitment record of an OemPart. Extra keeps
// scraped attributes outside the fixed schema verbatim.
type OemCompatibility struct {
	BaseModel
	OemPartID uuid.UUID `json:"oem_part_id" gorm:"type:uuid;not null;index"`
	Brand     string    `json:"brand" gorm:"size:100"`
	Model     string    `json:"model" gorm:"size:100"`
	Variant   string    `json:"variant" gorm:"size:100"`
	Engine    string    `json:"engine" gorm:"size:100"`
	YearFrom  *int      `json:"year_from,omitempty"`
	YearTo    *int      `json:"year_to,omitempty"`
	Extra     JSONB     `json:"extra,omitempty" gorm:"type:jsonb"`
}

func (OemCompatibility) TableName() string {
	return "oem_compatibilities"
}
