// internal/services/oem_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/recambia/recambia-backend/internal/models"
)

var (
	ErrOemPartNotFound = errors.New("oem part not found")
	ErrBadEnvelope     = errors.New("malformed ingestion envelope")
)

type OemService struct {
	db *gorm.DB
}

func NewOemService(db *gorm.DB) *OemService {
	return &OemService{db: db}
}

// OemIngestEnvelope is the payload shape produced by the scrape provider and
// accepted by the bulk-ingest endpoint.
type OemIngestEnvelope struct {
	Success bool            `json:"success"`
	Data    []OemIngestItem `json:"data"`
}

type OemIngestItem struct {
	Oem            string                 `json:"oem,omitempty"`
	Description    string                 `json:"description,omitempty"`
	Features       map[string]interface{} `json:"caracteristicas,omitempty"`
	Compatibilidad []OemCompatEntry       `json:"compatibilidad,omitempty"`
}

// OemCompatEntry mirrors one scraped fitment row. Extra keeps attributes
// outside the fixed schema and is persisted verbatim.
type OemCompatEntry struct {
	Brand    string                 `json:"marca"`
	Model    string                 `json:"modelo"`
	Variant  string                 `json:"version,omitempty"`
	Engine   string                 `json:"motor,omitempty"`
	YearFrom *int                   `json:"anio_desde,omitempty"`
	YearTo   *int                   `json:"anio_hasta,omitempty"`
	Extra    map[string]interface{} `json:"extra,omitempty"`
}

// OemIngestResult reports the outcome for a single batch item. A failed item
// never aborts the rest of the batch.
type OemIngestResult struct {
	Index  int        `json:"index"`
	Code   string     `json:"code,omitempty"`
	ID     *uuid.UUID `json:"id,omitempty"`
	Status string     `json:"status"`
	Error  string     `json:"error,omitempty"`
}

// NormalizeOemCode upper-cases and trims an OEM code for storage and lookup.
func NormalizeOemCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Feature-bag keys checked, in order, when an item has no explicit oem field.
var oemFeatureKeys = []string{"Referencia OEM", "OEM", "Referencia"}

// Columns overwritten when ingesting a code that already exists. deleted_at
// is included so a row that was soft-deleted by other means is resurrected
// instead of staying invisible to the post-upsert lookup.
var oemUpsertColumns = []string{"description", "features", "deleted_at", "updated_at"}

// DeriveOemCode resolves the OEM code of an ingest item: the explicit field
// wins, then the feature bag.
func DeriveOemCode(item *OemIngestItem) (string, error) {
	if code := NormalizeOemCode(item.Oem); code != "" {
		return code, nil
	}
	for _, key := range oemFeatureKeys {
		if v, ok := item.Features[key]; ok {
			if str, ok := v.(string); ok {
				if code := NormalizeOemCode(str); code != "" {
					return code, nil
				}
			}
		}
	}
	return "", errors.New("no OEM code could be derived")
}

func (s *OemService) GetByCode(ctx context.Context, code string) (*models.OemPart, error) {
	var part models.OemPart
	if err := s.db.WithContext(ctx).
		Preload("Compatibilities").
		Where("code = ?", NormalizeOemCode(code)).
		First(&part).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOemPartNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &part, nil
}

// DeleteByCode removes the part for real rather than soft-deleting it: a
// soft-deleted row would still hold the unique code and block a later
// re-ingestion of the same part. Compatibility rows go with it via the
// ON DELETE CASCADE constraint.
func (s *OemService) DeleteByCode(ctx context.Context, code string) error {
	result := s.db.WithContext(ctx).
		Unscoped().
		Where("code = ?", NormalizeOemCode(code)).
		Delete(&models.OemPart{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete oem part: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrOemPartNotFound
	}
	return nil
}

// ValidateEnvelope rejects a malformed payload before any store access.
func ValidateEnvelope(envelope *OemIngestEnvelope) error {
	if envelope == nil || envelope.Data == nil {
		return ErrBadEnvelope
	}
	return nil
}

// IngestBatch upserts each item independently: a per-item failure (no
// derivable OEM code, write error) is recorded in the results array and the
// remaining items proceed. Per item, the part upsert and the full replace of
// its compatibility rows share one transaction, so a part is never left
// half-ingested.
func (s *OemService) IngestBatch(ctx context.Context, envelope *OemIngestEnvelope) ([]OemIngestResult, error) {
	if err := ValidateEnvelope(envelope); err != nil {
		return nil, err
	}

	results := make([]OemIngestResult, 0, len(envelope.Data))
	for i := range envelope.Data {
		item := &envelope.Data[i]
		result := OemIngestResult{Index: i}

		code, err := DeriveOemCode(item)
		if err != nil {
			result.Status = "error"
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.Code = code

		id, err := s.ingestItem(ctx, code, item)
		if err != nil {
			result.Status = "error"
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		result.Status = "ok"
		result.ID = &id
		results = append(results, result)
	}

	return results, nil
}

func (s *OemService) ingestItem(ctx context.Context, code string, item *OemIngestItem) (uuid.UUID, error) {
	var partID uuid.UUID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		part := models.OemPart{
			Code:        code,
			Description: item.Description,
			Features:    models.JSONB(item.Features),
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns(oemUpsertColumns),
		}).Create(&part).Error; err != nil {
			return fmt.Errorf("failed to upsert oem part: %w", err)
		}

		// The returned ID is not populated on conflict; fetch the stored row.
		var stored models.OemPart
		if err := tx.Where("code = ?", code).First(&stored).Error; err != nil {
			return fmt.Errorf("failed to load oem part: %w", err)
		}
		partID = stored.ID

		// Full replace: the compatibility set must be exactly what was last
		// ingested, never a merge with stale rows.
		if item.Compatibilidad != nil {
			if err := tx.Unscoped().
				Where("oem_part_id = ?", partID).
				Delete(&models.OemCompatibility{}).Error; err != nil {
				return fmt.Errorf("failed to clear compatibilities: %w", err)
			}

			rows := make([]models.OemCompatibility, 0, len(item.Compatibilidad))
			for _, entry := range item.Compatibilidad {
				rows = append(rows, models.OemCompatibility{
					OemPartID: partID,
					Brand:     entry.Brand,
					Model:     entry.Model,
					Variant:   entry.Variant,
					Engine:    entry.Engine,
					YearFrom:  entry.YearFrom,
					YearTo:    entry.YearTo,
					Extra:     models.JSONB(entry.Extra),
				})
			}

			if len(rows) > 0 {
				if err := tx.Create(&rows).Error; err != nil {
					return fmt.Errorf("failed to insert compatibilities: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return partID, nil
}
