// internal/services/vehicle_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/recambia/recambia-backend/internal/models"
	"github.com/recambia/recambia-backend/internal/utils"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

type VehicleService struct {
	db *gorm.DB
}

func NewVehicleService(db *gorm.DB) *VehicleService {
	return &VehicleService{db: db}
}

type UpsertVehicleRequest struct {
	Source       string                 `json:"source" validate:"required,max=100"`
	Title        string                 `json:"title" validate:"required,max=255"`
	FullName     string                 `json:"full_name" validate:"required,max=255"`
	Make         *string                `json:"make,omitempty"`
	Model        *string                `json:"model,omitempty"`
	Year         *int                   `json:"year,omitempty" validate:"omitempty,min=1900,max=2100"`
	Fuel         *string                `json:"fuel,omitempty"`
	Engine       *string                `json:"engine,omitempty"`
	Power        *string                `json:"power,omitempty"`
	Transmission *string                `json:"transmission,omitempty"`
	VIN          *string                `json:"vin,omitempty"`
	Extra        map[string]interface{} `json:"extra,omitempty"`
}

// NormalizePlate lower-cases and trims a license plate for storage and lookup.
func NormalizePlate(plate string) string {
	return strings.ToLower(strings.TrimSpace(plate))
}

func (s *VehicleService) GetByPlate(ctx context.Context, plate string) (*models.VehicleRecord, error) {
	var record models.VehicleRecord
	if err := s.db.WithContext(ctx).
		Where("plate = ?", NormalizePlate(plate)).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &record, nil
}

// UpsertByPlate creates the record if absent, otherwise overwrites every
// field with the new payload. Omitted optional fields end up null — there is
// deliberately no partial-merge of stale data from a previous scrape.
func (s *VehicleService) UpsertByPlate(ctx context.Context, plate string, req *UpsertVehicleRequest) (*models.VehicleRecord, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	record := models.VehicleRecord{
		Plate:        NormalizePlate(plate),
		Source:       req.Source,
		Title:        req.Title,
		FullName:     req.FullName,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Fuel:         req.Fuel,
		Engine:       req.Engine,
		Power:        req.Power,
		Transmission: req.Transmission,
		VIN:          req.VIN,
		Extra:        models.JSONB(req.Extra),
	}

	// deleted_at is overwritten too, so a previously soft-deleted plate comes
	// back instead of shadowing the upsert.
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "plate"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"source", "title", "full_name", "make", "model", "year",
			"fuel", "engine", "power", "transmission", "vin", "extra",
			"deleted_at", "updated_at",
		}),
	}).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to upsert vehicle: %w", err)
	}

	// Re-read so the caller sees the stored row (id/timestamps on conflict)
	return s.GetByPlate(ctx, plate)
}
