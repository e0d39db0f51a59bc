// internal/services/part_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/recambia/recambia-backend/internal/models"
	"github.com/recambia/recambia-backend/internal/utils"
)

var ErrPartNotFound = errors.New("part not found")

// PartService is the catalog CRUD feeding the relevance store. The search
// vector is maintained by a database trigger, so writes here never touch it.
type PartService struct {
	db *gorm.DB
}

func NewPartService(db *gorm.DB) *PartService {
	return &PartService{db: db}
}

type CreatePartRequest struct {
	Name           string                 `json:"name" validate:"required,min=2,max=255"`
	Brand          string                 `json:"brand" validate:"max=100"`
	Model          string                 `json:"model" validate:"max=100"`
	OemNumber      string                 `json:"oem_number" validate:"omitempty,oem_code"`
	Year           *int                   `json:"year,omitempty" validate:"omitempty,min=1900,max=2100"`
	Description    string                 `json:"description"`
	Price          float64                `json:"price" validate:"required,min=0.01"`
	Condition      models.PartCondition   `json:"condition"`
	InventoryCount int                    `json:"inventory_count" validate:"min=0"`
	Images         []string               `json:"images,omitempty"`
	Specifications map[string]interface{} `json:"specifications,omitempty"`
}

type UpdatePartRequest struct {
	Name           string                 `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Brand          string                 `json:"brand,omitempty" validate:"omitempty,max=100"`
	Model          string                 `json:"model,omitempty" validate:"omitempty,max=100"`
	OemNumber      string                 `json:"oem_number,omitempty" validate:"omitempty,oem_code"`
	Year           *int                   `json:"year,omitempty" validate:"omitempty,min=1900,max=2100"`
	Description    string                 `json:"description,omitempty"`
	Price          float64                `json:"price,omitempty" validate:"omitempty,min=0.01"`
	Condition      models.PartCondition   `json:"condition,omitempty"`
	Status         models.PartStatus      `json:"status,omitempty"`
	InventoryCount *int                   `json:"inventory_count,omitempty" validate:"omitempty,min=0"`
	Images         []string               `json:"images,omitempty"`
	Specifications map[string]interface{} `json:"specifications,omitempty"`
}

type PartSearchParams struct {
	utils.PaginationParams
	SellerID  *uuid.UUID         `json:"seller_id,omitempty"`
	Status    *models.PartStatus `json:"status,omitempty"`
	Brand     string             `json:"brand,omitempty"`
	OemNumber string             `json:"oem_number,omitempty"`
}

func (s *PartService) CreatePart(ctx context.Context, sellerID uuid.UUID, req *CreatePartRequest) (*models.Part, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	condition := req.Condition
	if condition == "" {
		condition = models.PartConditionUsed
	}

	part := &models.Part{
		SellerID:       sellerID,
		Name:           req.Name,
		Brand:          req.Brand,
		Model:          req.Model,
		OemNumber:      strings.ToUpper(strings.TrimSpace(req.OemNumber)),
		Year:           req.Year,
		Description:    req.Description,
		Price:          req.Price,
		Condition:      condition,
		Status:         models.PartStatusActive,
		InventoryCount: req.InventoryCount,
		Images:         pq.StringArray(req.Images),
		Specifications: models.JSONB(req.Specifications),
	}

	if err := s.db.WithContext(ctx).Create(part).Error; err != nil {
		return nil, fmt.Errorf("failed to create part: %w", err)
	}

	return part, nil
}

func (s *PartService) GetPart(ctx context.Context, id uuid.UUID) (*models.Part, error) {
	var part models.Part
	if err := s.db.WithContext(ctx).First(&part, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &part, nil
}

func (s *PartService) UpdatePart(ctx context.Context, id uuid.UUID, sellerID uuid.UUID, req *UpdatePartRequest) (*models.Part, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var part models.Part
	if err := s.db.WithContext(ctx).First(&part, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if part.SellerID != sellerID {
		return nil, errors.New("unauthorized to update this part")
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Brand != "" {
		updates["brand"] = req.Brand
	}
	if req.Model != "" {
		updates["model"] = req.Model
	}
	if req.OemNumber != "" {
		updates["oem_number"] = strings.ToUpper(strings.TrimSpace(req.OemNumber))
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Price > 0 {
		updates["price"] = req.Price
	}
	if req.Condition != "" {
		updates["condition"] = req.Condition
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.InventoryCount != nil {
		updates["inventory_count"] = *req.InventoryCount
	}
	if req.Images != nil {
		updates["images"] = pq.StringArray(req.Images)
	}
	if req.Specifications != nil {
		updates["specifications"] = models.JSONB(req.Specifications)
	}

	if err := s.db.WithContext(ctx).Model(&part).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update part: %w", err)
	}

	// Reload so the trigger-maintained columns are fresh
	if err := s.db.WithContext(ctx).First(&part, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &part, nil
}

func (s *PartService) ListParts(ctx context.Context, params PartSearchParams) ([]models.Part, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Part{})

	if params.SellerID != nil {
		query = query.Where("seller_id = ?", *params.SellerID)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	} else {
		query = query.Where("status = ?", models.PartStatusActive)
	}

	if params.Brand != "" {
		query = query.Where("LOWER(brand) = ?", strings.ToLower(params.Brand))
	}

	if params.OemNumber != "" {
		query = query.Where("oem_number = ?", strings.ToUpper(strings.TrimSpace(params.OemNumber)))
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count parts: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "price", "year"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var parts []models.Part
	if err := query.Find(&parts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch parts: %w", err)
	}

	return parts, total, nil
}
