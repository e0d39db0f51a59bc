// internal/handlers/part.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/recambia/recambia-backend/internal/i18n"
	"github.com/recambia/recambia-backend/internal/models"
	"github.com/recambia/recambia-backend/internal/services"
	"github.com/recambia/recambia-backend/internal/utils"
)

type PartHandler struct {
	partService *services.PartService
}

func NewPartHandler(partService *services.PartService) *PartHandler {
	return &PartHandler{partService: partService}
}

// GET /parts
func (h *PartHandler) GetParts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.PartSearchParams{
		PaginationParams: params,
	}

	if brand := c.Query("brand"); brand != "" {
		searchParams.Brand = brand
	}

	if oem := c.Query("oem_number"); oem != "" {
		searchParams.OemNumber = oem
	}

	if status := c.Query("status"); status != "" {
		partStatus := models.PartStatus(status)
		searchParams.Status = &partStatus
	}

	if sellerIDStr := c.Query("seller_id"); sellerIDStr != "" {
		if sellerID, err := uuid.Parse(sellerIDStr); err == nil {
			searchParams.SellerID = &sellerID
		}
	}

	parts, total, err := h.partService.ListParts(c.Request.Context(), searchParams)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(parts, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /parts/:id
func (h *PartHandler) GetPart(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid part ID", nil)
		return
	}

	part, err := h.partService.GetPart(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrPartNotFound) {
			utils.NotFoundResponse(c, "part")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"part": part,
	})
}

// POST /parts
func (h *PartHandler) CreatePart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	sellerID, ok := sellerIDFromContext(c)
	if !ok {
		utils.BadRequestResponse(c, "Seller identity required", nil)
		return
	}

	var req services.CreatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	part, err := h.partService.CreatePart(c.Request.Context(), sellerID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPartCreated),
		"part":    part,
	})
}

// PUT /parts/:id
func (h *PartHandler) UpdatePart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid part ID", nil)
		return
	}

	sellerID, ok := sellerIDFromContext(c)
	if !ok {
		utils.BadRequestResponse(c, "Seller identity required", nil)
		return
	}

	var req services.UpdatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	part, err := h.partService.UpdatePart(c.Request.Context(), id, sellerID, &req)
	if err != nil {
		if errors.Is(err, services.ErrPartNotFound) {
			utils.NotFoundResponse(c, "part")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPartUpdated),
		"part":    part,
	})
}

func sellerIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		return uuid.Nil, false
	}
	sellerID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}
	return sellerID, true
}
