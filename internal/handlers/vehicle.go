// internal/handlers/vehicle.go
package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/recambia/recambia-backend/internal/i18n"
	"github.com/recambia/recambia-backend/internal/services"
	"github.com/recambia/recambia-backend/internal/utils"
)

type VehicleHandler struct {
	vehicleService *services.VehicleService
}

func NewVehicleHandler(vehicleService *services.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// GET /vehicles/:plate
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	plate := strings.TrimSpace(c.Param("plate"))
	if plate == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyVehiclePlateRequired), nil)
		return
	}

	record, err := h.vehicleService.GetByPlate(c.Request.Context(), plate)
	if err != nil {
		if errors.Is(err, services.ErrVehicleNotFound) {
			utils.NotFoundResponse(c, "vehicle")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"vehicle": record,
	})
}

// POST /vehicles/:plate
func (h *VehicleHandler) UpsertVehicle(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	plate := strings.TrimSpace(c.Param("plate"))
	if plate == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyVehiclePlateRequired), nil)
		return
	}

	var req services.UpsertVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	record, err := h.vehicleService.UpsertByPlate(c.Request.Context(), plate, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyVehicleSaved),
		"vehicle": record,
	})
}
