// internal/handlers/oem.go
package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/recambia/recambia-backend/internal/i18n"
	"github.com/recambia/recambia-backend/internal/services"
	"github.com/recambia/recambia-backend/internal/utils"
)

type OemHandler struct {
	oemService     *services.OemService
	scraperService *services.ScraperService
}

func NewOemHandler(oemService *services.OemService, scraperService *services.ScraperService) *OemHandler {
	return &OemHandler{
		oemService:     oemService,
		scraperService: scraperService,
	}
}

type scrapeRequest struct {
	Plate string `json:"plate,omitempty"`
	Code  string `json:"code,omitempty"`
}

// GET /oem/:code
func (h *OemHandler) GetOemPart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyOemCodeRequired), nil)
		return
	}

	part, err := h.oemService.GetByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, services.ErrOemPartNotFound) {
			utils.NotFoundResponse(c, "oem")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"part": part,
	})
}

// DELETE /oem/:code
func (h *OemHandler) DeleteOemPart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyOemCodeRequired), nil)
		return
	}

	if err := h.oemService.DeleteByCode(c.Request.Context(), code); err != nil {
		if errors.Is(err, services.ErrOemPartNotFound) {
			utils.NotFoundResponse(c, "oem")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOemDeleted),
	})
}

// POST /oem/ingest
func (h *OemHandler) IngestOemParts(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var envelope services.OemIngestEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyOemBadEnvelope), err.Error())
		return
	}

	results, err := h.oemService.IngestBatch(c.Request.Context(), &envelope)
	if err != nil {
		if errors.Is(err, services.ErrBadEnvelope) {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyOemBadEnvelope), nil)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"results": results,
	})
}

// POST /oem/scrape
func (h *OemHandler) ScrapeAndIngest(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req scrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	query := strings.TrimSpace(req.Code)
	if query == "" {
		query = strings.TrimSpace(req.Plate)
	}
	if query == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyOemCodeRequired), nil)
		return
	}

	envelope, err := h.scraperService.Lookup(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, services.ErrScrapeTimeout) {
			utils.TimeoutResponse(c, i18n.T(lang, i18n.KeyOemScrapeTimeout))
			return
		}
		if errors.Is(err, services.ErrScraperNotConfigured) {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyOemScrapeFailed))
		return
	}

	results, err := h.oemService.IngestBatch(c.Request.Context(), envelope)
	if err != nil {
		if errors.Is(err, services.ErrBadEnvelope) {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyOemBadEnvelope), nil)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"results": results,
	})
}
