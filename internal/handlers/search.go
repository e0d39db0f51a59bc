// internal/handlers/search.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/recambia/recambia-backend/internal/i18n"
	"github.com/recambia/recambia-backend/internal/services"
	"github.com/recambia/recambia-backend/internal/utils"
)

type SearchHandler struct {
	searchService *services.SearchService
}

func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

type logClickRequest struct {
	Query string `json:"query"`
}

// requestUserID resolves the optional user identity: a verified token wins,
// otherwise an explicit user_id query parameter is accepted.
func requestUserID(c *gin.Context) *uuid.UUID {
	if userIDStr, exists := utils.GetUserIDFromContext(c); exists {
		if uid, err := uuid.Parse(userIDStr); err == nil {
			return &uid
		}
	}
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		if uid, err := uuid.Parse(userIDStr); err == nil {
			return &uid
		}
	}
	return nil
}

// GET /search/suggestions
func (h *SearchHandler) GetSuggestions(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	result, err := h.searchService.Suggest(c.Request.Context(), c.Query("q"), requestUserID(c))
	if err != nil {
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeySearchUnavailable))
		return
	}

	utils.SuccessResponse(c, result)
}

// POST /search/click
func (h *SearchHandler) LogClick(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req logClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeySearchQueryRequired), err.Error())
		return
	}

	if err := h.searchService.LogClick(c.Request.Context(), req.Query, requestUserID(c)); err != nil {
		if errors.Is(err, services.ErrEmptyQuery) {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeySearchQueryRequired), nil)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySearchClickLogged),
	})
}
