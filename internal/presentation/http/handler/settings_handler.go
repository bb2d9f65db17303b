package handler

import (
	"github.com/ancarat/orderdesk/internal/application/service"
	"github.com/ancarat/orderdesk/internal/config"
	"github.com/ancarat/orderdesk/internal/presentation/http/dto/request"
	"github.com/ancarat/orderdesk/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// SettingsHandler handles runtime settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles fetching the active settings
// @Summary Get Settings
// @Description Get the active store and feed references, redacted for display
// @Tags settings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	response.OK(c, "Settings retrieved successfully", gin.H{
		"settings": h.settingsService.Redacted(),
	})
}

// Update handles swapping the runtime settings
// @Summary Update Settings
// @Description Replace the active store and feed references
// @Tags settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.UpdateSettingsRequest true "New references"
// @Success 200 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Router /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req request.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.settingsService.Swap(config.Settings{
		LedgerSheetID:   req.LedgerSheetID,
		AgentSheetID:    req.AgentSheetID,
		DeliverySheetID: req.DeliverySheetID,
		ProductFeedURL:  req.ProductFeedURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", gin.H{
		"settings": h.settingsService.Redacted(),
	})
}
