package handler

import (
	"github.com/ancarat/orderdesk/internal/application/service"
	"github.com/ancarat/orderdesk/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// CatalogHandler handles catalog and reference-data HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
	agentService   *service.AgentService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService, agentService *service.AgentService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		agentService:   agentService,
	}
}

// ListProducts handles listing the product catalog with current quotes
// @Summary List Products
// @Description Get the product catalog with current sell and buy prices
// @Tags catalog
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /catalog/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.Products(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products retrieved successfully", gin.H{
		"products": products,
	})
}

// ListAgents handles listing the dealer directory
// @Summary List Agents
// @Description Get the dealer directory with per-dealer discount rates
// @Tags catalog
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /catalog/agents [get]
func (h *CatalogHandler) ListAgents(c *gin.Context) {
	// Directory failures degrade to an empty list; entry falls back to walk-in.
	agents := h.agentService.Agents(c.Request.Context())

	response.OK(c, "Agents retrieved successfully", gin.H{
		"agents": agents,
	})
}
