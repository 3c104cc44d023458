package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/healthtracker/backend/internal/service"
	"github.com/pageza/healthtracker/backend/internal/types"
	"github.com/pageza/healthtracker/backend/internal/view"
)

type VitalsHandler struct {
	vitalsService service.IVitalsService
}

func NewVitalsHandler(vitalsService service.IVitalsService) *VitalsHandler {
	return &VitalsHandler{vitalsService: vitalsService}
}

func (h *VitalsHandler) RegisterRoutes(router *gin.RouterGroup) {
	vitals := router.Group("/vitals")
	{
		vitals.POST("", h.AddVitals)
		vitals.GET("", h.ListVitals)
		vitals.GET("/history", h.History)
	}
}

func (h *VitalsHandler) AddVitals(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.VitalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	entry, err := h.vitalsService.Add(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":    types.StatusSuccess,
		"message":   "Vitals added successfully!",
		"vitals_id": entry.ID,
	})
}

func (h *VitalsHandler) ListVitals(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	entries, err := h.vitalsService.List(c.Request.Context(), userID, c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// History returns the table rows and chart series the dashboard renders.
func (h *VitalsHandler) History(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	entries, err := h.vitalsService.List(c.Request.Context(), userID, c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view.History(entries))
}
