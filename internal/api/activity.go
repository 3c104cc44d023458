package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pageza/healthtracker/backend/internal/service"
	"github.com/pageza/healthtracker/backend/internal/types"
)

type ActivityHandler struct {
	activityService service.IActivityService
}

func NewActivityHandler(activityService service.IActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	activities := router.Group("/activity")
	{
		activities.GET("", h.ListActivities)
		activities.POST("", h.AddActivity)
		activities.DELETE("", h.DeleteActivity)
	}
}

func (h *ActivityHandler) ListActivities(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	activities, err := h.activityService.List(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, activities)
}

func (h *ActivityHandler) AddActivity(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	activity, err := h.activityService.Add(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": types.StatusSuccess, "activity_id": activity.ID})
}

func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		badRequest(c, "Activity ID required")
		return
	}

	if err := h.activityService.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": types.StatusSuccess, "message": "Activity deleted"})
}
