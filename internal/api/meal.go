package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/pageza/healthtracker/backend/internal/middleware"
	"github.com/pageza/healthtracker/backend/internal/service"
	"github.com/pageza/healthtracker/backend/internal/types"
	"github.com/pageza/healthtracker/backend/internal/view"
	"github.com/pageza/healthtracker/backend/pkg/logger"
)

type MealHandler struct {
	mealService     service.IMealService
	analysisService service.IAnalysisService
	photoLimiter    *middleware.RateLimiter
	log             *logger.Logger
}

// NewMealHandler creates a meal handler. photoLimiter may be nil.
func NewMealHandler(mealService service.IMealService, analysisService service.IAnalysisService, photoLimiter *middleware.RateLimiter, log *logger.Logger) *MealHandler {
	return &MealHandler{
		mealService:     mealService,
		analysisService: analysisService,
		photoLimiter:    photoLimiter,
		log:             log.Named("meal_handler"),
	}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meal")
	meals.GET("", h.ListMeals)
	if h.photoLimiter != nil {
		meals.POST("", h.photoLimiter.Middleware(middleware.IsPhotoSubmission), h.AddMeal)
	} else {
		meals.POST("", h.AddMeal)
	}
}

func (h *MealHandler) ListMeals(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	meals, err := h.mealService.List(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, meals)
}

// AddMeal analyses an uploaded photo, or stores a manual entry when the
// request is JSON, a urlencoded form, or a multipart form carrying
// food_items.
func (h *MealHandler) AddMeal(c *gin.Context) {
	if isPhotoUpload(c) {
		h.analyzePhoto(c)
		return
	}
	h.addManual(c)
}

func isPhotoUpload(c *gin.Context) bool {
	if !strings.HasPrefix(c.ContentType(), binding.MIMEMultipartPOSTForm) {
		return false
	}
	_, manual := c.GetPostForm("food_items")
	if !manual {
		return true
	}
	_, err := c.FormFile("photo")
	return err == nil
}

func (h *MealHandler) analyzePhoto(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	in := service.AnalyzeInput{
		UserID:   userID,
		MealType: c.PostForm("meal_type"),
		Date:     c.PostForm("date"),
	}
	if raw, ok := c.GetPostForm("portion_multiplier"); ok && strings.TrimSpace(raw) != "" {
		portion, err := service.ParsePortionMultiplier(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		in.Portion = portion
	}

	file, err := c.FormFile("photo")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			h.log.Warnw("failed to read upload", "user_id", userID, "error", err)
		}
		respondError(c, service.ErrNoPhoto)
		return
	}
	if err := h.analysisService.ValidateUpload(file.Filename, file.Size); err != nil {
		respondError(c, err)
		return
	}

	f, err := file.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	image, err := io.ReadAll(io.LimitReader(f, h.analysisService.MaxUploadBytes()+1))
	if err != nil {
		respondError(c, err)
		return
	}
	in.Filename = file.Filename
	in.Image = image

	analysis, err := h.analysisService.Analyze(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view.Analysis(analysis))
}

func (h *MealHandler) addManual(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.ManualMealRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	meal, err := h.mealService.AddManual(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  types.StatusSuccess,
		"meal_id": meal.ID,
		"message": "Meal added successfully",
	})
}
