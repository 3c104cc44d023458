package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/healthtracker/backend/internal/service"
	"github.com/pageza/healthtracker/backend/internal/types"
	"github.com/pageza/healthtracker/backend/pkg/logger"
)

// SessionConfig controls the session cookie.
type SessionConfig struct {
	CookieName string
	Secure     bool
}

type AuthHandler struct {
	authService service.IAuthService
	session     SessionConfig
	log         *logger.Logger
}

func NewAuthHandler(authService service.IAuthService, session SessionConfig, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		session:     session,
		log:         log.Named("auth_handler"),
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/signup", h.Signup)
	router.POST("/login", h.Login)
	router.POST("/logout", h.Logout)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req types.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.authService.GenerateToken(user, service.PersistentSessionTTL)
	if err != nil {
		h.log.Errorw("failed to issue session", "user_id", user.ID, "error", err)
		respondError(c, err)
		return
	}
	h.setSession(c, token, service.PersistentSessionTTL)

	c.JSON(http.StatusCreated, gin.H{
		"status":  types.StatusSuccess,
		"message": "Account created successfully",
		"user_id": user.ID,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	req.Normalize()
	if err := types.Validate(req); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	ttl := service.SessionTTL
	if req.Remember {
		ttl = service.PersistentSessionTTL
	}
	token, err := h.authService.GenerateToken(user, ttl)
	if err != nil {
		h.log.Errorw("failed to issue session", "user_id", user.ID, "error", err)
		respondError(c, err)
		return
	}
	h.setSession(c, token, ttl)

	c.JSON(http.StatusOK, gin.H{
		"status":  types.StatusSuccess,
		"message": "Logged in successfully",
		"token":   token,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.session.CookieName, "", -1, "/", "", h.session.Secure, true)
	c.JSON(http.StatusOK, gin.H{
		"status":  types.StatusSuccess,
		"message": "Logged out successfully",
	})
}

func (h *AuthHandler) setSession(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.session.CookieName, token, int(ttl.Seconds()), "/", "", h.session.Secure, true)
}
