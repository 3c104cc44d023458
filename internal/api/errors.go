package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/healthtracker/backend/internal/middleware"
	"github.com/pageza/healthtracker/backend/internal/service"
	"github.com/pageza/healthtracker/backend/internal/types"
)

const internalErrorMessage = "An internal server error occurred."

// errorStatus maps service sentinels to the status and text shown to users.
var errorStatus = []struct {
	err     error
	status  int
	message string
}{
	{service.ErrUserExists, http.StatusBadRequest, "Username or email already exists"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid username or password"},
	{service.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{service.ErrActivityNotFound, http.StatusNotFound, "Activity not found"},
	{service.ErrNoPhoto, http.StatusBadRequest, "No photo file provided."},
	{service.ErrUnsupportedImage, http.StatusBadRequest, "Invalid file type. Please use JPG, JPEG, or PNG."},
	{service.ErrImageTooLarge, http.StatusBadRequest, "Image is too large"},
	{service.ErrRecognitionFailed, http.StatusInternalServerError, "Could not analyze image with AI. Check server logs."},
	{service.ErrNoFoodIdentified, http.StatusBadRequest, "AI could not identify any food in the image."},
	{service.ErrInvalidPortion, http.StatusBadRequest, "Invalid portion multiplier"},
}

func respondError(c *gin.Context, err error) {
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(verr.Message))
		return
	}
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			c.JSON(e.status, types.NewErrorResponse(e.message))
			return
		}
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, types.NewErrorResponse(internalErrorMessage))
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, types.NewErrorResponse(message))
}

// currentUser reads the id set by the auth middleware, answering 401 when
// it is missing.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, types.NewErrorResponse("Login required"))
	}
	return userID, ok
}
