package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindbuilders/dtmms/internal/middleware"
	"github.com/mindbuilders/dtmms/internal/models"
	appErrors "github.com/mindbuilders/dtmms/pkg/errors"
	"github.com/mindbuilders/dtmms/pkg/response"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// callerFromContext returns the authenticated caller as a user value, or
// writes 401 and returns false.
func callerFromContext(c *gin.Context) (models.User, bool) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return models.User{}, false
	}
	return models.User{ID: claims.UserID, Role: claims.Role, Email: claims.Email}, true
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message))
		return false
	}
	return true
}
