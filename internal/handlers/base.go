package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"amthub/internal/models"
)

// JSON error helper
func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// handleWriteError maps persistence and validation failures onto the API
// error taxonomy.
func handleWriteError(c *gin.Context, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": ve.Fields})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		respondError(c, http.StatusConflict, "email is already registered")
	case errors.Is(err, models.ErrInvalidOrExpiredToken):
		respondError(c, http.StatusBadRequest, "invalid or expired token")
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(c, http.StatusNotFound, "not found")
	default:
		respondError(c, http.StatusInternalServerError, "internal error")
	}
}

// Render drives the email-link landing pages.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}
	c.HTML(code, name, obj)
}
