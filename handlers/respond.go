package handlers

import (
	"log"
	"net/http"

	"food-ordering-api/apperr"

	"github.com/gin-gonic/gin"
)

// writeError maps the service error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a 500 and its detail stays out of the response.
func writeError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.Unauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case apperr.Forbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case apperr.NotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperr.Conflict, apperr.InvalidState:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperr.Validation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
