package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/littlelemon/internal/domain"
)

// errIfBadID writes a 404 for a non-numeric id path segment.
func errIfBadID(c *gin.Context, err error) error {
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	}
	return err
}

// respondError maps service errors onto the wire: validation failures become
// a per-field 400 object, unknown ids a 404, everything else a 500.
func respondError(c *gin.Context, err error) {
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, verrs)
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
