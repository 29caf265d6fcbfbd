package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard-dev/taskboard/internal/models"
)

// respondModelError translates the model layer's error kinds into HTTP
// responses. Validation failures map to 400, absent entities to 404,
// anything else is a store failure and maps to 500.
func respondModelError(ctx *gin.Context, err error, entity string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": entity + " not found"})
	case errors.Is(err, models.ErrMissingRequiredField),
		errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, models.ErrInvalidPriority),
		errors.Is(err, models.ErrInvalidDateFormat),
		errors.Is(err, models.ErrNoFieldsProvided):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("Store failure on %s: %v", entity, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
