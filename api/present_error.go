package api

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/vlgmic/warehouse-ingest/models"
	"github.com/vlgmic/warehouse-ingest/utils"
)

// presentError renders err and returns true, or returns false when err is
// nil. Handlers use it as a guard after every usecase call.
func presentError(ctx context.Context, c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, models.BadParameterError):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, models.NotFoundError):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, models.ConflictError):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	// ErrParseCsv is attached to parse failures with errors.Mark, which does
	// not carry the base UnprocessableError, so it needs its own case.
	case errors.Is(err, models.UnprocessableError), errors.Is(err, models.ErrParseCsv):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
	case errors.Is(err, models.ErrUpload), errors.Is(err, models.ErrSchema),
		errors.Is(err, models.ErrHdfsUnreachable):
		utils.LoggerFromContext(ctx).ErrorContext(ctx, err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"message": err.Error()})
	default:
		utils.LoggerFromContext(ctx).ErrorContext(ctx, "unexpected error: "+err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
	return true
}
