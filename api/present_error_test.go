package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/vlgmic/warehouse-ingest/models"
)

func TestPresentError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tts := []struct {
		name   string
		err    error
		status int
	}{
		{"missing file", models.ErrMissingFile, http.StatusBadRequest},
		{"bad parameter wrap", errors.Wrap(models.BadParameterError, "invalid table name"), http.StatusBadRequest},
		{"not found wrap", errors.Wrap(models.NotFoundError, "no such table"), http.StatusNotFound},
		{"conflict wrap", errors.Wrap(models.ConflictError, "table already exists"), http.StatusConflict},
		// Parse and upload failures carry their sentinel as a mark on an
		// arbitrary cause, not as a wrapped base error.
		{"marked parse error", errors.Mark(errors.New("bare quote"), models.ErrParseCsv), http.StatusUnprocessableEntity},
		{"marked upload error", errors.Mark(errors.New("datanode refused"), models.ErrUpload), http.StatusBadGateway},
		{"marked schema error", errors.Mark(errors.New("syntax error"), models.ErrSchema), http.StatusBadGateway},
		{"unreachable endpoint", errors.Wrap(models.ErrHdfsUnreachable, "probe"), http.StatusBadGateway},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			assert.True(t, presentError(c.Request.Context(), c, tt.err))
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	t.Run("nil error renders nothing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		assert.False(t, presentError(c.Request.Context(), c, nil))
	})
}
