package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vlgmic/warehouse-ingest/dto"
	"github.com/vlgmic/warehouse-ingest/models"
	"github.com/vlgmic/warehouse-ingest/usecases"
)

// handleGetUploadForm describes the upload form for the frontend. Rendering
// itself lives client-side.
func handleGetUploadForm() func(c *gin.Context) {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"file_field": "csv_file",
			"accept":     ".csv",
		})
	}
}

func handlePostUpload(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		fileHeader, err := c.FormFile("csv_file")
		if err != nil {
			presentError(ctx, c, models.ErrMissingFile)
			return
		}
		if fileHeader.Filename == "" {
			presentError(ctx, c, models.ErrMissingFile)
			return
		}

		file, err := fileHeader.Open()
		if presentError(ctx, c, err) {
			return
		}
		defer file.Close()

		usecase := uc.NewIngestionUseCase()
		session, err := usecase.StageUpload(ctx, fileHeader.Filename, file)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusCreated, dto.AdaptUploadResponse(session))
	}
}
