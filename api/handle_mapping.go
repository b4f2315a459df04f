package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/vlgmic/warehouse-ingest/dto"
	"github.com/vlgmic/warehouse-ingest/models"
	"github.com/vlgmic/warehouse-ingest/usecases"
)

func handlePostColumnsInput(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.ColumnsInputBody
		if err := c.ShouldBind(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		usecase := uc.NewIngestionUseCase()
		result, err := usecase.MaterializeMapping(ctx, body.HdfsDirectory,
			body.HdfsFilePath, dto.AdaptColumnMapping(body))
		if presentError(ctx, c, err) {
			return
		}

		c.Redirect(http.StatusFound, fmt.Sprintf("/success?external_table_name=%s&internal_table_name=%s",
			url.QueryEscape(result.ExternalTableName),
			url.QueryEscape(result.InternalTableName)))
	}
}

func handleGetSuccess() func(c *gin.Context) {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.AdaptIngestionResult(models.IngestionResult{
			ExternalTableName: c.Query("external_table_name"),
			InternalTableName: c.Query("internal_table_name"),
		}))
	}
}
