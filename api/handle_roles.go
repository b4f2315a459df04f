package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vlgmic/warehouse-ingest/dto"
	"github.com/vlgmic/warehouse-ingest/usecases"
)

func handleGetAssignRoles() func(c *gin.Context) {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"table_name": c.Query("table_name"),
			"roles":      []string{"SELECT", "INSERT", "UPDATE", "DELETE", "ALL"},
		})
	}
}

func handlePostAssignRolesAction(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.AssignRoleBody
		if err := c.ShouldBind(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		usecase := uc.NewAccessUseCase()
		err := usecase.GrantRole(ctx, body.TableName, body.Role, body.Username)
		if presentError(ctx, c, err) {
			return
		}

		c.Redirect(http.StatusFound, "/")
	}
}
