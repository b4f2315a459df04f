package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vlgmic/warehouse-ingest/usecases"
)

func addRoutes(r *gin.Engine, uc usecases.Usecases) {
	r.GET("/liveness", handleLivenessProbe)

	r.GET("/", handleGetUploadForm())
	r.POST("/", handlePostUpload(uc))

	r.POST("/columns_input", handlePostColumnsInput(uc))
	r.GET("/success", handleGetSuccess())

	r.GET("/assign_roles", handleGetAssignRoles())
	r.POST("/assign_roles_action", handlePostAssignRolesAction(uc))
}
