package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	adminsvc "tableserve/internal/service/admin"
)

func provisionAdminHandler(svc adminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in adminsvc.ProvisionInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		created, err := svc.Provision(c.Request.Context(), in)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}
