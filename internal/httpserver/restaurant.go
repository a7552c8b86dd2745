package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	restaurantsvc "tableserve/internal/service/restaurant"
)

func getProfileHandler(c *gin.Context) {
	c.JSON(http.StatusOK, currentRestaurant(c))
}

func updateProfileHandler(svc profileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in restaurantsvc.ProfileInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		restaurant := currentRestaurant(c)
		updated, err := svc.UpdateProfile(c.Request.Context(), restaurant.ID, in)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func listTablesHandler(svc profileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurant := currentRestaurant(c)
		tables, err := svc.ListTables(c.Request.Context(), restaurant.ID)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"tables": tables})
	}
}

func tableQRHandler(svc profileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurant := currentRestaurant(c)
		png, err := svc.TableQR(c.Request.Context(), restaurant, c.Param("tableID"))
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	}
}
