package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	menusvc "tableserve/internal/service/menu"
)

func listMenuHandler(svc menuService) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurant := currentRestaurant(c)
		items, err := svc.List(c.Request.Context(), restaurant.ID, c.Query("category"))
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func createMenuItemHandler(svc menuService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in menusvc.ItemInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		restaurant := currentRestaurant(c)
		item, err := svc.Create(c.Request.Context(), restaurant.ID, in)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func updateMenuItemHandler(svc menuService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in menusvc.ItemInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		restaurant := currentRestaurant(c)
		item, err := svc.Update(c.Request.Context(), restaurant.ID, c.Param("itemID"), in)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func availabilityHandler(svc menuService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Available *bool `json:"available"`
		}
		if err := c.ShouldBindJSON(&in); err != nil || in.Available == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "available required"})
			return
		}
		restaurant := currentRestaurant(c)
		if err := svc.SetAvailability(c.Request.Context(), restaurant.ID, c.Param("itemID"), *in.Available); err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"available": *in.Available})
	}
}

func deleteMenuItemHandler(svc menuService) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurant := currentRestaurant(c)
		if err := svc.Delete(c.Request.Context(), restaurant.ID, c.Param("itemID")); err != nil {
			writeServiceError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
