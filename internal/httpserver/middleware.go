package httpserver

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tableserve/internal/domain"
)

type ctxKey string

const restaurantCtxKey ctxKey = "restaurant"

const superAdminHeader = "X-Superadmin-Key"

// restaurantMiddleware resolves the :slug segment once and stores the
// restaurant in the request context for downstream handlers.
func restaurantMiddleware(repo restaurantResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		restaurant, err := repo.GetBySlug(c.Request.Context(), slug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		ctx := context.WithValue(c.Request.Context(), restaurantCtxKey, restaurant)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// currentRestaurant returns the restaurant stored by restaurantMiddleware.
func currentRestaurant(c *gin.Context) *domain.Restaurant {
	r, _ := c.Request.Context().Value(restaurantCtxKey).(*domain.Restaurant)
	return r
}

// superAdminMiddleware guards the provisioning surface with a shared
// key. With no key configured the surface is disabled outright.
func superAdminMiddleware(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "admin provisioning disabled"})
			return
		}
		provided := c.GetHeader(superAdminHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid key"})
			return
		}
		c.Next()
	}
}
