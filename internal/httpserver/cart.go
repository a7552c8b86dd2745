package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tableserve/internal/cart"
)

const cartSessionHeader = "X-Cart-Session"

type cartResponse struct {
	Session string      `json:"session"`
	Lines   []cart.Line `json:"lines"`
	Totals  cart.Totals `json:"totals"`
}

// cartSession returns the caller's session token, minting one when the
// header is absent.
func cartSession(c *gin.Context, carts *cart.Store) string {
	session := c.GetHeader(cartSessionHeader)
	if session == "" {
		session = carts.NewSession()
	}
	return session
}

func getCartHandler(carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := cartSession(c, carts)
		lines, totals := carts.Snapshot(session)
		c.JSON(http.StatusOK, cartResponse{Session: session, Lines: lines, Totals: totals})
	}
}

func addCartItemHandler(carts *cart.Store, menu menuService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			MenuItemID string `json:"menuItemId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "menuItemId required"})
			return
		}
		restaurant := currentRestaurant(c)
		item, err := menu.Get(c.Request.Context(), restaurant.ID, in.MenuItemID)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		if !item.Available {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "item not available"})
			return
		}

		session := cartSession(c, carts)
		carts.Add(session, *item)
		lines, totals := carts.Snapshot(session)
		c.JSON(http.StatusOK, cartResponse{Session: session, Lines: lines, Totals: totals})
	}
}

func removeCartItemHandler(carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := cartSession(c, carts)
		carts.Remove(session, c.Param("itemID"))
		lines, totals := carts.Snapshot(session)
		c.JSON(http.StatusOK, cartResponse{Session: session, Lines: lines, Totals: totals})
	}
}

func clearCartHandler(carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := cartSession(c, carts)
		carts.Clear(session)
		c.JSON(http.StatusOK, cartResponse{Session: session, Lines: nil, Totals: cart.Totals{}})
	}
}
