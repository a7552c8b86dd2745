package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tableserve/internal/cart"
	ordersvc "tableserve/internal/service/order"
)

func placeOrderHandler(orders orderService, carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in ordersvc.PlaceInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		// Callers may omit items and submit whatever is in their cart
		// session instead.
		session := c.GetHeader(cartSessionHeader)
		if len(in.Items) == 0 && session != "" {
			lines, _ := carts.Snapshot(session)
			for _, line := range lines {
				in.Items = append(in.Items, ordersvc.PlaceItem{
					MenuItemID: line.Item.ID,
					Quantity:   line.Quantity,
				})
			}
		}

		restaurant := currentRestaurant(c)
		created, err := orders.Place(c.Request.Context(), restaurant.ID, in)
		if err != nil {
			// Failed submission keeps the cart intact for a retry.
			writeServiceError(c, err)
			return
		}
		if session != "" {
			carts.Clear(session)
		}
		c.JSON(http.StatusCreated, gin.H{"orderId": created.ID, "order": created})
	}
}

func activeOrdersHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"orders": orders.Active()})
	}
}

func listOrdersHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurant := currentRestaurant(c)
		result, err := orders.List(c.Request.Context(), restaurant.ID, c.Query("status"))
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": result})
	}
}

func getOrderHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurant := currentRestaurant(c)
		order, err := orders.Get(c.Request.Context(), restaurant.ID, c.Param("orderID"))
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func orderStatusHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status required"})
			return
		}
		restaurant := currentRestaurant(c)
		updated, err := orders.UpdateStatus(c.Request.Context(), restaurant.ID, c.Param("orderID"), in.Status)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func revenueHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		from, ok := parseDay(c, c.Query("from"))
		if !ok {
			return
		}
		to, ok := parseDay(c, c.Query("to"))
		if !ok {
			return
		}

		restaurant := currentRestaurant(c)
		buckets, err := orders.Revenue(c.Request.Context(), restaurant.ID, from, to)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"buckets": buckets})
	}
}

// parseDay accepts an empty value (zero time) or a YYYY-MM-DD day.
func parseDay(c *gin.Context, value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true
	}
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return day, true
}
