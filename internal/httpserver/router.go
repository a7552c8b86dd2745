package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"tableserve/internal/cart"
	"tableserve/internal/domain"
	orderrepo "tableserve/internal/repository/order"
	adminsvc "tableserve/internal/service/admin"
	menusvc "tableserve/internal/service/menu"
	ordersvc "tableserve/internal/service/order"
	restaurantsvc "tableserve/internal/service/restaurant"
)

type restaurantResolver interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Restaurant, error)
}

type menuService interface {
	List(ctx context.Context, restaurantID, category string) ([]domain.MenuItem, error)
	Get(ctx context.Context, restaurantID, id string) (*domain.MenuItem, error)
	Create(ctx context.Context, restaurantID string, in menusvc.ItemInput) (*domain.MenuItem, error)
	Update(ctx context.Context, restaurantID, id string, in menusvc.ItemInput) (*domain.MenuItem, error)
	SetAvailability(ctx context.Context, restaurantID, id string, available bool) error
	Delete(ctx context.Context, restaurantID, id string) error
}

type orderService interface {
	Place(ctx context.Context, restaurantID string, in ordersvc.PlaceInput) (*domain.Order, error)
	Get(ctx context.Context, restaurantID, id string) (*domain.Order, error)
	List(ctx context.Context, restaurantID, status string) ([]domain.Order, error)
	Active() []domain.ActiveOrder
	UpdateStatus(ctx context.Context, restaurantID, id, status string) (*domain.Order, error)
	Revenue(ctx context.Context, restaurantID string, from, to time.Time) ([]orderrepo.RevenueBucket, error)
}

type profileService interface {
	UpdateProfile(ctx context.Context, restaurantID string, in restaurantsvc.ProfileInput) (*domain.Restaurant, error)
	ListTables(ctx context.Context, restaurantID string) ([]domain.Table, error)
	TableQR(ctx context.Context, restaurant *domain.Restaurant, tableID string) ([]byte, error)
}

type adminService interface {
	Provision(ctx context.Context, in adminsvc.ProvisionInput) (*domain.AdminUser, error)
}

// Deps collects everything the router needs.
type Deps struct {
	Restaurants   restaurantResolver
	Menu          menuService
	Orders        orderService
	Profile       profileService
	Admins        adminService
	Carts         *cart.Store
	SuperAdminKey string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.Carts == nil {
		return nil, errors.New("cart store required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", cartSessionHeader, superAdminHeader},
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/admin/accounts", superAdminMiddleware(deps.SuperAdminKey), provisionAdminHandler(deps.Admins))

	scoped := router.Group("/restaurants/:slug", restaurantMiddleware(deps.Restaurants))
	{
		scoped.GET("/profile", getProfileHandler)
		scoped.PUT("/profile", updateProfileHandler(deps.Profile))
		scoped.GET("/tables", listTablesHandler(deps.Profile))
		scoped.GET("/tables/:tableID/qr", tableQRHandler(deps.Profile))

		scoped.GET("/menu", listMenuHandler(deps.Menu))
		scoped.POST("/menu-items", createMenuItemHandler(deps.Menu))
		scoped.PUT("/menu-items/:itemID", updateMenuItemHandler(deps.Menu))
		scoped.PATCH("/menu-items/:itemID/availability", availabilityHandler(deps.Menu))
		scoped.DELETE("/menu-items/:itemID", deleteMenuItemHandler(deps.Menu))

		scoped.GET("/cart", getCartHandler(deps.Carts))
		scoped.POST("/cart/items", addCartItemHandler(deps.Carts, deps.Menu))
		scoped.DELETE("/cart/items/:itemID", removeCartItemHandler(deps.Carts))
		scoped.DELETE("/cart", clearCartHandler(deps.Carts))

		scoped.POST("/orders", placeOrderHandler(deps.Orders, deps.Carts))
		scoped.GET("/orders/active", activeOrdersHandler(deps.Orders))
		scoped.GET("/orders", listOrdersHandler(deps.Orders))
		scoped.GET("/orders/:orderID", getOrderHandler(deps.Orders))
		scoped.PATCH("/orders/:orderID/status", orderStatusHandler(deps.Orders))
		scoped.GET("/reports/revenue", revenueHandler(deps.Orders))
	}

	return router, nil
}

// writeServiceError maps service/repository errors onto HTTP statuses.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
