package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"tableserve/internal/activeorder"
	"tableserve/internal/cart"
	"tableserve/internal/config"
	"tableserve/internal/db"
	"tableserve/internal/domain"
	"tableserve/internal/events"
	"tableserve/internal/httpserver"
	adminrepo "tableserve/internal/repository/admin"
	menurepo "tableserve/internal/repository/menuitem"
	orderrepo "tableserve/internal/repository/order"
	restaurantrepo "tableserve/internal/repository/restaurant"
	adminsvc "tableserve/internal/service/admin"
	menusvc "tableserve/internal/service/menu"
	ordersvc "tableserve/internal/service/order"
	restaurantsvc "tableserve/internal/service/restaurant"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaPub.Close()
		publisher = kafkaPub
		logger.Printf("publishing order events to topic %s", cfg.KafkaTopic)
	}

	var activeStore activeorder.Store = activeorder.NewMemoryStore()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		activeStore = activeorder.NewRedisStore(rdb, cfg.ActiveOrderKey)
		logger.Printf("persisting active orders in redis at %s", cfg.RedisAddr)
	}

	tracker := activeorder.New(activeStore, cfg.ActiveOrderTTL, func(order domain.ActiveOrder) {
		logger.Printf("order %s left the active window", order.ID)
		ev := events.OrderEvent{
			Type:       events.OrderExpired,
			OrderID:    order.ID,
			TotalCents: order.TotalCents,
			OccurredAt: time.Now().UTC(),
		}
		if err := publisher.PublishOrderEvent(context.Background(), ev); err != nil {
			logger.Printf("publish expiry for %s: %v", order.ID, err)
		}
	}, logger)
	tracker.Reconcile(ctx)
	defer tracker.Close()

	menuRepo := menurepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	restRepo := restaurantrepo.NewPostgres(dbpool, logger)
	adRepo := adminrepo.NewPostgres(dbpool, logger)

	menuService := menusvc.New(menuRepo)
	orderService := ordersvc.New(orderRepo, menuRepo, tracker, publisher, logger)
	restaurantService := restaurantsvc.New(restRepo, cfg.PublicURLHost)
	adminService := adminsvc.New(adRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Restaurants:   restRepo,
		Menu:          menuService,
		Orders:        orderService,
		Profile:       restaurantService,
		Admins:        adminService,
		Carts:         cart.NewStore(),
		SuperAdminKey: cfg.SuperAdminKey,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
