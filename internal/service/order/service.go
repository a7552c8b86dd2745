package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"tableserve/internal/domain"
	"tableserve/internal/events"
	orderrepo "tableserve/internal/repository/order"
)

type orderRepo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, restaurantID, id string) (*domain.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID, status string) ([]domain.Order, error)
	SetStatus(ctx context.Context, restaurantID, id, status string) error
	RevenueByDay(ctx context.Context, restaurantID string, from, to time.Time) ([]orderrepo.RevenueBucket, error)
}

type menuRepo interface {
	GetByID(ctx context.Context, restaurantID, id string) (*domain.MenuItem, error)
}

// tracker is the customer-facing active-order window. Track registers a
// placed order; Remove silently drops one that reached a terminal
// status before its window elapsed.
type tracker interface {
	Track(ctx context.Context, order domain.ActiveOrder)
	Remove(ctx context.Context, orderID string)
	Active() []domain.ActiveOrder
}

type Service struct {
	repo      orderRepo
	menuRepo  menuRepo
	tracker   tracker
	publisher events.Publisher
	logger    *log.Logger
	now       func() time.Time
}

func New(repo orderrepo.Repository, menuRepo menuRepo, tr tracker, publisher events.Publisher, logger *log.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		repo:      repo,
		menuRepo:  menuRepo,
		tracker:   tr,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

type PlaceItem struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

type PlaceInput struct {
	CustomerName  string      `json:"customerName"`
	CustomerPhone string      `json:"customerPhone"`
	TableID       string      `json:"tableId"`
	OrderType     string      `json:"orderType"`
	Items         []PlaceItem `json:"items"`
}

// Place validates the submission, snapshots current menu prices, and
// persists the order. The active-order window and the event stream are
// only touched after the write succeeds; on any failure the caller's
// cart stays intact and nothing is registered.
func (s *Service) Place(ctx context.Context, restaurantID string, in PlaceInput) (*domain.Order, error) {
	if strings.TrimSpace(in.CustomerName) == "" {
		return nil, errors.New("customerName required")
	}
	if len(in.Items) == 0 {
		return nil, errors.New("items required")
	}
	orderType := strings.TrimSpace(in.OrderType)
	if orderType == "" {
		orderType = "dine-in"
	}

	var (
		items []domain.OrderItem
		total int64
	)
	for _, line := range in.Items {
		if line.Quantity <= 0 {
			return nil, errors.New("quantity must be positive")
		}
		item, err := s.menuRepo.GetByID(ctx, restaurantID, line.MenuItemID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("menu item %s not found", line.MenuItemID)
			}
			return nil, err
		}
		if !item.Available {
			return nil, fmt.Errorf("menu item %s is not available", item.Name)
		}
		items = append(items, domain.OrderItem{
			MenuItemID:     item.ID,
			Name:           item.Name,
			Quantity:       line.Quantity,
			UnitPriceCents: item.PriceCents,
		})
		total += item.PriceCents * int64(line.Quantity)
	}

	created, err := s.repo.Create(ctx, domain.Order{
		RestaurantID:  restaurantID,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		TableID:       strings.TrimSpace(in.TableID),
		OrderType:     orderType,
		TotalCents:    total,
		Items:         items,
	})
	if err != nil {
		return nil, err
	}

	if s.tracker != nil {
		s.tracker.Track(ctx, activeOrderFrom(created, s.now()))
	}
	s.publish(ctx, events.OrderEvent{
		Type:         events.OrderPlaced,
		RestaurantID: restaurantID,
		OrderID:      created.ID,
		Status:       created.Status,
		TotalCents:   created.TotalCents,
		OccurredAt:   s.now(),
	})
	return created, nil
}

func (s *Service) Get(ctx context.Context, restaurantID, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, restaurantID, id)
}

func (s *Service) List(ctx context.Context, restaurantID, status string) ([]domain.Order, error) {
	return s.repo.ListByRestaurant(ctx, restaurantID, strings.TrimSpace(status))
}

// Active returns the orders still inside their display window.
func (s *Service) Active() []domain.ActiveOrder {
	if s.tracker == nil {
		return nil
	}
	return s.tracker.Active()
}

// UpdateStatus applies a staff status change. Completing or cancelling
// an order also removes it from the active-order window, silently.
func (s *Service) UpdateStatus(ctx context.Context, restaurantID, id, status string) (*domain.Order, error) {
	current, err := s.repo.GetByID(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(current.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current.Status, status)
	}
	if err := s.repo.SetStatus(ctx, restaurantID, id, status); err != nil {
		return nil, err
	}
	if s.tracker != nil && domain.TerminalStatus(status) {
		s.tracker.Remove(ctx, id)
	}
	s.publish(ctx, events.OrderEvent{
		Type:         events.OrderStatusChanged,
		RestaurantID: restaurantID,
		OrderID:      id,
		Status:       status,
		OccurredAt:   s.now(),
	})
	current.Status = status
	return current, nil
}

// Revenue buckets completed orders per day over [from, to). A zero
// range defaults to the trailing seven days.
func (s *Service) Revenue(ctx context.Context, restaurantID string, from, to time.Time) ([]orderrepo.RevenueBucket, error) {
	if from.IsZero() || to.IsZero() {
		now := s.now().UTC()
		to = now.Truncate(24 * time.Hour).AddDate(0, 0, 1)
		from = to.AddDate(0, 0, -7)
	}
	if !from.Before(to) {
		return nil, errors.New("from must be before to")
	}
	return s.repo.RevenueByDay(ctx, restaurantID, from, to)
}

func (s *Service) publish(ctx context.Context, ev events.OrderEvent) {
	if err := s.publisher.PublishOrderEvent(ctx, ev); err != nil {
		s.logger.Printf("order service: publish %s order_id=%s failed: %v", ev.Type, ev.OrderID, err)
	}
}

func activeOrderFrom(o *domain.Order, now time.Time) domain.ActiveOrder {
	items := make([]domain.ActiveOrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, domain.ActiveOrderItem{
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}
	return domain.ActiveOrder{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		TableID:       o.TableID,
		Items:         items,
		TotalCents:    o.TotalCents,
		CreatedAt:     now.UnixMilli(),
	}
}
