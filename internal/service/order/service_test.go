package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableserve/internal/domain"
	"tableserve/internal/events"
	orderrepo "tableserve/internal/repository/order"
)

type stubOrderRepo struct {
	created    *domain.Order
	createErr  error
	lastCreate domain.Order
	getOrder   *domain.Order
	getErr     error
	statusErr  error
	lastStatus string
	buckets    []orderrepo.RevenueBucket
	lastFrom   time.Time
	lastTo     time.Time
}

func (s *stubOrderRepo) Create(_ context.Context, o domain.Order) (*domain.Order, error) {
	s.lastCreate = o
	return s.created, s.createErr
}

func (s *stubOrderRepo) GetByID(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.getOrder, s.getErr
}

func (s *stubOrderRepo) ListByRestaurant(_ context.Context, _, _ string) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) SetStatus(_ context.Context, _, _, status string) error {
	if s.statusErr != nil {
		return s.statusErr
	}
	s.lastStatus = status
	return nil
}

func (s *stubOrderRepo) RevenueByDay(_ context.Context, _ string, from, to time.Time) ([]orderrepo.RevenueBucket, error) {
	s.lastFrom, s.lastTo = from, to
	return s.buckets, nil
}

type stubMenuRepo struct {
	items map[string]*domain.MenuItem
}

func (s *stubMenuRepo) GetByID(_ context.Context, _, id string) (*domain.MenuItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

type stubTracker struct {
	tracked []domain.ActiveOrder
	removed []string
}

func (s *stubTracker) Track(_ context.Context, o domain.ActiveOrder) { s.tracked = append(s.tracked, o) }
func (s *stubTracker) Remove(_ context.Context, id string)           { s.removed = append(s.removed, id) }
func (s *stubTracker) Active() []domain.ActiveOrder                  { return s.tracked }

type capturePublisher struct {
	events []events.OrderEvent
	err    error
}

func (p *capturePublisher) PublishOrderEvent(_ context.Context, ev events.OrderEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

func testMenu() *stubMenuRepo {
	return &stubMenuRepo{items: map[string]*domain.MenuItem{
		"burger": {ID: "burger", Name: "Burger", PriceCents: 100, Available: true},
		"fries":  {ID: "fries", Name: "Fries", PriceCents: 50, Available: true},
		"soup":   {ID: "soup", Name: "Soup", PriceCents: 70, Available: false},
	}}
}

func TestPlace_SnapshotsPricesAndTotals(t *testing.T) {
	repo := &stubOrderRepo{created: &domain.Order{ID: "o1", Status: domain.OrderPending, TotalCents: 250}}
	tr := &stubTracker{}
	pub := &capturePublisher{}
	svc := New(repo, testMenu(), tr, pub, nil)
	svc.now = func() time.Time { return time.UnixMilli(1_000_000) }

	created, err := svc.Place(context.Background(), "r1", PlaceInput{
		CustomerName: "Ada",
		Items: []PlaceItem{
			{MenuItemID: "burger", Quantity: 2},
			{MenuItemID: "fries", Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "o1", created.ID)

	assert.Equal(t, int64(250), repo.lastCreate.TotalCents)
	require.Len(t, repo.lastCreate.Items, 2)
	assert.Equal(t, "Burger", repo.lastCreate.Items[0].Name)
	assert.Equal(t, int64(100), repo.lastCreate.Items[0].UnitPriceCents)
	assert.Equal(t, "dine-in", repo.lastCreate.OrderType)

	require.Len(t, tr.tracked, 1)
	assert.Equal(t, "o1", tr.tracked[0].ID)
	assert.Equal(t, int64(1_000_000), tr.tracked[0].CreatedAt)

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.OrderPlaced, pub.events[0].Type)
}

func TestPlace_ValidationFailuresTouchNothing(t *testing.T) {
	cases := []struct {
		name string
		in   PlaceInput
	}{
		{"missing name", PlaceInput{Items: []PlaceItem{{MenuItemID: "burger", Quantity: 1}}}},
		{"no items", PlaceInput{CustomerName: "Ada"}},
		{"zero quantity", PlaceInput{CustomerName: "Ada", Items: []PlaceItem{{MenuItemID: "burger", Quantity: 0}}}},
		{"unknown item", PlaceInput{CustomerName: "Ada", Items: []PlaceItem{{MenuItemID: "nope", Quantity: 1}}}},
		{"unavailable item", PlaceInput{CustomerName: "Ada", Items: []PlaceItem{{MenuItemID: "soup", Quantity: 1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubOrderRepo{created: &domain.Order{ID: "o1"}}
			tr := &stubTracker{}
			pub := &capturePublisher{}
			svc := New(repo, testMenu(), tr, pub, nil)

			_, err := svc.Place(context.Background(), "r1", tc.in)
			require.Error(t, err)
			assert.Empty(t, tr.tracked)
			assert.Empty(t, pub.events)
		})
	}
}

func TestPlace_RepoFailureDoesNotTrack(t *testing.T) {
	repo := &stubOrderRepo{createErr: errors.New("db down")}
	tr := &stubTracker{}
	pub := &capturePublisher{}
	svc := New(repo, testMenu(), tr, pub, nil)

	_, err := svc.Place(context.Background(), "r1", PlaceInput{
		CustomerName: "Ada",
		Items:        []PlaceItem{{MenuItemID: "burger", Quantity: 1}},
	})
	require.Error(t, err)
	assert.Empty(t, tr.tracked)
	assert.Empty(t, pub.events)
}

func TestPlace_PublishFailureIsNonFatal(t *testing.T) {
	repo := &stubOrderRepo{created: &domain.Order{ID: "o1", Status: domain.OrderPending}}
	pub := &capturePublisher{err: errors.New("broker down")}
	svc := New(repo, testMenu(), &stubTracker{}, pub, nil)

	_, err := svc.Place(context.Background(), "r1", PlaceInput{
		CustomerName: "Ada",
		Items:        []PlaceItem{{MenuItemID: "burger", Quantity: 1}},
	})
	require.NoError(t, err)
}

func TestUpdateStatus_ValidTransition(t *testing.T) {
	repo := &stubOrderRepo{getOrder: &domain.Order{ID: "o1", Status: domain.OrderPending}}
	tr := &stubTracker{}
	pub := &capturePublisher{}
	svc := New(repo, testMenu(), tr, pub, nil)

	updated, err := svc.UpdateStatus(context.Background(), "r1", "o1", domain.OrderPreparing)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPreparing, updated.Status)
	assert.Empty(t, tr.removed, "non-terminal status keeps the order active")
	require.Len(t, pub.events, 1)
	assert.Equal(t, events.OrderStatusChanged, pub.events[0].Type)
}

func TestUpdateStatus_TerminalStatusLeavesActiveWindow(t *testing.T) {
	repo := &stubOrderRepo{getOrder: &domain.Order{ID: "o1", Status: domain.OrderPending}}
	tr := &stubTracker{}
	svc := New(repo, testMenu(), tr, &capturePublisher{}, nil)

	_, err := svc.UpdateStatus(context.Background(), "r1", "o1", domain.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, []string{"o1"}, tr.removed)
}

func TestUpdateStatus_InvalidTransitionRejected(t *testing.T) {
	repo := &stubOrderRepo{getOrder: &domain.Order{ID: "o1", Status: domain.OrderCompleted}}
	svc := New(repo, testMenu(), &stubTracker{}, &capturePublisher{}, nil)

	_, err := svc.UpdateStatus(context.Background(), "r1", "o1", domain.OrderPreparing)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Empty(t, repo.lastStatus)
}

func TestRevenue_DefaultsToTrailingWeek(t *testing.T) {
	repo := &stubOrderRepo{buckets: []orderrepo.RevenueBucket{{OrderCount: 1, TotalCents: 400}}}
	svc := New(repo, testMenu(), &stubTracker{}, &capturePublisher{}, nil)
	svc.now = func() time.Time { return time.Date(2026, time.March, 14, 15, 0, 0, 0, time.UTC) }

	buckets, err := svc.Revenue(context.Background(), "r1", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), repo.lastTo)
	assert.Equal(t, time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC), repo.lastFrom)
}

func TestRevenue_RejectsInvertedRange(t *testing.T) {
	svc := New(&stubOrderRepo{}, testMenu(), &stubTracker{}, &capturePublisher{}, nil)

	from := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	_, err := svc.Revenue(context.Background(), "r1", from, from.AddDate(0, 0, -1))
	require.Error(t, err)
}
