package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/example/storefront/internal/domain/order"
)

// MockOrderRepository is an in-memory order.Repository for testing
type MockOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*order.Order

	// For tracking calls in tests
	CreateCalls []*order.Order
	CreateErr   error
	GetErr      error
	ListErr     error
}

// NewMockOrderRepository creates a new MockOrderRepository
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders:      make(map[string]*order.Order),
		CreateCalls: make([]*order.Order, 0),
	}
}

// CreateOrder stores a copy of the order unless CreateErr is set
func (m *MockOrderRepository) CreateOrder(ctx context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, o)
	if m.CreateErr != nil {
		return m.CreateErr
	}

	stored := *o
	stored.Items = append([]order.Item(nil), o.Items...)
	m.orders[o.ID] = &stored
	return nil
}

func (m *MockOrderRepository) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetErr != nil {
		return nil, m.GetErr
	}
	o, ok := m.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

// ListOrders returns orders newest first
func (m *MockOrderRepository) ListOrders(ctx context.Context, limit int) ([]*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ListErr != nil {
		return nil, m.ListErr
	}
	all := make([]*order.Order, 0, len(m.orders))
	for _, o := range m.orders {
		all = append(all, o)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Orders returns every stored order
func (m *MockOrderRepository) Orders() []*order.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*order.Order, 0, len(m.orders))
	for _, o := range m.orders {
		all = append(all, o)
	}
	return all
}
