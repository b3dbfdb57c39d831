package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/example/storefront/internal/domain/catalog"
)

// MockProductRepository is an in-memory catalog.Repository for testing
type MockProductRepository struct {
	mu       sync.RWMutex
	products map[int64]*catalog.Product
	nextID   int64

	// For tracking calls in tests
	GetCalls    []int64
	InsertCalls []*catalog.Product
	InsertErr   error
	ListErr     error
}

// NewMockProductRepository creates a new MockProductRepository
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[int64]*catalog.Product),
		nextID:   1,
	}
}

func (m *MockProductRepository) GetProduct(ctx context.Context, id int64) (*catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls = append(m.GetCalls, id)
	p, ok := m.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return p, nil
}

func (m *MockProductRepository) ListProducts(ctx context.Context) ([]*catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ListErr != nil {
		return nil, m.ListErr
	}
	all := make([]*catalog.Product, 0, len(m.products))
	for _, p := range m.products {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (m *MockProductRepository) CountProducts(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.products), nil
}

func (m *MockProductRepository) InsertProduct(ctx context.Context, p *catalog.Product) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InsertCalls = append(m.InsertCalls, p)
	if m.InsertErr != nil {
		return 0, m.InsertErr
	}
	id := m.nextID
	m.nextID++
	stored := *p
	stored.ID = id
	m.products[id] = &stored
	return id, nil
}

// SetProduct stores a product under its own ID for testing
func (m *MockProductRepository) SetProduct(p *catalog.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.products[p.ID] = p
	if p.ID >= m.nextID {
		m.nextID = p.ID + 1
	}
}

// DeleteProduct removes a product, simulating a catalog change mid-session
func (m *MockProductRepository) DeleteProduct(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
}
