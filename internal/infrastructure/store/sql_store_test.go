package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/i18n"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, "sqlite://"+filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(db))
	return db
}

func seedProducts(t *testing.T, db *DB) []int64 {
	t.Helper()
	repo := NewProductRepository(db)
	var ids []int64
	for _, p := range catalog.SampleProducts() {
		id, err := repo.InsertProduct(context.Background(), p)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func newTestOrder(id string, createdAt time.Time, items ...order.Item) *order.Order {
	return &order.Order{
		ID:            id,
		CustomerName:  "Amine",
		Address:       "12 Rue de Carthage, Tunis",
		Phone:         "+216 20 000 000",
		Email:         "amine@example.com",
		PaymentMethod: order.PaymentCard,
		CardRef:       "4111111111111111",
		Total:         decimal.RequireFromString("30.00"),
		CreatedAt:     createdAt,
		Items:         items,
	}
}

// ============================================
// Open / Migrate Tests
// ============================================

func TestOpen_UnsupportedURL(t *testing.T) {
	_, err := Open(context.Background(), "mysql://localhost/shop")
	assert.ErrorIs(t, err, ErrUnsupportedURL)
}

func TestOpen_SQLiteDialect(t *testing.T) {
	db := newTestDB(t)
	assert.Equal(t, SQLite, db.Dialect())
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"plain path", "data.db", "data.db?" + sqlitePragmas},
		{"existing query", "data.db?mode=rwc", "data.db?mode=rwc&" + sqlitePragmas},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sqliteDSN(tt.path))
		})
	}
}

func TestOpen_SQLiteURLWithQuery(t *testing.T) {
	db, err := Open(context.Background(), "sqlite://"+filepath.Join(t.TempDir(), "query.db")+"?mode=rwc")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var foreignKeys int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys))
	assert.Equal(t, 1, foreignKeys)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, Migrate(db))
}

func TestRebind(t *testing.T) {
	pg := &DB{dialect: Postgres}
	lite := &DB{dialect: SQLite}
	query := `SELECT * FROM orders WHERE id = ? AND total > ?`

	assert.Equal(t, `SELECT * FROM orders WHERE id = $1 AND total > $2`, pg.rebind(query))
	assert.Equal(t, query, lite.rebind(query))
}

// ============================================
// Product Repository Tests
// ============================================

func TestProductRepository_InsertAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	ids := seedProducts(t, db)
	require.Len(t, ids, 4)

	p, err := repo.GetProduct(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, ids[0], p.ID)
	assert.Equal(t, "Margherita Pizza", p.Name(i18n.English))
	assert.True(t, decimal.RequireFromString("15.00").Equal(p.Price))
	assert.Equal(t, "pizza.png", p.ImageFilename)
}

func TestProductRepository_GetUnknown(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)

	_, err := repo.GetProduct(context.Background(), 999)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestProductRepository_ListAndCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	n, err := repo.CountProducts(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	ids := seedProducts(t, db)

	n, err = repo.CountProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(ids), n)

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, len(ids))
	for i, p := range products {
		assert.Equal(t, ids[i], p.ID)
	}
}

// ============================================
// Order Repository Tests
// ============================================

func TestOrderRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ids := seedProducts(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	createdAt := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	o := newTestOrder("0b5c3d52-8f0e-4c4e-9a57-2f2b8c1d9e01", createdAt,
		order.Item{ProductID: ids[0], Quantity: 1, Price: decimal.RequireFromString("15.00")},
		order.Item{ProductID: ids[1], Quantity: 2, Price: decimal.RequireFromString("7.50")},
	)
	require.NoError(t, repo.CreateOrder(ctx, o))

	got, err := repo.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.CustomerName, got.CustomerName)
	assert.Equal(t, o.Address, got.Address)
	assert.Equal(t, order.PaymentCard, got.PaymentMethod)
	assert.Equal(t, o.CardRef, got.CardRef)
	assert.True(t, o.Total.Equal(got.Total))
	assert.True(t, createdAt.Equal(got.CreatedAt))
	require.Len(t, got.Items, 2)
	assert.Equal(t, ids[0], got.Items[0].ProductID)
	assert.Equal(t, 2, got.Items[1].Quantity)
	assert.True(t, decimal.RequireFromString("7.50").Equal(got.Items[1].Price))
}

func TestOrderRepository_GetUnknown(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	_, err := repo.GetOrder(context.Background(), "7c0d0f43-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestOrderRepository_RollsBackOnItemFailure(t *testing.T) {
	db := newTestDB(t)
	ids := seedProducts(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	o := newTestOrder("5a1e2b9c-1111-4222-8333-444455556666", time.Now().UTC(),
		order.Item{ProductID: ids[0], Quantity: 1, Price: decimal.RequireFromString("15.00")},
		order.Item{ProductID: 9999, Quantity: 1, Price: decimal.RequireFromString("1.00")},
	)
	err := repo.CreateOrder(ctx, o)
	require.Error(t, err)

	_, err = repo.GetOrder(ctx, o.ID)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)

	var items int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM order_items`).Scan(&items))
	assert.Zero(t, items)
}

func TestOrderRepository_ListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ids := seedProducts(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	orderIDs := []string{
		"00000000-0000-4000-8000-000000000001",
		"00000000-0000-4000-8000-000000000002",
		"00000000-0000-4000-8000-000000000003",
	}
	for i, id := range orderIDs {
		o := newTestOrder(id, base.Add(time.Duration(i)*time.Hour),
			order.Item{ProductID: ids[i], Quantity: i + 1, Price: decimal.RequireFromString("5.00")})
		require.NoError(t, repo.CreateOrder(ctx, o))
	}

	orders, err := repo.ListOrders(ctx, 2)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, orderIDs[2], orders[0].ID)
	assert.Equal(t, orderIDs[1], orders[1].ID)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, 3, orders[0].Items[0].Quantity)
}
