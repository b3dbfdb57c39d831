package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/i18n"
	"github.com/example/storefront/internal/infrastructure/store/mocks"
)

func newTestCatalog(t *testing.T) (*catalog.Service, *mocks.MockProductRepository) {
	t.Helper()
	repo := mocks.NewMockProductRepository()
	svc := catalog.NewService(repo)
	n, err := svc.SeedIfEmpty(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, n)
	return svc, repo
}

func TestSeedIfEmpty_OnlyOnce(t *testing.T) {
	svc, repo := newTestCatalog(t)

	n, err := svc.SeedIfEmpty(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, repo.InsertCalls, 4)
}

func TestLookup(t *testing.T) {
	svc, _ := newTestCatalog(t)
	ctx := context.Background()

	fr, err := svc.Lookup(ctx, 1, i18n.French)
	require.NoError(t, err)
	assert.Equal(t, "Pizza Margherita", fr.Name)
	assert.True(t, decimal.RequireFromString("15.00").Equal(fr.Price))
	assert.Equal(t, "pizza.png", fr.ImageRef)

	en, err := svc.Lookup(ctx, 1, i18n.English)
	require.NoError(t, err)
	assert.Equal(t, "Margherita Pizza", en.Name)

	_, err = svc.Lookup(ctx, 42, i18n.French)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestLookup_FallsBackToFrench(t *testing.T) {
	repo := mocks.NewMockProductRepository()
	repo.SetProduct(&catalog.Product{
		ID:    7,
		Names: map[i18n.Lang]string{i18n.French: "Tajine"},
		Price: decimal.RequireFromString("12.00"),
	})
	svc := catalog.NewService(repo)

	e, err := svc.Lookup(context.Background(), 7, i18n.Arabic)
	require.NoError(t, err)
	assert.Equal(t, "Tajine", e.Name)
	assert.Empty(t, e.Description)
}

func TestList(t *testing.T) {
	svc, _ := newTestCatalog(t)
	ctx := context.Background()

	all, err := svc.List(ctx, i18n.French, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, int64(1), all[0].ID)

	pizza, err := svc.List(ctx, i18n.English, "PIZZA")
	require.NoError(t, err)
	require.Len(t, pizza, 1)
	assert.Equal(t, "Margherita Pizza", pizza[0].Name)

	none, err := svc.List(ctx, i18n.French, "sushi")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestList_RepositoryError(t *testing.T) {
	repo := mocks.NewMockProductRepository()
	repo.ListErr = errors.New("connection reset")
	svc := catalog.NewService(repo)

	_, err := svc.List(context.Background(), i18n.French, "")
	assert.ErrorIs(t, err, repo.ListErr)
}

func TestCreate_Validation(t *testing.T) {
	svc := catalog.NewService(mocks.NewMockProductRepository())
	ctx := context.Background()

	_, err := svc.Create(ctx, &catalog.Product{Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, catalog.ErrInvalidName)

	_, err = svc.Create(ctx, &catalog.Product{
		Names: map[i18n.Lang]string{i18n.French: "Eau"},
		Price: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, catalog.ErrInvalidPrice)

	p, err := svc.Create(ctx, &catalog.Product{
		Names: map[i18n.Lang]string{i18n.French: "Eau"},
		Price: decimal.RequireFromString("1.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
}

func TestQuote(t *testing.T) {
	svc, repo := newTestCatalog(t)
	ctx := context.Background()

	lines := []cart.Line{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}
	q, err := svc.Quote(ctx, lines, i18n.English)
	require.NoError(t, err)
	require.Len(t, q.Lines, 2)
	assert.True(t, decimal.RequireFromString("38.50").Equal(q.Total))
	assert.Equal(t, 3, q.Count)
	assert.True(t, decimal.RequireFromString("30.00").Equal(q.Lines[0].Subtotal))
	assert.Equal(t, "Margherita Pizza", q.Lines[0].Name)

	repo.DeleteProduct(2)
	q, err = svc.Quote(ctx, lines, i18n.English)
	require.NoError(t, err)
	require.Len(t, q.Lines, 1)
	assert.True(t, decimal.RequireFromString("30.00").Equal(q.Total))
	assert.Equal(t, 2, q.Count)
}

func TestQuote_AllProductsGone(t *testing.T) {
	svc := catalog.NewService(mocks.NewMockProductRepository())

	q, err := svc.Quote(context.Background(), []cart.Line{{ProductID: 5, Quantity: 1}}, i18n.French)
	require.NoError(t, err)
	assert.True(t, q.IsEmpty())
	assert.True(t, q.Total.IsZero())
}
