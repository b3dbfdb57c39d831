package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/infrastructure/store/mocks"
)

var fixedNow = time.Date(2026, 5, 4, 18, 30, 0, 0, time.UTC)

func newTestService() (*order.Service, *mocks.MockOrderRepository) {
	repo := mocks.NewMockOrderRepository()
	svc := order.NewService(repo).WithClock(func() time.Time { return fixedNow })
	return svc, repo
}

func validForm() order.CheckoutForm {
	return order.CheckoutForm{
		Name:          "Amine",
		Address:       "12 Rue de Carthage",
		Phone:         "+216 20 000 000",
		Email:         "amine@example.com",
		PaymentMethod: "card",
		CardRef:       "4111111111111111",
	}
}

func testItems() []order.Item {
	return []order.Item{
		{ProductID: 1, Quantity: 1, Price: decimal.RequireFromString("15.00")},
		{ProductID: 2, Quantity: 2, Price: decimal.RequireFromString("7.50")},
	}
}

// ============================================
// Form Validation Tests
// ============================================

func TestCheckoutForm_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *order.CheckoutForm)
		field  string
	}{
		{"valid", func(f *order.CheckoutForm) {}, ""},
		{"missing name", func(f *order.CheckoutForm) { f.Name = "" }, "name"},
		{"blank address", func(f *order.CheckoutForm) { f.Address = "   " }, "address"},
		{"blank phone", func(f *order.CheckoutForm) { f.Phone = "\t" }, "phone"},
		{"missing payment method", func(f *order.CheckoutForm) { f.PaymentMethod = "" }, "payment_method"},
		{"unknown payment method", func(f *order.CheckoutForm) { f.PaymentMethod = "bitcoin" }, "payment_method"},
		{"email optional", func(f *order.CheckoutForm) { f.Email = "" }, ""},
		{"first missing field wins", func(f *order.CheckoutForm) { f.Name = ""; f.Phone = "" }, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			f.Normalize()

			err := f.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, order.ErrValidation)

			var verr *order.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCheckoutForm_NormalizeLowercasesMethod(t *testing.T) {
	f := validForm()
	f.PaymentMethod = "  CASH "
	f.Name = "  Amine  "
	f.Normalize()

	assert.Equal(t, "cash", f.PaymentMethod)
	assert.Equal(t, "Amine", f.Name)
	assert.Equal(t, order.PaymentCash, f.Method())
}

func TestValidationError_Message(t *testing.T) {
	assert.Equal(t, "missing required field: phone", (&order.ValidationError{Field: "phone"}).Error())
	assert.Contains(t, (&order.ValidationError{Field: "payment_method", Reason: "must be one of card, cash"}).Error(), "payment_method")
}

// ============================================
// Place Order Tests
// ============================================

func TestPlace_Success(t *testing.T) {
	svc, repo := newTestService()

	o, err := svc.Place(context.Background(), validForm(), testItems(), decimal.RequireFromString("30.00"))
	require.NoError(t, err)

	assert.NotEmpty(t, o.ID)
	assert.Equal(t, "Amine", o.CustomerName)
	assert.Equal(t, order.PaymentCard, o.PaymentMethod)
	assert.Equal(t, "4111111111111111", o.CardRef)
	assert.True(t, decimal.RequireFromString("30.00").Equal(o.Total))
	assert.Equal(t, fixedNow, o.CreatedAt)
	assert.Len(t, o.Items, 2)

	require.Len(t, repo.CreateCalls, 1)
	assert.Equal(t, o.ID, repo.CreateCalls[0].ID)
}

func TestPlace_CashDropsCardRef(t *testing.T) {
	svc, _ := newTestService()
	form := validForm()
	form.PaymentMethod = "cash"

	o, err := svc.Place(context.Background(), form, testItems(), decimal.RequireFromString("30.00"))
	require.NoError(t, err)

	assert.Equal(t, order.PaymentCash, o.PaymentMethod)
	assert.Empty(t, o.CardRef)
	assert.Empty(t, o.MaskedCardRef())
}

func TestPlace_ValidationFailureStoresNothing(t *testing.T) {
	svc, repo := newTestService()
	form := validForm()
	form.Phone = "   "

	_, err := svc.Place(context.Background(), form, testItems(), decimal.RequireFromString("30.00"))
	assert.ErrorIs(t, err, order.ErrValidation)
	assert.Empty(t, repo.CreateCalls)
}

func TestPlace_EmptyItems(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Place(context.Background(), validForm(), nil, decimal.Zero)
	assert.ErrorIs(t, err, order.ErrEmptyCart)
	assert.Empty(t, repo.CreateCalls)
}

func TestPlace_RepositoryFailure(t *testing.T) {
	svc, repo := newTestService()
	dbErr := errors.New("disk full")
	repo.CreateErr = dbErr

	_, err := svc.Place(context.Background(), validForm(), testItems(), decimal.RequireFromString("30.00"))
	assert.ErrorIs(t, err, order.ErrPersistence)
	assert.ErrorIs(t, err, dbErr)
}

func TestPlace_CopiesItems(t *testing.T) {
	svc, _ := newTestService()
	items := testItems()

	o, err := svc.Place(context.Background(), validForm(), items, decimal.RequireFromString("30.00"))
	require.NoError(t, err)

	items[0].Quantity = 99
	assert.Equal(t, 1, o.Items[0].Quantity)
}

// ============================================
// Get / List Tests
// ============================================

func TestGet(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	placed, err := svc.Place(ctx, validForm(), testItems(), decimal.RequireFromString("30.00"))
	require.NoError(t, err)

	got, err := svc.Get(ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)

	_, err = svc.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, order.ErrOrderNotFound)

	_, err = svc.Get(ctx, "3f9a8e1c-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestList_DefaultLimit(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Place(ctx, validForm(), testItems(), decimal.RequireFromString("30.00"))
		require.NoError(t, err)
	}

	orders, err := svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, orders, 3)
}

// ============================================
// Helpers Tests
// ============================================

func TestItemSubtotal(t *testing.T) {
	item := order.Item{ProductID: 2, Quantity: 3, Price: decimal.RequireFromString("8.50")}
	assert.True(t, decimal.RequireFromString("25.50").Equal(item.Subtotal()))
}

func TestMaskCardRef(t *testing.T) {
	assert.Equal(t, "************1111", order.MaskCardRef("4111111111111111"))
	assert.Equal(t, "1234", order.MaskCardRef("1234"))
	assert.Equal(t, "", order.MaskCardRef(""))
}

func TestPlacedEvent_OmitsCardData(t *testing.T) {
	svc, _ := newTestService()
	o, err := svc.Place(context.Background(), validForm(), testItems(), decimal.RequireFromString("30.00"))
	require.NoError(t, err)

	ev := order.PlacedEvent(o)
	assert.Equal(t, o.ID, ev.OrderID)
	assert.Equal(t, order.PaymentCard, ev.PaymentMethod)
	assert.Len(t, ev.Items, 2)
	assert.True(t, o.Total.Equal(ev.Total))
}
