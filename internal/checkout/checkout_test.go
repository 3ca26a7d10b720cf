package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/cart"
	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/models"
)

type fakeStore struct {
	products map[int]*models.Product

	createdOrder *models.Order
	createdItems []models.OrderItem
}

func (f *fakeStore) GetProductByID(id int) (*models.Product, error) {
	return f.products[id], nil
}

func (f *fakeStore) CreateOrder(order *models.Order, items []models.OrderItem) error {
	order.ID = 42
	f.createdOrder = order
	f.createdItems = items
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func product(id int, name, price string, active bool) *models.Product {
	return &models.Product{ID: id, Name: name, Price: dec(price), IsActive: active}
}

func TestResolveDropsStaleLines(t *testing.T) {
	store := &fakeStore{products: map[int]*models.Product{
		1: product(1, "Bolsa Floral", "120.00", true),
		2: product(2, "Bolsa Lua", "89.90", false), // inactive
	}}
	c := cart.Cart{"1": 2, "2": 1, "77": 3, "oops": 1}

	lines, total, err := Resolve(store, c)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Product.ID)
	assert.Equal(t, 2, lines[0].Qty)
	assert.True(t, dec("240.00").Equal(lines[0].Subtotal))
	assert.True(t, dec("240.00").Equal(total))
}

func TestResolveIsIdempotent(t *testing.T) {
	store := &fakeStore{products: map[int]*models.Product{
		1: product(1, "Bolsa Floral", "33.33", true),
	}}
	c := cart.Cart{"1": 3}

	_, first, err := Resolve(store, c)
	require.NoError(t, err)
	_, second, err := Resolve(store, c)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	store := &fakeStore{products: map[int]*models.Product{}}
	svc := &Service{Store: store, DiscountPercent: 10}

	_, err := svc.PlaceOrder(cart.New(), OrderInput{CustomerName: "Ana", Whatsapp: "11999990000"})
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Nil(t, store.createdOrder)
}

func TestPlaceOrderCartOfInactiveProducts(t *testing.T) {
	store := &fakeStore{products: map[int]*models.Product{
		5: product(5, "Bolsa Sol", "50.00", false),
	}}
	svc := &Service{Store: store}

	_, err := svc.PlaceOrder(cart.Cart{"5": 1}, OrderInput{CustomerName: "Ana", Whatsapp: "11999990000"})
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Nil(t, store.createdOrder)
}

func TestPlaceOrderRequiresNameAndWhatsapp(t *testing.T) {
	store := &fakeStore{products: map[int]*models.Product{
		1: product(1, "Bolsa Floral", "120.00", true),
	}}
	svc := &Service{Store: store}
	c := cart.Cart{"1": 1}

	for _, in := range []OrderInput{
		{CustomerName: "", Whatsapp: "11999990000"},
		{CustomerName: "   ", Whatsapp: "11999990000"},
		{CustomerName: "Ana", Whatsapp: ""},
	} {
		_, err := svc.PlaceOrder(c, in)
		var verr ValidationError
		require.ErrorAs(t, err, &verr)
	}
	assert.Nil(t, store.createdOrder)
}

func TestPlaceOrderPixDiscount(t *testing.T) {
	store := &fakeStore{products: map[int]*models.Product{
		1: product(1, "Bolsa Floral", "120.00", true),
	}}
	svc := &Service{Store: store, DiscountPercent: 10}

	order, err := svc.PlaceOrder(cart.Cart{"1": 2}, OrderInput{
		CustomerName:  "Ana Souza",
		Whatsapp:      "11999990000",
		PaymentMethod: models.PaymentPix,
	})
	require.NoError(t, err)

	assert.Equal(t, 42, order.ID)
	assert.True(t, dec("216.00").Equal(order.Amount), "got %s", order.Amount)
	assert.True(t, dec("240.00").Equal(order.AmountOriginal))
	assert.Equal(t, models.StatusAwaitingPayment, order.Status)

	require.Len(t, store.createdItems, 1)
	item := store.createdItems[0]
	assert.Equal(t, 1, item.ProductID)
	assert.Equal(t, "Bolsa Floral", item.ProductNameSnapshot)
	assert.True(t, dec("120.00").Equal(item.UnitPrice))
	assert.Equal(t, 2, item.Qty)
}

func TestPlaceOrderCardSkipsDiscount(t *testing.T) {
	store := &fakeStore{products: map[int]*models.Product{
		1: product(1, "Bolsa Floral", "120.00", true),
	}}
	svc := &Service{Store: store, DiscountPercent: 10}

	order, err := svc.PlaceOrder(cart.Cart{"1": 2}, OrderInput{
		CustomerName:  "Ana",
		Whatsapp:      "11999990000",
		PaymentMethod: models.PaymentCard,
	})
	require.NoError(t, err)
	assert.True(t, dec("240.00").Equal(order.Amount))
	assert.True(t, dec("240.00").Equal(order.AmountOriginal))
}

func TestPlaceOrderInvalidMethodDefaultsToPix(t *testing.T) {
	store := &fakeStore{products: map[int]*models.Product{
		1: product(1, "Bolsa Floral", "100.00", true),
	}}
	svc := &Service{Store: store, DiscountPercent: 10}

	order, err := svc.PlaceOrder(cart.Cart{"1": 1}, OrderInput{
		CustomerName:  "Ana",
		Whatsapp:      "11999990000",
		PaymentMethod: "boleto",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPix, order.PaymentMethod)
	assert.True(t, dec("90.00").Equal(order.Amount))
}
