package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/models"
)

func placeTestOrder(t *testing.T, h *AdminHandler) *models.Order {
	t.Helper()
	order := &models.Order{
		CustomerName:   "Ana Souza",
		Whatsapp:       "11999990000",
		PaymentMethod:  models.PaymentPix,
		Amount:         dec("120.00"),
		AmountOriginal: dec("120.00"),
		Status:         models.StatusAwaitingPayment,
	}
	items := []models.OrderItem{
		{ProductID: 1, ProductNameSnapshot: "Bolsa Floral", UnitPrice: dec("120.00"), Qty: 1},
	}
	require.NoError(t, h.Store.CreateOrder(order, items))
	return order
}

func postStatus(t *testing.T, h *AdminHandler, orderID int, status string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"status": {status}}
	r := httptest.NewRequest(http.MethodPost, "/admin/pedidos/"+strconv.Itoa(orderID)+"/status",
		strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.SetPathValue("id", strconv.Itoa(orderID))

	w := httptest.NewRecorder()
	h.UpdateOrderStatus(w, r)
	return w
}

func TestUpdateOrderStatusBlankIsNoOp(t *testing.T) {
	h := &AdminHandler{Base: newTestBase(t)}
	order := placeTestOrder(t, h)

	for _, blank := range []string{"", "   "} {
		w := postStatus(t, h, order.ID, blank)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/admin", w.Header().Get("Location"))

		got, err := h.Store.GetOrderByID(order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusAwaitingPayment, got.Status, "status %q", blank)
	}
}

func TestUpdateOrderStatusOverwrites(t *testing.T) {
	h := &AdminHandler{Base: newTestBase(t)}
	order := placeTestOrder(t, h)

	w := postStatus(t, h, order.ID, "Enviado")
	assert.Equal(t, http.StatusSeeOther, w.Code)

	got, err := h.Store.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Enviado", got.Status)
}
