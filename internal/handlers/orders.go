package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/cart"
	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/checkout"
	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/config"
	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/models"
	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/pricing"
)

// OrderHandler runs the checkout flow: review, order creation, confirmation.
type OrderHandler struct {
	*Base
	Checkout *checkout.Service
}

func (h *OrderHandler) CheckoutForm(w http.ResponseWriter, r *http.Request) {
	c := h.Carts.Load(r)
	lines, total, err := checkout.Resolve(h.Store, c)
	if err != nil {
		http.Error(w, "Error loading cart", http.StatusInternalServerError)
		return
	}
	if len(lines) == 0 {
		h.flash(w, r, "warning", "Seu carrinho está vazio.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := h.page(r)
	data["Lines"] = lines
	data["Total"] = total
	data["TotalPix"] = pricing.WithDiscount(total, h.Cfg.PixDiscountPercent)
	data["PixKey"] = h.Cfg.PixKey
	data["PixReceiver"] = h.Cfg.PixReceiverName
	data["PaymentLink"] = h.Cfg.PaymentLink
	data["Flashes"] = h.popFlashes(w, r)
	h.render(w, "checkout.html", data)
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	c := h.Carts.Load(r)
	order, err := h.Checkout.PlaceOrder(c, checkout.OrderInput{
		CustomerName:  r.FormValue("customer_name"),
		Whatsapp:      r.FormValue("whatsapp"),
		CityState:     r.FormValue("city_state"),
		Address:       r.FormValue("address"),
		Notes:         r.FormValue("notes"),
		PaymentMethod: r.FormValue("payment_method"),
	})
	if err != nil {
		var verr checkout.ValidationError
		if errors.As(err, &verr) {
			h.flash(w, r, "danger", verr.Msg)
			if errors.Is(err, checkout.ErrEmptyCart) {
				http.Redirect(w, r, "/", http.StatusSeeOther)
			} else {
				http.Redirect(w, r, "/checkout", http.StatusSeeOther)
			}
			return
		}
		http.Error(w, "Failed to place order", http.StatusInternalServerError)
		return
	}

	// The order is durable; an error clearing the cart should not lose it.
	if err := h.Carts.Save(r, w, cart.New()); err != nil {
		h.flash(w, r, "warning", "Pedido criado, mas o carrinho não pôde ser limpo.")
	}

	http.Redirect(w, r, fmt.Sprintf("/pedido/%d/sucesso", order.ID), http.StatusSeeOther)
}

func (h *OrderHandler) OrderSuccess(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	order, err := h.Store.GetOrderByID(id)
	if err != nil {
		http.Error(w, "Error fetching order", http.StatusInternalServerError)
		return
	}
	if order == nil {
		http.NotFound(w, r)
		return
	}

	items, err := h.Store.GetOrderItems(order.ID)
	if err != nil {
		http.Error(w, "Error fetching order items", http.StatusInternalServerError)
		return
	}

	data := h.page(r)
	data["Order"] = order
	data["Items"] = items
	data["PixKey"] = h.Cfg.PixKey
	data["PixReceiver"] = h.Cfg.PixReceiverName
	data["PaymentLink"] = h.Cfg.PaymentLink
	data["WhatsappMessage"] = ComposeOrderMessage(h.Cfg, order, items)
	data["Flashes"] = h.popFlashes(w, r)
	h.render(w, "order_success.html", data)
}

// ComposeOrderMessage builds the plain-text order summary the customer
// sends to the store over WhatsApp.
func ComposeOrderMessage(cfg *config.Config, order *models.Order, items []models.OrderItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Olá! Fiz um pedido na loja %s.\n", cfg.StoreName)
	fmt.Fprintf(&b, "Pedido: #%d\n", order.ID)
	for _, it := range items {
		fmt.Fprintf(&b, "- %dx %s (R$ %s)\n", it.Qty, it.ProductNameSnapshot, it.UnitPrice.StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: R$ %s\n", order.Amount.StringFixed(2))
	if order.PaymentMethod == models.PaymentPix {
		b.WriteString("Pagamento: Pix\n")
		fmt.Fprintf(&b, "Chave Pix: %s", cfg.PixKey)
	} else {
		b.WriteString("Pagamento: Cartão")
	}
	return b.String()
}
