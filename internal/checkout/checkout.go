// Package checkout turns a visitor's cart into a persisted order. It is the
// only place that creates customer-facing financial records.
package checkout

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/cart"
	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/models"
	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/pricing"
)

// ValidationError marks bad or missing user input. Handlers send the user
// back to the originating form with the message; nothing was mutated.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string {
	return e.Msg
}

// ErrEmptyCart is returned when no cart line survives catalog resolution.
var ErrEmptyCart = ValidationError{Msg: "Carrinho vazio."}

// Catalog is the read side checkout needs: product lookup returning
// (nil, nil) for missing ids.
type Catalog interface {
	GetProductByID(id int) (*models.Product, error)
}

// Store is the full dependency of the order materializer.
type Store interface {
	Catalog
	CreateOrder(order *models.Order, items []models.OrderItem) error
}

// Line is one surviving cart entry resolved against the live catalog.
type Line struct {
	Product  models.Product
	Qty      int
	Subtotal decimal.Decimal
}

// Resolve maps the cart onto the current catalog, silently dropping lines
// whose product no longer exists or is inactive. The total is the sum of the
// per-line subtotals, each already rounded at the cent. Lines come back in
// product-id order so repeated views render identically.
func Resolve(catalog Catalog, c cart.Cart) ([]Line, decimal.Decimal, error) {
	ids := make([]int, 0, len(c))
	for key := range c {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var lines []Line
	total := decimal.Zero
	for _, id := range ids {
		qty := c[strconv.Itoa(id)]
		product, err := catalog.GetProductByID(id)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("failed to resolve cart product %d: %w", id, err)
		}
		if product == nil || !product.IsActive {
			continue
		}
		subtotal := pricing.Subtotal(product.Price, qty)
		total = total.Add(subtotal)
		lines = append(lines, Line{Product: *product, Qty: qty, Subtotal: subtotal})
	}
	return lines, total, nil
}

// OrderInput carries the customer-supplied checkout fields.
type OrderInput struct {
	CustomerName  string
	Whatsapp      string
	CityState     string
	Address       string
	Notes         string
	PaymentMethod string
}

// Service materializes orders from carts.
type Service struct {
	Store           Store
	DiscountPercent int
}

// PlaceOrder validates the input, reprices the cart from live catalog data
// (client-supplied prices are never trusted), and persists the order with
// one snapshot item per surviving cart line inside a single transaction.
// The caller clears the cart after a successful return.
func (s *Service) PlaceOrder(c cart.Cart, in OrderInput) (*models.Order, error) {
	method := in.PaymentMethod
	if method != models.PaymentPix && method != models.PaymentCard {
		method = models.PaymentPix
	}

	name := strings.TrimSpace(in.CustomerName)
	whatsapp := strings.TrimSpace(in.Whatsapp)
	if name == "" || whatsapp == "" {
		return nil, ValidationError{Msg: "Informe seu nome e WhatsApp para finalizar."}
	}

	lines, total, err := Resolve(s.Store, c)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		CustomerName:   name,
		Whatsapp:       whatsapp,
		CityState:      strings.TrimSpace(in.CityState),
		Address:        strings.TrimSpace(in.Address),
		Notes:          strings.TrimSpace(in.Notes),
		PaymentMethod:  method,
		Amount:         pricing.EffectiveAmount(total, method, s.DiscountPercent),
		AmountOriginal: total,
		Status:         models.StatusAwaitingPayment,
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID:           line.Product.ID,
			ProductNameSnapshot: line.Product.Name,
			UnitPrice:           line.Product.Price,
			Qty:                 line.Qty,
		})
	}

	if err := s.Store.CreateOrder(order, items); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}
