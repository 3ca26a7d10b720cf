package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods accepted at checkout.
const (
	PaymentPix  = "pix"
	PaymentCard = "card"
)

// StatusAwaitingPayment is the initial status of every new order.
// Status is free text; the admin can overwrite it with anything non-blank.
const StatusAwaitingPayment = "Aguardando pagamento"

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	Images      []ProductImage  `json:"images,omitempty"`
}

type ProductImage struct {
	ID        int       `json:"id"`
	ProductID int       `json:"product_id"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// Order is immutable after creation except for Status.
type Order struct {
	ID             int             `json:"id"`
	CustomerName   string          `json:"customer_name"`
	Whatsapp       string          `json:"whatsapp"`
	CityState      string          `json:"city_state"`
	Address        string          `json:"address"`
	Notes          string          `json:"notes"`
	PaymentMethod  string          `json:"payment_method"`
	Amount         decimal.Decimal `json:"amount"`
	AmountOriginal decimal.Decimal `json:"amount_original"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

// OrderItem snapshots the product name and unit price at order time, so
// later catalog edits never alter historical orders.
type OrderItem struct {
	ID                  int             `json:"id"`
	OrderID             int             `json:"order_id"`
	ProductID           int             `json:"product_id"`
	ProductNameSnapshot string          `json:"product_name_snapshot"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	Qty                 int             `json:"qty"`
}
