package store

import (
	"database/sql"
	"fmt"

	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/models"
)

// CreateOrder persists the order and its snapshot items in one transaction.
// Either everything commits or nothing does.
func (s *Store) CreateOrder(order *models.Order, items []models.OrderItem) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}

	res, err := tx.Exec(`
		INSERT INTO orders (customer_name, whatsapp, city_state, address, notes,
			payment_method, amount, amount_original, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, order.CustomerName, order.Whatsapp, order.CityState, order.Address, order.Notes,
		order.PaymentMethod, order.Amount, order.AmountOriginal, order.Status)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to insert order: %w", err)
	}

	orderID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return err
	}

	for _, item := range items {
		if _, err := tx.Exec(`
			INSERT INTO order_items (order_id, product_id, product_name_snapshot, unit_price, qty)
			VALUES (?, ?, ?, ?, ?)
		`, orderID, item.ProductID, item.ProductNameSnapshot, item.UnitPrice, item.Qty); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	order.ID = int(orderID)
	return nil
}

// GetOrderByID returns (nil, nil) when the order does not exist.
func (s *Store) GetOrderByID(id int) (*models.Order, error) {
	var o models.Order
	err := s.DB.QueryRow(`
		SELECT id, customer_name, whatsapp, city_state, address, notes,
			payment_method, amount, amount_original, status, created_at
		FROM orders WHERE id = ?
	`, id).Scan(&o.ID, &o.CustomerName, &o.Whatsapp, &o.CityState, &o.Address, &o.Notes,
		&o.PaymentMethod, &o.Amount, &o.AmountOriginal, &o.Status, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Store) GetOrderItems(orderID int) ([]models.OrderItem, error) {
	rows, err := s.DB.Query(`
		SELECT id, order_id, product_id, product_name_snapshot, unit_price, qty
		FROM order_items WHERE order_id = ? ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductNameSnapshot, &it.UnitPrice, &it.Qty); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetRecentOrders lists the newest orders for the admin dashboard.
func (s *Store) GetRecentOrders(limit int) ([]models.Order, error) {
	rows, err := s.DB.Query(`
		SELECT id, customer_name, whatsapp, city_state, address, notes,
			payment_method, amount, amount_original, status, created_at
		FROM orders ORDER BY created_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.Whatsapp, &o.CityState, &o.Address, &o.Notes,
			&o.PaymentMethod, &o.Amount, &o.AmountOriginal, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *Store) UpdateOrderStatus(id int, status string) error {
	_, err := s.DB.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	return err
}
