package store

import (
	"database/sql"
	"fmt"

	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/models"
)

const productColumns = `id, name, description, price, is_active, created_at`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.IsActive, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) CreateProduct(p *models.Product) error {
	res, err := s.DB.Exec(`
		INSERT INTO products (name, description, price, is_active, created_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, p.Name, p.Description, p.Price, p.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = int(id)
	return nil
}

func (s *Store) UpdateProduct(p *models.Product) error {
	_, err := s.DB.Exec(`
		UPDATE products
		SET name = ?, description = ?, price = ?, is_active = ?
		WHERE id = ?
	`, p.Name, p.Description, p.Price, p.IsActive, p.ID)
	return err
}

// GetProductByID returns (nil, nil) when the product does not exist.
func (s *Store) GetProductByID(id int) (*models.Product, error) {
	row := s.DB.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

// GetActiveProducts lists active products newest first. A non-empty query
// filters by case-insensitive substring match on the name.
func (s *Store) GetActiveProducts(query string) ([]models.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE is_active = 1`
	args := []any{}
	if query != "" {
		q += ` AND name LIKE '%' || ? || '%' COLLATE NOCASE`
		args = append(args, query)
	}
	q += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.DB.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

// GetAllProducts lists every product for the admin, newest first.
func (s *Store) GetAllProducts() ([]models.Product, error) {
	rows, err := s.DB.Query(`SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func collectProducts(rows *sql.Rows) ([]models.Product, error) {
	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (s *Store) CountProducts() (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}

// DeleteProduct removes the product and its image rows in one transaction.
// Backing image files are the caller's problem (best-effort, after commit).
func (s *Store) DeleteProduct(id int) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM product_images WHERE product_id = ?`, id); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete product images: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM products WHERE id = ?`, id); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return tx.Commit()
}
