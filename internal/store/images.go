package store

import (
	"database/sql"

	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/models"
)

func (s *Store) AddProductImage(productID int, imageURL string) error {
	_, err := s.DB.Exec(`
		INSERT INTO product_images (product_id, image_url, created_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
	`, productID, imageURL)
	return err
}

// GetProductImages lists a product's images oldest first (display order).
func (s *Store) GetProductImages(productID int) ([]models.ProductImage, error) {
	rows, err := s.DB.Query(`
		SELECT id, product_id, image_url, created_at
		FROM product_images
		WHERE product_id = ?
		ORDER BY created_at ASC, id ASC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []models.ProductImage
	for rows.Next() {
		var img models.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.ImageURL, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// GetProductImageByID returns (nil, nil) when the image does not exist.
func (s *Store) GetProductImageByID(id int) (*models.ProductImage, error) {
	var img models.ProductImage
	err := s.DB.QueryRow(`
		SELECT id, product_id, image_url, created_at FROM product_images WHERE id = ?
	`, id).Scan(&img.ID, &img.ProductID, &img.ImageURL, &img.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (s *Store) DeleteProductImage(id int) error {
	_, err := s.DB.Exec(`DELETE FROM product_images WHERE id = ?`, id)
	return err
}
