package store

import (
	"database/sql"

	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/models"
)

// GetUserByEmail returns (nil, nil) when no user exists for the email.
func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	row := s.DB.QueryRow(`
		SELECT id, email, password_hash, created_at FROM users WHERE email = ? COLLATE NOCASE
	`, email)

	var user models.User
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser is mainly for seeding the initial admin.
func (s *Store) CreateUser(email, passwordHash string) error {
	_, err := s.DB.Exec(`
		INSERT INTO users (email, password_hash, created_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	`, email, passwordHash)
	return err
}
