package store

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/models"
)

var seedNames = []string{
	"Bolsa Floral", "Bolsa Girassol", "Bolsa Verão", "Bolsa Boho", "Bolsa Elegance",
	"Bolsa Pérola", "Bolsa Primavera", "Bolsa Mandala", "Bolsa Natural", "Bolsa Color Mix",
	"Bolsa Aurora", "Bolsa Sol", "Bolsa Areia", "Bolsa Romance", "Bolsa Jardim",
	"Bolsa Lua", "Bolsa Doce", "Bolsa Serena", "Bolsa Charm", "Bolsa Clássica",
}

const seedDescription = "Bolsa artesanal em crochê. Personalize cores e tamanho sob encomenda."

// Bootstrap is idempotent: it applies migrations, ensures one admin account
// for the configured email, and seeds the sample catalog only when the
// products table is empty.
func (s *Store) Bootstrap(adminEmail, adminPassword string, seed bool) error {
	if err := s.Migrate(); err != nil {
		return err
	}

	user, err := s.GetUserByEmail(adminEmail)
	if err != nil {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}
	if user == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		if err := s.CreateUser(adminEmail, string(hash)); err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		slog.Info("Created admin user", "email", adminEmail)
	}

	if !seed {
		return nil
	}

	count, err := s.CountProducts()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	price := decimal.NewFromInt(120)
	for _, name := range seedNames {
		p := &models.Product{
			Name:        name,
			Description: seedDescription,
			Price:       price,
			IsActive:    true,
		}
		if err := s.CreateProduct(p); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", name, err)
		}
	}
	slog.Info("Seeded sample catalog", "products", len(seedNames))
	return nil
}
