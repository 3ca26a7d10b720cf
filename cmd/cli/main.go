// init-db bootstraps the database outside the server: schema, the admin
// account and the sample catalog.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/config"
	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	seed := flag.Bool("seed", true, "seed the sample catalog when the products table is empty")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Bootstrap(cfg.AdminEmail, cfg.AdminPassword, *seed); err != nil {
		slog.Error("Bootstrap failed", "error", err)
		os.Exit(1)
	}

	fmt.Println("✅ Banco inicializado com admin e catálogo.")
}
