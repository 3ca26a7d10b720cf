package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/cart"
	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/checkout"
	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/config"
	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/handlers"
	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/store"
	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/upload"
)

func main() {
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB + Bootstrap (schema, admin account, sample catalog)
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Bootstrap(cfg.AdminEmail, cfg.AdminPassword, true); err != nil {
		slog.Error("Failed to bootstrap database", "error", err)
		os.Exit(1)
	}

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	templates.AddFunc("money", handlers.MoneyBRL)
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Setup Handlers
	base := &handlers.Base{
		Store:     db,
		Cfg:       cfg,
		Templates: templates,
		Sessions:  sessionStore,
		Carts:     cart.NewSessionStore(sessionStore),
	}
	shopHandler := &handlers.ShopHandler{Base: base}
	cartHandler := &handlers.CartHandler{Base: base}
	orderHandler := &handlers.OrderHandler{
		Base:     base,
		Checkout: &checkout.Service{Store: db, DiscountPercent: cfg.PixDiscountPercent},
	}
	adminHandler := &handlers.AdminHandler{Base: base}
	productAdmin := &handlers.ProductAdminHandler{
		Base:    base,
		Uploads: upload.NewSaver(cfg.UploadDir),
	}

	mux := http.NewServeMux()

	// Static Files. Uploads get their own mount so UPLOAD_DIR can live
	// anywhere while the image URLs stay stable.
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))
	mux.Handle(upload.PublicPrefix+"/", http.StripPrefix(upload.PublicPrefix, http.FileServer(http.Dir(cfg.UploadDir))))

	// Public Routes
	mux.HandleFunc("GET /{$}", shopHandler.Index)
	mux.HandleFunc("GET /produto/{id}", shopHandler.ProductDetail)
	mux.HandleFunc("GET /carrinho", cartHandler.View)
	mux.HandleFunc("POST /carrinho/add/{id}", cartHandler.Add)
	mux.HandleFunc("POST /carrinho/update", cartHandler.Update)
	mux.HandleFunc("GET /carrinho/limpar", cartHandler.Clear)
	mux.HandleFunc("GET /checkout", orderHandler.CheckoutForm)
	mux.HandleFunc("POST /pedido/criar", orderHandler.CreateOrder)
	mux.HandleFunc("GET /pedido/{id}/sucesso", orderHandler.OrderSuccess)

	// Admin auth
	mux.HandleFunc("GET /admin/login", adminHandler.LoginGet)
	mux.HandleFunc("POST /admin/login", adminHandler.LoginPost)
	mux.HandleFunc("GET /admin/logout", adminHandler.AuthMiddleware(adminHandler.Logout))

	// Protected Routes
	mux.HandleFunc("GET /admin", adminHandler.AuthMiddleware(adminHandler.Dashboard))
	mux.HandleFunc("POST /admin/pedidos/{id}/status", adminHandler.AuthMiddleware(adminHandler.UpdateOrderStatus))

	mux.HandleFunc("GET /admin/produtos", adminHandler.AuthMiddleware(productAdmin.ListProducts))
	mux.HandleFunc("GET /admin/produtos/novo", adminHandler.AuthMiddleware(productAdmin.NewProductForm))
	mux.HandleFunc("POST /admin/produtos/novo", adminHandler.AuthMiddleware(productAdmin.CreateProduct))
	mux.HandleFunc("GET /admin/produtos/{id}/editar", adminHandler.AuthMiddleware(productAdmin.EditProductForm))
	mux.HandleFunc("POST /admin/produtos/{id}/editar", adminHandler.AuthMiddleware(productAdmin.UpdateProduct))
	mux.HandleFunc("POST /admin/produtos/{id}/excluir", adminHandler.AuthMiddleware(productAdmin.DeleteProduct))
	mux.HandleFunc("POST /admin/produtos/imagem/{id}/excluir", adminHandler.AuthMiddleware(productAdmin.DeleteImage))

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "store", cfg.StoreName)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
