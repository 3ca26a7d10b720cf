package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is built once at startup and passed to every component that
// needs it. Nothing mutates it after LoadConfig returns.
type Config struct {
	Port   string
	DBPath string

	StoreName          string
	PixKey             string
	PixReceiverName    string
	PixDiscountPercent int
	PaymentLink        string

	AdminEmail    string
	AdminPassword string

	UploadDir      string
	MaxUploadBytes int64

	SessionKey   []byte
	CSRFKey      []byte
	CookieSecure bool
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded environment from .env file")
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DBPath:          getEnv("DB_PATH", "./sonhos.db"),
		StoreName:       getEnv("STORE_NAME", "Sonhos de Crochê"),
		PixKey:          getEnv("PIX_KEY", "SUA_CHAVE_PIX_AQUI"),
		PixReceiverName: getEnv("PIX_RECEIVER_NAME", "Sonhos de Crochê"),
		PaymentLink:     getEnv("MERCADOPAGO_PAYMENT_LINK", ""),
		AdminEmail:      getEnv("ADMIN_EMAIL", "admin@sonhosdecroche.com"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", "admin123"),
		UploadDir:       getEnv("UPLOAD_DIR", filepath.Join("static", "img", "uploads")),
		CookieSecure:    getEnv("COOKIE_SECURE", "false") == "true",
	}

	pct, err := strconv.Atoi(getEnv("PIX_DISCOUNT_PERCENT", "0"))
	if err != nil {
		slog.Warn("Invalid PIX_DISCOUNT_PERCENT, using 0", "value", os.Getenv("PIX_DISCOUNT_PERCENT"))
		pct = 0
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	cfg.PixDiscountPercent = pct

	maxMB, err := strconv.ParseInt(getEnv("MAX_UPLOAD_MB", "12"), 10, 64)
	if err != nil || maxMB <= 0 {
		maxMB = 12
	}
	cfg.MaxUploadBytes = maxMB << 20

	cfg.SessionKey = loadKey("SESSION_KEY")
	cfg.CSRFKey = loadKey("CSRF_KEY")

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "8080"
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// loadKey decodes a base64 key from the environment, falling back to a
// random key (sessions won't survive a restart) with a warning.
func loadKey(name string) []byte {
	raw := os.Getenv(name)
	if raw == "" {
		slog.Warn(name + " not set. Generating a random key; set a stable base64 key in production.")
		return generateRandomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(decoded) < 32 {
		slog.Warn(name + " is invalid or shorter than 32 bytes. Generating a random key instead.")
		return generateRandomBytes(32)
	}
	return decoded
}

func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		slog.Error("Failed to read random bytes", "error", err)
		os.Exit(1)
	}
	return b
}
