package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DBDSN     string
	UploadDir string
	LogFile   string
	BaseURL   string
	AdminUser string
	AdminPass string
}

func Load() Config {
	// .env is optional; env vars win when both are set.
	_ = godotenv.Load()

	cfg := Config{
		Port:      getenv("PORT", "8080"),
		DBDSN:     getenv("DB_DSN", "mh.db"),
		UploadDir: getenv("UPLOAD_DIR", "./static/uploads"),
		LogFile:   getenv("LOG_FILE", "./mh.log"),
		BaseURL:   getenv("BASE_URL", "http://localhost:8080"),
		AdminUser: getenv("ADMIN_USER", "admin"),
		AdminPass: getenv("ADMIN_PASS", "adminpass123"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s UPLOAD_DIR=%s LOG_FILE=%s BASE_URL=%s",
		cfg.Port, cfg.DBDSN, cfg.UploadDir, cfg.LogFile, cfg.BaseURL)
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
