package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port     string
	DBDSN    string
	MediaDir string
	LogFile  string
	// JWTSecret signs bearer tokens. The default is only for local runs.
	JWTSecret string
	TokenTTL  time.Duration
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "emporium.db"
	} // sqlite file in project root
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./media"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./emporium.log"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-only-secret"
		log.Printf("[config] JWT_SECRET not set, using insecure dev default")
	}
	ttl := 24 * time.Hour
	if raw := os.Getenv("TOKEN_TTL_HOURS"); raw != "" {
		if h, err := strconv.Atoi(raw); err == nil && h > 0 {
			ttl = time.Duration(h) * time.Hour
		}
	}

	cfg := Config{Port: port, DBDSN: dsn, MediaDir: media, LogFile: logFile, JWTSecret: secret, TokenTTL: ttl}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s TOKEN_TTL=%s", cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile, cfg.TokenTTL)
	return cfg
}
