package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	Env         string

	// Engine defaults, overridable per run via CLI flags.
	DefaultPeriodType      string
	DefaultMinTransactions int
	IncludeRefunds         bool
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		Env:               os.Getenv("ENV"),
		DefaultPeriodType: os.Getenv("RFM_PERIOD_TYPE"),
	}

	// Default values
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.DefaultPeriodType == "" {
		cfg.DefaultPeriodType = "yearly"
	}
	cfg.DefaultMinTransactions = 1
	if v := os.Getenv("RFM_MIN_TRANSACTIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DefaultMinTransactions = n
		} else {
			log.Printf("⚠️ Ignoring invalid RFM_MIN_TRANSACTIONS %q, using default %d", v, cfg.DefaultMinTransactions)
		}
	}
	if v := os.Getenv("RFM_INCLUDE_REFUNDS"); v == "true" || v == "1" {
		cfg.IncludeRefunds = true
	}

	return cfg
}
