package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	SessionSecret       string
	DatabaseURL         string
	RedisURL            string
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
	DocumentsDir        string // absolute path to the generated-documents directory
	InstallmentHorizon  int    // number of monthly installments created with a lease
	ChromePath          string // optional explicit Chrome/Chromium binary for PDF rendering
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL_DEV")
	if env == "production" {
		dbURL = viper.GetString("DATABASE_URL_PROD")
	} else if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}
	if dbURL == "" {
		dbURL = viper.GetString("DATABASE_URL")
	}

	horizon := viper.GetInt("INSTALLMENT_HORIZON")
	if horizon <= 0 {
		horizon = 12
	}

	return &Config{
		Env:                 env,
		Port:                port,
		SessionSecret:       viper.GetString("SESSION_SECRET"),
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:   strings.EqualFold(viper.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
		DocumentsDir:        documentsDir(viper.GetString("DOCUMENTS_DIR")),
		InstallmentHorizon:  horizon,
		ChromePath:          viper.GetString("CHROME_PATH"),
	}, nil
}

func documentsDir(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		s = "storage/docs"
	}
	if filepath.IsAbs(s) {
		return s
	}
	wd, err := os.Getwd()
	if err != nil {
		return s
	}
	return filepath.Join(wd, s)
}
