package utils

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	PayPal   PayPalConfig
	Clerk    ClerkConfig
	CMS      CMSConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PayPalConfig struct {
	ClientID string
	Secret   string
	APIBase  string
	Currency string
}

type ClerkConfig struct {
	JWKSURL string
	Issuer  string
}

type CMSConfig struct {
	BaseURL  string
	Token    string
	CacheTTL time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("PAYPAL_API_BASE", "https://api-m.sandbox.paypal.com")
	viper.SetDefault("PAYPAL_CURRENCY", "JPY")
	viper.SetDefault("CMS_CACHE_TTL_MINUTES", 10)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASS"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		PayPal: PayPalConfig{
			ClientID: viper.GetString("PAYPAL_CLIENT_ID"),
			Secret:   viper.GetString("PAYPAL_SECRET"),
			APIBase:  viper.GetString("PAYPAL_API_BASE"),
			Currency: viper.GetString("PAYPAL_CURRENCY"),
		},
		Clerk: ClerkConfig{
			JWKSURL: viper.GetString("CLERK_JWKS_URL"),
			Issuer:  viper.GetString("CLERK_ISSUER"),
		},
		CMS: CMSConfig{
			BaseURL:  viper.GetString("CMS_BASE_URL"),
			Token:    viper.GetString("CMS_TOKEN"),
			CacheTTL: time.Duration(viper.GetInt("CMS_CACHE_TTL_MINUTES")) * time.Minute,
		},
	}

	return config, nil
}
