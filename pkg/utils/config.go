package utils

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Checkout CheckoutConfig
	Stripe   StripeConfig
	Ticket   TicketConfig
	Email    EmailConfig
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

type JWTConfig struct {
	Secret        string
	ExpiryMinutes int
}

// CheckoutConfig holds the reservation policy values. Hold TTL and the sweep
// interval are tunable, not hardcoded.
type CheckoutConfig struct {
	HoldTTL       time.Duration
	SweepInterval time.Duration
	SuccessURL    string
	CancelURL     string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

type TicketConfig struct {
	Dir       string
	PublicURL string
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_EXPIRY_MINUTES", 60)
	viper.SetDefault("CHECKOUT_HOLD_TTL_MINUTES", 15)
	viper.SetDefault("SWEEP_INTERVAL_SECONDS", 60)
	viper.SetDefault("TICKET_DIR", "public/tickets")
	viper.SetDefault("LOG_PATH", "logs/")

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
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			ExpiryMinutes: viper.GetInt("JWT_EXPIRY_MINUTES"),
		},
		Checkout: CheckoutConfig{
			HoldTTL:       time.Duration(viper.GetInt("CHECKOUT_HOLD_TTL_MINUTES")) * time.Minute,
			SweepInterval: time.Duration(viper.GetInt("SWEEP_INTERVAL_SECONDS")) * time.Second,
			SuccessURL:    viper.GetString("CHECKOUT_SUCCESS_URL"),
			CancelURL:     viper.GetString("CHECKOUT_CANCEL_URL"),
		},
		Stripe: StripeConfig{
			SecretKey:     viper.GetString("STRIPE_SECRET_KEY"),
			WebhookSecret: viper.GetString("STRIPE_WEBHOOK_SECRET"),
		},
		Ticket: TicketConfig{
			Dir:       viper.GetString("TICKET_DIR"),
			PublicURL: viper.GetString("BACKEND_PUBLIC_URL"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
	}

	return config, nil
}
