package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Ledger    LedgerConfig
	Notify    NotifyConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Admin     AdminConfig
}

// AdminConfig is the account seeded on first boot. Seeding is skipped when
// the password is unset or an admin already exists.
type AdminConfig struct {
	Username string
	Password string
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
}

// LedgerConfig selects the ledger backend and schema variant and carries the
// external store/feed references. The references themselves are an immutable
// Settings value that an admin can hot-swap outside production.
type LedgerConfig struct {
	Backend         string // "sheets" or "workbook"
	SchemaVariant   string // "legacy14", "standard15" or "full17"
	WorkbookPath    string
	Timezone        string
	CredentialsJSON string
	CatalogCacheTTL time.Duration
	Settings        Settings
}

// Settings are the runtime store/feed references. The value is immutable;
// swapping replaces it wholesale.
type Settings struct {
	LedgerSheetID   string `json:"ledger_sheet_id"`
	AgentSheetID    string `json:"agent_sheet_id"`
	DeliverySheetID string `json:"delivery_sheet_id"`
	ProductFeedURL  string `json:"product_feed_url"`
}

type NotifyConfig struct {
	DiscordWebhookURL string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "orderdesk-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "orderdesk")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Ho_Chi_Minh")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	viper.SetDefault("LEDGER_BACKEND", "sheets")
	viper.SetDefault("LEDGER_SCHEMA", "full17")
	viper.SetDefault("LEDGER_WORKBOOK_PATH", "./storage/ledger.xlsx")
	viper.SetDefault("BUSINESS_TIMEZONE", "Asia/Ho_Chi_Minh")
	viper.SetDefault("CATALOG_CACHE_TTL_SECONDS", 60)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("ADMIN_USERNAME", "admin")

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(viper.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		Ledger: LedgerConfig{
			Backend:         viper.GetString("LEDGER_BACKEND"),
			SchemaVariant:   viper.GetString("LEDGER_SCHEMA"),
			WorkbookPath:    viper.GetString("LEDGER_WORKBOOK_PATH"),
			Timezone:        viper.GetString("BUSINESS_TIMEZONE"),
			CredentialsJSON: viper.GetString("SERVICE_ACCOUNT_JSON"),
			CatalogCacheTTL: time.Duration(viper.GetInt("CATALOG_CACHE_TTL_SECONDS")) * time.Second,
			Settings: Settings{
				LedgerSheetID:   viper.GetString("LEDGER_SHEET_ID"),
				AgentSheetID:    viper.GetString("AGENT_SHEET_ID"),
				DeliverySheetID: viper.GetString("DELIVERY_SHEET_ID"),
				ProductFeedURL:  viper.GetString("PRODUCT_FEED_URL"),
			},
		},
		Notify: NotifyConfig{
			DiscordWebhookURL: viper.GetString("DISCORD_WEBHOOK_URL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Admin: AdminConfig{
			Username: viper.GetString("ADMIN_USERNAME"),
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// Location resolves the business timezone. Segment dates and capture times
// use this, not UTC, so the day boundary matches the desk's clock.
func (c *LedgerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Warning: invalid BUSINESS_TIMEZONE %q, falling back to Asia/Ho_Chi_Minh", c.Timezone)
		loc, _ = time.LoadLocation("Asia/Ho_Chi_Minh")
	}
	return loc
}
