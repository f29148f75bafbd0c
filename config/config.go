package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Proxies whose X-Forwarded-For is believed when keying rate limits.
	// Comma-separated IPs or CIDRs; empty trusts none.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`

	// Catalog source. An empty base URL reads PUBLIC_DIR/CATALOG_PATH from disk.
	CatalogBaseURL             string `mapstructure:"CATALOG_BASE_URL"`
	CatalogPath                string `mapstructure:"CATALOG_PATH"`
	CatalogFetchTimeoutSeconds int    `mapstructure:"CATALOG_FETCH_TIMEOUT_SECONDS"`

	// Page surface.
	PublicDir           string `mapstructure:"PUBLIC_DIR"`
	PageTemplate        string `mapstructure:"PAGE_TEMPLATE"`
	ServicesContainerID string `mapstructure:"SERVICES_CONTAINER_ID"`
	WhatsAppBaseURL     string `mapstructure:"WHATSAPP_BASE_URL"`
	CardCacheSize       int    `mapstructure:"CARD_CACHE_SIZE"`

	// Redis configuration. Render events are only published when REDIS_ADDR is set.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	RenderChannel string `mapstructure:"RENDER_CHANNEL"`

	// bcrypt hash of the bearer token required on mutation routes.
	AdminTokenHash string `mapstructure:"ADMIN_TOKEN_HASH"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("TRUSTED_PROXIES", []string{})
	viper.SetDefault("CATALOG_BASE_URL", "")
	viper.SetDefault("CATALOG_PATH", "services.json")
	viper.SetDefault("CATALOG_FETCH_TIMEOUT_SECONDS", 0)
	viper.SetDefault("PUBLIC_DIR", "./public")
	viper.SetDefault("PAGE_TEMPLATE", "index.html")
	viper.SetDefault("SERVICES_CONTAINER_ID", "services-container")
	viper.SetDefault("WHATSAPP_BASE_URL", "https://wa.me/")
	viper.SetDefault("CARD_CACHE_SIZE", 256)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RENDER_CHANNEL", "catalog:renders")
	viper.SetDefault("ADMIN_TOKEN_HASH", "")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
