package config

import (
	"fmt"
	"os"
	"strings"

	httpapi "github.com/jekabolt/retail-dashboard/internal/api/http"
	"github.com/jekabolt/retail-dashboard/internal/analytics/adspend"
	"github.com/jekabolt/retail-dashboard/internal/apisrv/auth"
	"github.com/jekabolt/retail-dashboard/internal/cache"
	"github.com/jekabolt/retail-dashboard/internal/dashboard"
	"github.com/jekabolt/retail-dashboard/internal/rates"
	"github.com/jekabolt/retail-dashboard/internal/store"
	"github.com/jekabolt/retail-dashboard/internal/store/mongo"
	"github.com/jekabolt/retail-dashboard/log"
	"github.com/spf13/viper"
)

// Config represents the global configuration for the service.
type Config struct {
	DB        store.Config     `mapstructure:"mysql"`
	Mongo     mongo.Config     `mapstructure:"mongo"`
	Logger    log.Config       `mapstructure:"logger"`
	HTTP      httpapi.Config   `mapstructure:"http"`
	Auth      auth.Config      `mapstructure:"auth"`
	Rates     rates.Config     `mapstructure:"rates"`
	Dashboard dashboard.Config `mapstructure:"dashboard"`
	AdSpend   adspend.Config   `mapstructure:"ad_spend"`
	Cache     cache.Config     `mapstructure:"cache"`
}

func setDefaults(v *viper.Viper) {
	dc := dashboard.DefaultConfig()
	v.SetDefault("dashboard.source", dc.Source)
	v.SetDefault("dashboard.day_max_days", dc.DayMaxDays)
	v.SetDefault("dashboard.week_max_days", dc.WeekMaxDays)
	v.SetDefault("dashboard.timezone", dc.Timezone)
	v.SetDefault("http.port", "8081")
	v.SetDefault("rates.base_currency", "UAH")
	v.SetDefault("cache.backend", cache.BackendMemory)
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("auth.jwt_ttl", "24h")
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
// Env vars use underscores and uppercase, e.g., MYSQL_DSN, AUTH_JWT_SECRET
// Nested config keys use double underscore, e.g., MYSQL__DSN for mysql.dsn
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	setDefaults(v)

	v.AutomaticEnv()
	// e.g., mysql.dsn -> MYSQL__DSN, auth.jwt_secret -> AUTH__JWT_SECRET
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))
	bindEnvVars(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/config/retail-dashboard")
		v.AddConfigPath("/etc/retail-dashboard")
		// Try to read config, but don't fail if it doesn't exist
		_ = v.ReadInConfig()
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	// Build the MySQL DSN from MYSQL_* parts when it is not set directly.
	if config.DB.DSN == "" {
		host := os.Getenv("MYSQL_HOST")
		port := os.Getenv("MYSQL_PORT")
		user := os.Getenv("MYSQL_USER")
		password := os.Getenv("MYSQL_PASSWORD")
		database := os.Getenv("MYSQL_DATABASE")
		if port == "" {
			port = "3306"
		}
		if host != "" && user != "" && password != "" && database != "" {
			tls := ""
			if config.DB.TLSCAPath != "" {
				tls = "&tls=custom"
			}
			config.DB.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8&parseTime=true%s",
				user, password, host, port, database, tls)
		}
	}

	return &config, nil
}

// bindEnvVars binds environment variables to config keys
// This allows using both nested keys (MYSQL__DSN) and flat keys (MYSQL_DSN)
func bindEnvVars(v *viper.Viper) {
	// MySQL
	v.BindEnv("mysql.dsn", "MYSQL_DSN")
	v.BindEnv("mysql.automigrate", "MYSQL_AUTOMIGRATE")
	v.BindEnv("mysql.max_open_connections", "MYSQL_MAX_OPEN_CONNECTIONS")
	v.BindEnv("mysql.max_idle_connections", "MYSQL_MAX_IDLE_CONNECTIONS")
	v.BindEnv("mysql.tls_ca_path", "MYSQL_TLS_CA_PATH")

	// Mongo
	v.BindEnv("mongo.uri", "MONGO_URI")
	v.BindEnv("mongo.database", "MONGO_DATABASE")
	v.BindEnv("mongo.timeout", "MONGO_TIMEOUT")

	// Logger
	v.BindEnv("logger.level", "LOG_LEVEL")
	v.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	v.BindEnv("http.port", "HTTP_PORT")
	v.BindEnv("http.address", "HTTP_ADDRESS")
	v.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")
	v.BindEnv("http.request_timeout", "HTTP_REQUEST_TIMEOUT")
	v.BindEnv("http.admin_rate_limit", "HTTP_ADMIN_RATE_LIMIT")

	// Auth
	v.BindEnv("auth.jwt_secret", "AUTH_JWT_SECRET")
	v.BindEnv("auth.jwt_ttl", "AUTH_JWT_TTL")

	// Rates
	v.BindEnv("rates.base_currency", "RATES_BASE_CURRENCY")
	v.BindEnv("rates.usd_to_local", "RATES_USD_TO_LOCAL")
	v.BindEnv("rates.shipping_usd_per_gram", "RATES_SHIPPING_USD_PER_GRAM")

	// Dashboard
	v.BindEnv("dashboard.source", "DASHBOARD_SOURCE")
	v.BindEnv("dashboard.day_max_days", "DASHBOARD_DAY_MAX_DAYS")
	v.BindEnv("dashboard.week_max_days", "DASHBOARD_WEEK_MAX_DAYS")
	v.BindEnv("dashboard.timezone", "DASHBOARD_TIMEZONE")

	// Ad spend
	v.BindEnv("ad_spend.enabled", "AD_SPEND_ENABLED")
	v.BindEnv("ad_spend.base_url", "AD_SPEND_BASE_URL")
	v.BindEnv("ad_spend.api_version", "AD_SPEND_API_VERSION")
	v.BindEnv("ad_spend.account_id", "AD_SPEND_ACCOUNT_ID")
	v.BindEnv("ad_spend.access_token", "AD_SPEND_ACCESS_TOKEN")
	v.BindEnv("ad_spend.timeout", "AD_SPEND_TIMEOUT")

	// Cache
	v.BindEnv("cache.backend", "CACHE_BACKEND")
	v.BindEnv("cache.ttl", "CACHE_TTL")
	v.BindEnv("cache.redis_addr", "CACHE_REDIS_ADDR")
	v.BindEnv("cache.redis_password", "CACHE_REDIS_PASSWORD")
	v.BindEnv("cache.redis_db", "CACHE_REDIS_DB")
}
