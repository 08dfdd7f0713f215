package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Mongo     MongoConfig
	JWT       JWTConfig
	S3        S3Config
	Log       LogConfig
	CORS      CORSConfig
	Email     EmailConfig
	Numbering NumberingConfig
	PDF       PDFConfig
	AI        AIConfig
	Defaults  DefaultsConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings and the storage driver choice.
type DBConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`

	// ConnMaxLifetime recycles pooled connections; 0 keeps them forever.
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	// ConnectTimeout bounds the startup ping.
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// MongoConfig holds MongoDB settings, used when DBConfig.Driver is "mongo".
type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings. Storage is optional; backups and PDFs are
// only archived when Enabled is set.
type S3Config struct {
	Enabled       bool   `mapstructure:"enabled"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// NumberingConfig controls document number lookups.
type NumberingConfig struct {
	LookupTimeout time.Duration `mapstructure:"lookup_timeout"`
	EnforceUnique bool          `mapstructure:"enforce_unique"`
	RecentLimit   int           `mapstructure:"recent_limit"`
}

// PDFConfig holds headless Chrome settings.
type PDFConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	ExecPath string        `mapstructure:"exec_path"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Store    bool          `mapstructure:"store"`
}

// AIConfig holds the optional email drafting provider.
type AIConfig struct {
	Provider    string `mapstructure:"provider"`
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// DefaultsConfig holds values filled into new documents.
type DefaultsConfig struct {
	PlaceOfSupply      string `mapstructure:"place_of_supply"`
	TermsAndConditions string `mapstructure:"terms_and_conditions"`
	UPIID              string `mapstructure:"upi_id"`
	ValidityDays       int    `mapstructure:"validity_days"`
	DeliveryDays       int    `mapstructure:"delivery_days"`
	AppVersion         string `mapstructure:"app_version"`
}

// Load reads configuration from environment variables with the GSTBILL_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GSTBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "gstbill")
	v.SetDefault("db.password", "gstbill_secret")
	v.SetDefault("db.name", "gstbill_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.connect_timeout", "10s")

	// Mongo defaults
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "gstbill")
	v.SetDefault("mongo.connect_timeout", "10s")

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "gstbill")

	// S3 defaults
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "gstbill-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 10)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@gstbill.local")
	v.SetDefault("email.from_name", "GST Bill")

	// Numbering defaults
	v.SetDefault("numbering.lookup_timeout", "10s")
	v.SetDefault("numbering.enforce_unique", false)
	v.SetDefault("numbering.recent_limit", 10)

	// PDF defaults
	v.SetDefault("pdf.enabled", true)
	v.SetDefault("pdf.exec_path", "")
	v.SetDefault("pdf.timeout", "30s")
	v.SetDefault("pdf.store", false)

	// AI defaults
	v.SetDefault("ai.provider", "none")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "gpt-4o")
	v.SetDefault("ai.timeout_secs", 30)

	// Document defaults
	v.SetDefault("defaults.place_of_supply", "TN (33)")
	v.SetDefault("defaults.terms_and_conditions", "1. Goods once sold will not be taken back.\n2. Payment due within 15 days.\n3. Subject to local jurisdiction.")
	v.SetDefault("defaults.upi_id", "")
	v.SetDefault("defaults.validity_days", 15)
	v.SetDefault("defaults.delivery_days", 25)
	v.SetDefault("defaults.app_version", "1.0.0")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                   "GSTBILL_SERVER_PORT",
		"server.read_timeout":           "GSTBILL_SERVER_READ_TIMEOUT",
		"server.write_timeout":          "GSTBILL_SERVER_WRITE_TIMEOUT",
		"server.environment":            "GSTBILL_SERVER_ENVIRONMENT",
		"db.driver":                     "GSTBILL_DB_DRIVER",
		"db.host":                       "GSTBILL_DB_HOST",
		"db.port":                       "GSTBILL_DB_PORT",
		"db.user":                       "GSTBILL_DB_USER",
		"db.password":                   "GSTBILL_DB_PASSWORD",
		"db.name":                       "GSTBILL_DB_NAME",
		"db.sslmode":                    "GSTBILL_DB_SSLMODE",
		"db.max_open":                   "GSTBILL_DB_MAX_OPEN",
		"db.max_idle":                   "GSTBILL_DB_MAX_IDLE",
		"db.conn_max_lifetime":          "GSTBILL_DB_CONN_MAX_LIFETIME",
		"db.connect_timeout":            "GSTBILL_DB_CONNECT_TIMEOUT",
		"mongo.uri":                     "GSTBILL_MONGO_URI",
		"mongo.database":                "GSTBILL_MONGO_DATABASE",
		"mongo.connect_timeout":         "GSTBILL_MONGO_CONNECT_TIMEOUT",
		"jwt.secret":                    "GSTBILL_JWT_SECRET",
		"jwt.access_expiry":             "GSTBILL_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":            "GSTBILL_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                    "GSTBILL_JWT_ISSUER",
		"s3.enabled":                    "GSTBILL_S3_ENABLED",
		"s3.region":                     "GSTBILL_S3_REGION",
		"s3.bucket":                     "GSTBILL_S3_BUCKET",
		"s3.endpoint":                   "GSTBILL_S3_ENDPOINT",
		"s3.access_key":                 "GSTBILL_S3_ACCESS_KEY",
		"s3.secret_key":                 "GSTBILL_S3_SECRET_KEY",
		"s3.max_file_size_mb":           "GSTBILL_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":             "GSTBILL_S3_PRESIGN_EXPIRY",
		"log.level":                     "GSTBILL_LOG_LEVEL",
		"log.format":                    "GSTBILL_LOG_FORMAT",
		"cors.allowed_origins":          "GSTBILL_CORS_ALLOWED_ORIGINS",
		"email.provider":                "GSTBILL_EMAIL_PROVIDER",
		"email.region":                  "GSTBILL_EMAIL_REGION",
		"email.from_address":            "GSTBILL_EMAIL_FROM_ADDRESS",
		"email.from_name":               "GSTBILL_EMAIL_FROM_NAME",
		"numbering.lookup_timeout":      "GSTBILL_NUMBERING_LOOKUP_TIMEOUT",
		"numbering.enforce_unique":      "GSTBILL_NUMBERING_ENFORCE_UNIQUE",
		"numbering.recent_limit":        "GSTBILL_NUMBERING_RECENT_LIMIT",
		"pdf.enabled":                   "GSTBILL_PDF_ENABLED",
		"pdf.exec_path":                 "GSTBILL_PDF_EXEC_PATH",
		"pdf.timeout":                   "GSTBILL_PDF_TIMEOUT",
		"pdf.store":                     "GSTBILL_PDF_STORE",
		"ai.provider":                   "GSTBILL_AI_PROVIDER",
		"ai.api_key":                    "GSTBILL_AI_API_KEY",
		"ai.model":                      "GSTBILL_AI_MODEL",
		"ai.timeout_secs":               "GSTBILL_AI_TIMEOUT_SECS",
		"defaults.place_of_supply":      "GSTBILL_DEFAULTS_PLACE_OF_SUPPLY",
		"defaults.terms_and_conditions": "GSTBILL_DEFAULTS_TERMS_AND_CONDITIONS",
		"defaults.upi_id":               "GSTBILL_DEFAULTS_UPI_ID",
		"defaults.validity_days":        "GSTBILL_DEFAULTS_VALIDITY_DAYS",
		"defaults.delivery_days":        "GSTBILL_DEFAULTS_DELIVERY_DAYS",
		"defaults.app_version":          "GSTBILL_DEFAULTS_APP_VERSION",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if GSTBILL_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GSTBILL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Driver:   strings.ToLower(v.GetString("db.driver")),
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),

		ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
		ConnectTimeout:  v.GetDuration("db.connect_timeout"),
	}
	if cfg.DB.Driver != "postgres" && cfg.DB.Driver != "mongo" {
		return nil, fmt.Errorf("unsupported db.driver %q (want postgres or mongo)", cfg.DB.Driver)
	}
	cfg.Mongo = MongoConfig{
		URI:            v.GetString("mongo.uri"),
		Database:       v.GetString("mongo.database"),
		ConnectTimeout: v.GetDuration("mongo.connect_timeout"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Enabled:       v.GetBool("s3.enabled"),
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	cfg.Numbering = NumberingConfig{
		LookupTimeout: v.GetDuration("numbering.lookup_timeout"),
		EnforceUnique: v.GetBool("numbering.enforce_unique"),
		RecentLimit:   v.GetInt("numbering.recent_limit"),
	}

	cfg.PDF = PDFConfig{
		Enabled:  v.GetBool("pdf.enabled"),
		ExecPath: v.GetString("pdf.exec_path"),
		Timeout:  v.GetDuration("pdf.timeout"),
		Store:    v.GetBool("pdf.store"),
	}

	cfg.AI = AIConfig{
		Provider:    strings.ToLower(v.GetString("ai.provider")),
		APIKey:      v.GetString("ai.api_key"),
		Model:       v.GetString("ai.model"),
		TimeoutSecs: v.GetInt("ai.timeout_secs"),
	}

	cfg.Defaults = DefaultsConfig{
		PlaceOfSupply:      v.GetString("defaults.place_of_supply"),
		TermsAndConditions: v.GetString("defaults.terms_and_conditions"),
		UPIID:              v.GetString("defaults.upi_id"),
		ValidityDays:       v.GetInt("defaults.validity_days"),
		DeliveryDays:       v.GetInt("defaults.delivery_days"),
		AppVersion:         v.GetString("defaults.app_version"),
	}

	return cfg, nil
}
