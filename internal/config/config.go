// internal/config/config.go
package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig
	Store         StoreConfig
	Database      DatabaseConfig
	Supabase      SupabaseConfig
	Mongo         MongoConfig
	Local         LocalConfig
	App           AppConfig
	Cache         CacheConfig
	ObjectStorage ObjectStorageConfig
	Scheduler     SchedulerConfig
	Drive         DriveConfig
	Business      BusinessConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	LogLevel       string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

// StoreConfig selects the document store backend.
type StoreConfig struct {
	Backend       string
	FallbackLocal bool
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConcurrentTx int
}

type SupabaseConfig struct {
	URL            string
	APIKey         string
	TimeoutSeconds int
}

type MongoConfig struct {
	URI      string
	Database string
}

type LocalConfig struct {
	Path string
}

type AppConfig struct {
	UploadDir string
	DataDir   string
}

type CacheConfig struct {
	Enabled        bool
	RedisURL       string
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	RedisDB        int
	PlanTTLSeconds int
}

type ObjectStorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	Prefix    string
}

type SchedulerConfig struct {
	Enabled    bool
	ReportSpec string
	ReportMode string
}

type DriveConfig struct {
	CredentialsFile string
	FolderID        string
}

// BusinessConfig is printed on invoices and drives billing defaults.
type BusinessConfig struct {
	Name              string
	Address           string
	Phone             string
	Email             string
	GSTIN             string
	InvoicePrefix     string
	DefaultTaxPercent float64
	PaymentTermsDays  int
	CurrencySymbol    string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		setDefaults()

		// Read from environment variables
		viper.AutomaticEnv()

		// Ensure upload and data directories exist
		ensureDir(viper.GetString("APP_UPLOAD_DIR"))
		ensureDir(viper.GetString("APP_DATA_DIR"))

		instance = fromViper()
	})

	return instance
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_MODE", "debug")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("SERVER_READ_TIMEOUT", 15)
	viper.SetDefault("SERVER_WRITE_TIMEOUT", 30)
	viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})

	viper.SetDefault("STORE_BACKEND", "local")
	viper.SetDefault("STORE_FALLBACK_LOCAL", true)

	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "wklynuts")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_MAX_CONCURRENT_TX", 10)

	viper.SetDefault("SUPABASE_URL", "")
	viper.SetDefault("SUPABASE_ANON_KEY", "")
	viper.SetDefault("SUPABASE_TIMEOUT_SECONDS", 15)

	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "wklynuts")

	viper.SetDefault("LOCAL_DB_PATH", "./data/local.db")

	viper.SetDefault("APP_UPLOAD_DIR", "./data/uploads")
	viper.SetDefault("APP_DATA_DIR", "./data/output")

	viper.SetDefault("CACHE_ENABLED", false)
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("REDIS_HOST", "127.0.0.1")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_PLAN_TTL_SECONDS", 300)

	viper.SetDefault("OBJECT_STORAGE_ENABLED", false)
	viper.SetDefault("OBJECT_STORAGE_ENDPOINT", "localhost:9000")
	viper.SetDefault("OBJECT_STORAGE_ACCESS_KEY", "")
	viper.SetDefault("OBJECT_STORAGE_SECRET_KEY", "")
	viper.SetDefault("OBJECT_STORAGE_BUCKET", "wklynuts-reports")
	viper.SetDefault("OBJECT_STORAGE_REGION", "")
	viper.SetDefault("OBJECT_STORAGE_USE_SSL", false)
	viper.SetDefault("OBJECT_STORAGE_PREFIX", "reports")

	viper.SetDefault("SCHEDULER_ENABLED", false)
	viper.SetDefault("SCHEDULER_REPORT_SPEC", "0 6 1 * *")
	viper.SetDefault("SCHEDULER_REPORT_MODE", "shortage")

	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "")
	viper.SetDefault("GOOGLE_DRIVE_FOLDER_ID", "")

	viper.SetDefault("BUSINESS_NAME", "Wkly Nuts")
	viper.SetDefault("BUSINESS_ADDRESS", "")
	viper.SetDefault("BUSINESS_PHONE", "")
	viper.SetDefault("BUSINESS_EMAIL", "")
	viper.SetDefault("BUSINESS_GSTIN", "")
	viper.SetDefault("INVOICE_PREFIX", "INV")
	viper.SetDefault("INVOICE_DEFAULT_TAX_PERCENT", 5)
	viper.SetDefault("INVOICE_PAYMENT_TERMS_DAYS", 15)
	viper.SetDefault("CURRENCY_SYMBOL", "Rs.")
}

func fromViper() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Mode:           viper.GetString("SERVER_MODE"),
			LogLevel:       viper.GetString("LOG_LEVEL"),
			ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
		},
		Store: StoreConfig{
			Backend:       viper.GetString("STORE_BACKEND"),
			FallbackLocal: viper.GetBool("STORE_FALLBACK_LOCAL"),
		},
		Database: DatabaseConfig{
			Driver:          viper.GetString("DB_DRIVER"),
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetString("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			MaxConcurrentTx: viper.GetInt("DB_MAX_CONCURRENT_TX"),
		},
		Supabase: SupabaseConfig{
			URL:            viper.GetString("SUPABASE_URL"),
			APIKey:         viper.GetString("SUPABASE_ANON_KEY"),
			TimeoutSeconds: viper.GetInt("SUPABASE_TIMEOUT_SECONDS"),
		},
		Mongo: MongoConfig{
			URI:      viper.GetString("MONGO_URI"),
			Database: viper.GetString("MONGO_DATABASE"),
		},
		Local: LocalConfig{
			Path: viper.GetString("LOCAL_DB_PATH"),
		},
		App: AppConfig{
			UploadDir: viper.GetString("APP_UPLOAD_DIR"),
			DataDir:   viper.GetString("APP_DATA_DIR"),
		},
		Cache: CacheConfig{
			Enabled:        viper.GetBool("CACHE_ENABLED"),
			RedisURL:       viper.GetString("REDIS_URL"),
			RedisHost:      viper.GetString("REDIS_HOST"),
			RedisPort:      viper.GetString("REDIS_PORT"),
			RedisPassword:  viper.GetString("REDIS_PASSWORD"),
			RedisDB:        viper.GetInt("REDIS_DB"),
			PlanTTLSeconds: viper.GetInt("CACHE_PLAN_TTL_SECONDS"),
		},
		ObjectStorage: ObjectStorageConfig{
			Enabled:   viper.GetBool("OBJECT_STORAGE_ENABLED"),
			Endpoint:  viper.GetString("OBJECT_STORAGE_ENDPOINT"),
			AccessKey: viper.GetString("OBJECT_STORAGE_ACCESS_KEY"),
			SecretKey: viper.GetString("OBJECT_STORAGE_SECRET_KEY"),
			Bucket:    viper.GetString("OBJECT_STORAGE_BUCKET"),
			Region:    viper.GetString("OBJECT_STORAGE_REGION"),
			UseSSL:    viper.GetBool("OBJECT_STORAGE_USE_SSL"),
			Prefix:    viper.GetString("OBJECT_STORAGE_PREFIX"),
		},
		Scheduler: SchedulerConfig{
			Enabled:    viper.GetBool("SCHEDULER_ENABLED"),
			ReportSpec: viper.GetString("SCHEDULER_REPORT_SPEC"),
			ReportMode: viper.GetString("SCHEDULER_REPORT_MODE"),
		},
		Drive: DriveConfig{
			CredentialsFile: viper.GetString("GOOGLE_CREDENTIALS_FILE"),
			FolderID:        viper.GetString("GOOGLE_DRIVE_FOLDER_ID"),
		},
		Business: BusinessConfig{
			Name:              viper.GetString("BUSINESS_NAME"),
			Address:           viper.GetString("BUSINESS_ADDRESS"),
			Phone:             viper.GetString("BUSINESS_PHONE"),
			Email:             viper.GetString("BUSINESS_EMAIL"),
			GSTIN:             viper.GetString("BUSINESS_GSTIN"),
			InvoicePrefix:     viper.GetString("INVOICE_PREFIX"),
			DefaultTaxPercent: viper.GetFloat64("INVOICE_DEFAULT_TAX_PERCENT"),
			PaymentTermsDays:  viper.GetInt("INVOICE_PAYMENT_TERMS_DAYS"),
			CurrencySymbol:    viper.GetString("CURRENCY_SYMBOL"),
		},
	}
}

func ensureDir(dir string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}
