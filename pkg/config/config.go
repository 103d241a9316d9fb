package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel string

	GRPCPort int
	HTTPPort int

	// StorefrontAddr is the gRPC address the gateway dials.
	StorefrontAddr string

	Postgres Postgres
	Catalog  Catalog
	Cart     Cart
	Checkout Checkout
	Admin    Admin
	GCP      GCP
	Mail     Mail
	Tracing  Tracing
}

type Postgres struct {
	Host       string
	Port       int
	User       string
	Pass       string
	PassSecret string
	DB         string
	SSLMode    string
}

type Catalog struct {
	// Backend is "postgres" or "firestore".
	Backend        string
	RoutesFile     string
	RedisURL       string
	SearchCacheTTL time.Duration
}

type Cart struct {
	SessionTTL    time.Duration
	SweepInterval time.Duration
	CookieName    string
	CookieSecure  bool
}

type Checkout struct {
	Currency       string
	TaxRatePercent string
	StorePhone     string
	TelegramHandle string
	StoreName      string
}

type Admin struct {
	Emails []string
}

type GCP struct {
	ProjectID       string
	CredentialsFile string
	ImageBucket     string
	PublicBaseURL   string
}

type Mail struct {
	SendGridKey       string
	SendGridKeySecret string
	From              string
	// AdminURL prefixes review links in notification e-mails.
	AdminURL string
}

type Tracing struct {
	OTLPEndpoint string
	Stdout       bool
}

func Load() Config {
	return Config{
		AppEnv:         getEnv("APP_ENV", "dev"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		HTTPPort:       getEnvInt("HTTP_PORT", 8080),
		GRPCPort:       getEnvInt("GRPC_PORT", 8081),
		StorefrontAddr: getEnv("STOREFRONT_GRPC_ADDR", "localhost:8081"),
		Postgres: Postgres{
			Host:       getEnv("POSTGRES_HOST", "localhost"),
			Port:       getEnvInt("POSTGRES_PORT", 5432),
			User:       getEnv("POSTGRES_USER", "phonestore"),
			Pass:       getEnv("POSTGRES_PASSWORD", "phonestorepassword"),
			PassSecret: getEnv("POSTGRES_PASSWORD_SECRET", ""),
			DB:         getEnv("POSTGRES_DB", "phonestore"),
			SSLMode:    getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Catalog: Catalog{
			Backend:        strings.ToLower(getEnv("CATALOG_BACKEND", "postgres")),
			RoutesFile:     getEnv("CATALOG_ROUTES_FILE", ""),
			RedisURL:       getEnv("REDIS_URL", ""),
			SearchCacheTTL: getEnvDuration("SEARCH_CACHE_TTL", 30*time.Second),
		},
		Cart: Cart{
			SessionTTL:    getEnvDuration("CART_SESSION_TTL", 2*time.Hour),
			SweepInterval: getEnvDuration("CART_SWEEP_INTERVAL", time.Minute),
			CookieName:    getEnv("CART_COOKIE_NAME", "cart_session"),
			CookieSecure:  getEnvBool("CART_COOKIE_SECURE", false),
		},
		Checkout: Checkout{
			Currency:       getEnv("STORE_CURRENCY", "PKR"),
			TaxRatePercent: getEnv("STORE_TAX_RATE_PERCENT", "8"),
			StorePhone:     getEnv("STORE_WHATSAPP_PHONE", ""),
			TelegramHandle: getEnv("STORE_TELEGRAM_HANDLE", ""),
			StoreName:      getEnv("STORE_NAME", "Phone Store"),
		},
		Admin: Admin{
			Emails: getEnvList("ADMIN_EMAILS"),
		},
		GCP: GCP{
			ProjectID:       getEnv("GCP_PROJECT_ID", ""),
			CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
			ImageBucket:     getEnv("GCS_IMAGE_BUCKET", ""),
			PublicBaseURL:   getEnv("GCS_PUBLIC_BASE_URL", "https://storage.googleapis.com"),
		},
		Mail: Mail{
			SendGridKey:       getEnv("SENDGRID_API_KEY", ""),
			SendGridKeySecret: getEnv("SENDGRID_API_KEY_SECRET", ""),
			From:              getEnv("MAIL_FROM", ""),
			AdminURL:          getEnv("ADMIN_URL", ""),
		},
		Tracing: Tracing{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Stdout:       getEnvBool("OTEL_TRACES_STDOUT", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// getEnvList splits a comma separated value, dropping blanks.
func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
