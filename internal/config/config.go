package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DB      DBConfig
	Storage StorageConfig
	JWT     JWTConfig
	Server  ServerConfig
	OIDC    OIDCConfig
	Upload  UploadConfig
}

type DBConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

// StorageConfig selects the object store holding uploaded images.
// Backend is "minio" or "s3"; both speak the S3 protocol.
type StorageConfig struct {
	Backend   string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

type ServerConfig struct {
	Port         string
	FrontendURL  string
	CookieSecure bool
}

type OIDCConfig struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       string
}

// Enabled reports whether enough is configured to talk to an identity provider.
func (o OIDCConfig) Enabled() bool {
	return o.IssuerURL != "" && o.ClientID != ""
}

func (o OIDCConfig) ScopeList() []string {
	var scopes []string
	for _, s := range strings.Split(o.Scopes, ",") {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, s)
		}
	}
	return scopes
}

type UploadConfig struct {
	MaxImageBytes int64
}

func (d DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first; variables already set in the environment win.
func Load() *Config {
	_ = godotenv.Load()

	region := getEnv("S3_REGION", "us-east-1")
	backend := strings.ToLower(getEnv("STORAGE_BACKEND", "minio"))
	endpoint := getEnv("STORAGE_ENDPOINT", "")
	if endpoint == "" {
		if backend == "s3" {
			endpoint = fmt.Sprintf("s3.%s.amazonaws.com", region)
		} else {
			endpoint = "localhost:9000"
		}
	}

	port := getEnv("SERVER_PORT", "8080")

	return &Config{
		DB: DBConfig{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "trophyvault"),
			Password:   getEnv("DB_PASSWORD", "trophyvault_secret"),
			Name:       getEnv("DB_NAME", "trophyvault"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			SQLitePath: getEnv("DB_SQLITE_PATH", "trophyvault.db"),
		},
		Storage: StorageConfig{
			Backend:   backend,
			Endpoint:  endpoint,
			AccessKey: getEnv("STORAGE_ACCESS_KEY", "trophyvault"),
			SecretKey: getEnv("STORAGE_SECRET_KEY", "trophyvault_secret"),
			Bucket:    getEnv("STORAGE_BUCKET", "trophyvault"),
			Region:    region,
			UseSSL:    getEnvAsBool("STORAGE_USE_SSL", backend == "s3"),
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", "change-me-in-production"),
			ExpirationHours: getEnvAsPositiveInt("JWT_EXPIRATION_HOURS", 24*7),
		},
		Server: ServerConfig{
			Port:         port,
			FrontendURL:  strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
			CookieSecure: getEnvAsBool("COOKIE_SECURE", false),
		},
		OIDC: OIDCConfig{
			IssuerURL:    getEnv("OIDC_ISSUER_URL", ""),
			ClientID:     getEnv("OIDC_CLIENT_ID", ""),
			ClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("OIDC_REDIRECT_URL", fmt.Sprintf("http://localhost:%s/api/callback", port)),
			Scopes:       getEnv("OIDC_SCOPES", "openid,email,profile"),
		},
		Upload: UploadConfig{
			MaxImageBytes: int64(getEnvAsPositiveInt("UPLOAD_MAX_IMAGE_BYTES", 5*1024*1024)),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvAsPositiveInt is getEnvAsInt for limits where zero or less has no meaning.
func getEnvAsPositiveInt(key string, fallback int) int {
	if value := getEnvAsInt(key, fallback); value > 0 {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
