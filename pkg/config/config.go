package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y .env opcional).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Admin     AdminConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env       string // development, staging, production
	Name      string
	LogLevel  string
	StoreName string // encabezado del comprobante de venta
}

// AdminConfig usuario administrador creado al arrancar si no existe. Email vacío lo desactiva.
type AdminConfig struct {
	Email    string
	Password string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
	LogQueries  bool
	AutoMigrate bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	DocsPath     string // ruta del swagger.json servido en /docs
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig configuración del cache de dashboard. Addr vacío desactiva el cache.
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	DashboardTTL time.Duration
}

// Enabled indica si hay un Redis configurado.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// RateLimitConfig límite de peticiones por IP. RequestsPerMinute <= 0 lo desactiva.
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// Load lee la configuración desde variables de entorno. Un archivo .env en el
// directorio de trabajo se carga antes sin pisar variables ya definidas.
func Load() (*Config, error) {
	_ = godotenv.Load() // sin .env se usan solo las variables del proceso

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:       getString(v, "APP_ENV", "development"),
			Name:      getString(v, "APP_NAME", "petshop-api"),
			LogLevel:  getString(v, "LOG_LEVEL", "info"),
			StoreName: getString(v, "STORE_NAME", "Pet Shop"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "petshop"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 25),
			MinConns:    getInt(v, "DB_MIN_CONNS", 2),
			LogQueries:  getBool(v, "DB_LOG_QUERIES", false),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "petshop-api"),
		},
		HTTP: HTTPConfig{
			Host:         getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:         getInt(v, "HTTP_PORT", 8080),
			ReadTimeout:  time.Duration(getInt(v, "HTTP_READ_TIMEOUT_SECONDS", 10)) * time.Second,
			WriteTimeout: time.Duration(getInt(v, "HTTP_WRITE_TIMEOUT_SECONDS", 10)) * time.Second,
			DocsPath:     getString(v, "HTTP_DOCS_PATH", "./docs/swagger.json"),
		},
		Redis: RedisConfig{
			Addr:         getString(v, "REDIS_ADDR", ""),
			Password:     getString(v, "REDIS_PASSWORD", ""),
			DB:           getInt(v, "REDIS_DB", 0),
			DashboardTTL: time.Duration(getInt(v, "REDIS_DASHBOARD_TTL_SECONDS", 60)) * time.Second,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getInt(v, "RATE_LIMIT_RPM", 300),
			Burst:             getInt(v, "RATE_LIMIT_BURST", 50),
		},
		Admin: AdminConfig{
			Email:    getString(v, "BOOTSTRAP_ADMIN_EMAIL", ""),
			Password: getString(v, "BOOTSTRAP_ADMIN_PASSWORD", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate revisa combinaciones que impiden arrancar el servicio.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" && c.App.Env != "development" {
		return errors.New("config: JWT_SECRET es obligatorio fuera de development")
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("config: HTTP_PORT inválido: %d", c.HTTP.Port)
	}
	if c.DB.DatabaseURL == "" && c.DB.Port <= 0 {
		return fmt.Errorf("config: DB_PORT inválido: %d", c.DB.Port)
	}
	if c.Admin.Email != "" && len(c.Admin.Password) < 8 {
		return errors.New("config: BOOTSTRAP_ADMIN_PASSWORD debe tener al menos 8 caracteres")
	}
	if c.DB.MinConns > c.DB.MaxConns {
		return fmt.Errorf("config: DB_MIN_CONNS (%d) mayor que DB_MAX_CONNS (%d)", c.DB.MinConns, c.DB.MaxConns)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return n
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}
