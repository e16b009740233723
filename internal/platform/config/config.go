package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config reúne la configuración del proceso. Todo viene de env (o de un .env local).
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Storage: DB_DSN => postgres, SQLITE_PATH => sqlite, ninguno => memoria.
	DBDSN      string `env:"DB_DSN"`
	SQLitePath string `env:"SQLITE_PATH"`

	// Sesiones: REDIS_ADDR => redis, si no memoria.
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	CookieSecure  bool          `env:"COOKIE_SECURE" envDefault:"false"`

	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	AppName   string `env:"APP_NAME" envDefault:"vet-clinic"`

	Bootstrap BootstrapAdmin `envPrefix:"BOOTSTRAP_ADMIN_"`
}

// BootstrapAdmin crea el primer administrador cuando no hay usuarios.
type BootstrapAdmin struct {
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	Email    string `env:"EMAIL" envDefault:"admin@example.com"`
	FullName string `env:"FULL_NAME" envDefault:"Administrator"`
}

func (b BootstrapAdmin) Enabled() bool {
	return b.Username != "" && b.Password != ""
}

// Load lee .env (si existe) y luego el entorno.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse solo mira el entorno actual.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, errors.New("SESSION_TTL must be positive")
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}
