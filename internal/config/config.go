package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	CooldownMemory = "memory"
	CooldownRedis  = "redis"
)

type AppConfig struct {
	Env     string `yaml:"env" env:"ENV" env-default:"prod"`
	BaseDir string `yaml:"base_dir" env:"BASE_DIR"`
	ApiID   int32  `yaml:"api_id" env:"TELEGRAM_API_ID"`
	ApiHash string `yaml:"api_hash" env:"TELEGRAM_API_HASH"`

	KeywordsFile string `yaml:"keywords_file" env:"KEYWORDS_FILE"`

	Owner    OwnerConfig    `yaml:"owner"`
	Cooldown CooldownConfig `yaml:"cooldown"`
	Redis    RedisConfig    `yaml:"redis"`
	Notify   NotifyConfig   `yaml:"notify"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type OwnerConfig struct {
	ID       int64  `yaml:"id" env:"OWNER_ID"`
	Username string `yaml:"username" env:"OWNER_USERNAME"`
}

type CooldownConfig struct {
	Window  time.Duration `yaml:"window" env:"COOLDOWN_WINDOW" env-default:"10m"`
	Backend string        `yaml:"backend" env:"COOLDOWN_BACKEND" env-default:"memory"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type NotifyConfig struct {
	Rate  float64 `yaml:"rate" env:"NOTIFY_RATE" env-default:"1"`
	Burst int     `yaml:"burst" env:"NOTIFY_BURST" env-default:"3"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr" env:"METRICS_ADDR"`
}

// Load читает настройки: .env, затем YAML (если задан путь) и переменные окружения
func Load() (*AppConfig, error) {
	return LoadPath(fetchConfigPath())
}

// LoadPath: переменные окружения перекрывают значения из файла.
// Пустой path — только окружение.
func LoadPath(path string) (*AppConfig, error) {
	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg AppConfig
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфига: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) Validate() error {
	var errs []error
	if c.ApiID == 0 || c.ApiHash == "" || c.BaseDir == "" {
		errs = append(errs, errors.New("TELEGRAM_API_ID, TELEGRAM_API_HASH, BASE_DIR должны быть заданы"))
	}
	if c.Owner.ID == 0 && c.Owner.Username == "" {
		errs = append(errs, errors.New("OWNER_ID или OWNER_USERNAME должен быть задан"))
	}
	if c.Cooldown.Window <= 0 {
		errs = append(errs, fmt.Errorf("invalid COOLDOWN_WINDOW: %s", c.Cooldown.Window))
	}
	switch c.Cooldown.Backend {
	case CooldownMemory, CooldownRedis:
	default:
		errs = append(errs, fmt.Errorf("invalid COOLDOWN_BACKEND %q: want %s or %s", c.Cooldown.Backend, CooldownMemory, CooldownRedis))
	}
	if c.Notify.Rate < 0 {
		errs = append(errs, fmt.Errorf("invalid NOTIFY_RATE: %v", c.Notify.Rate))
	}
	return errors.Join(errs...)
}

// fetchConfigPath fetches config path from command line flag or environment variable.
// Priority: flag > env > default.
// Default value is empty string.
func fetchConfigPath() string {
	var res string

	if f := flag.Lookup("config"); f != nil {
		res = f.Value.String()
	} else {
		flag.StringVar(&res, "config", "", "path to config file")
		flag.Parse()
	}

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}
	return res
}
