package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr   string        `env:"HTTP_ADDR" envDefault:":8080"`
	LocalesDir string        `env:"LOCALES_DIR" envDefault:"locales"`
	LogoPath   string        `env:"LOGO_PATH"`
	QRSize     int           `env:"QR_SIZE" envDefault:"512"`
	CodeTTL    time.Duration `env:"CODE_TTL" envDefault:"1h"`
	MaxCodes   int           `env:"MAX_CODES" envDefault:"1024"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
