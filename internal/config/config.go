package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"golang.org/x/text/currency"

	"github.com/nikolayk812/storefront/internal/idgen"
	"github.com/nikolayk812/storefront/internal/settlement"
)

const envPrefix = "STOREFRONT_"

type Config struct {
	App struct {
		Name        string `koanf:"name"`
		Env         string `koanf:"env"`
		LogLevel    string `koanf:"log_level"`
		LogFile     string `koanf:"log_file"`
		MetricsAddr string `koanf:"metrics_addr"`
	} `koanf:"app"`

	Postgres struct {
		DSN             string        `koanf:"dsn"`
		MaxConns        int32         `koanf:"max_conns"`
		MinConns        int32         `koanf:"min_conns"`
		ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	} `koanf:"postgres"`

	Redis struct {
		Addr           string        `koanf:"addr"`
		Password       string        `koanf:"password"`
		DB             int           `koanf:"db"`
		IdempotencyTTL time.Duration `koanf:"idempotency_ttl"`
	} `koanf:"redis"`

	Catalog struct {
		Currency string `koanf:"currency"`
		SeedFile string `koanf:"seed_file"`
	} `koanf:"catalog"`

	IDGen struct {
		CustomerPrefix     string `koanf:"customer_prefix"`
		OrderPrefix        string `koanf:"order_prefix"`
		TransactionPrefix  string `koanf:"transaction_prefix"`
		CustomerMaxRetries int    `koanf:"customer_max_retries"`
		OrderMaxRetries    int    `koanf:"order_max_retries"`
	} `koanf:"idgen"`

	Payment struct {
		Gateway string `koanf:"gateway"`
	} `koanf:"payment"`
}

// Load reads base.yaml, then the optional <envName>.yaml, then STOREFRONT_ variables,
// e.g. STOREFRONT_POSTGRES__DSN, STOREFRONT_REDIS__ADDR.
func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(filepath.Join(pathDir, "base.yaml")), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	if envName != "" {
		overlay := filepath.Join(pathDir, envName+".yaml")
		if _, err := os.Stat(overlay); err == nil {
			if err := k.Load(file.Provider(overlay), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("load %s: %w", envName, err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if cfg.App.Env == "" {
		cfg.App.Env = envName
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("cfg.Validate: %w", err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Postgres.DSN == "" {
		return errors.New("postgres.dsn required")
	}

	if _, err := settlement.New(c.Payment.Gateway); err != nil {
		return fmt.Errorf("payment.gateway: %w", err)
	}

	if _, err := c.Currency(); err != nil {
		return err
	}

	if err := c.IDGenConfig().Validate(); err != nil {
		return fmt.Errorf("idgen: %w", err)
	}

	return nil
}

// Currency is the catalog currency, USD when unset.
func (c Config) Currency() (currency.Unit, error) {
	if c.Catalog.Currency == "" {
		return currency.USD, nil
	}

	unit, err := currency.ParseISO(c.Catalog.Currency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("catalog.currency[%s]: %w", c.Catalog.Currency, err)
	}

	return unit, nil
}

// IDGenConfig fills unset fields with idgen defaults.
func (c Config) IDGenConfig() idgen.Config {
	cfg := idgen.DefaultConfig()

	if c.IDGen.CustomerPrefix != "" {
		cfg.CustomerPrefix = c.IDGen.CustomerPrefix
	}
	if c.IDGen.OrderPrefix != "" {
		cfg.OrderPrefix = c.IDGen.OrderPrefix
	}
	if c.IDGen.TransactionPrefix != "" {
		cfg.TransactionPrefix = c.IDGen.TransactionPrefix
	}
	if c.IDGen.CustomerMaxRetries != 0 {
		cfg.CustomerMaxRetries = c.IDGen.CustomerMaxRetries
	}
	if c.IDGen.OrderMaxRetries != 0 {
		cfg.OrderMaxRetries = c.IDGen.OrderMaxRetries
	}

	return cfg
}

func (c Config) IdempotencyEnabled() bool {
	return c.Redis.Addr != ""
}
