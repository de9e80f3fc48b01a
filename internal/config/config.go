package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/equity/internal/apperrors"
	"github.com/cleared-dev/equity/internal/equity"
	"github.com/cleared-dev/equity/internal/model"
)

// FileName is the config file at the repo root.
const FileName = "equity.yaml"

// Config represents the top-level equity.yaml configuration.
type Config struct {
	Company CompanyConfig  `yaml:"company" validate:"required"`
	Fiscal  FiscalConfig   `yaml:"fiscal"`
	Server  ServerConfig   `yaml:"server"`
	Git     GitConfig      `yaml:"git"`
	Catalog *CatalogConfig `yaml:"catalog,omitempty"`
}

// CompanyConfig identifies the reporting entity.
type CompanyConfig struct {
	Name     string `yaml:"name" validate:"required"`
	Currency string `yaml:"currency" validate:"required,iso4217"`
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start" validate:"required,datetime=01-02"` // "MM-DD" format, e.g. "01-01"
}

// ServerConfig configures `equity serve`.
type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required,hostname_port"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name" validate:"required_if=AutoCommit true"`
	AuthorEmail string `yaml:"author_email" validate:"omitempty,email"`
}

// CatalogConfig replaces the default column catalog.
type CatalogConfig struct {
	Columns []equity.Column        `yaml:"columns" validate:"required,min=1,dive"`
	Signals *equity.SignalPrefixes `yaml:"signals,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Path returns the config file path under a repo root.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, FileName)
}

// Load reads an equity.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(companyName, currency string) *Config {
	if currency == "" {
		currency = equity.DefaultCurrency
	}
	return &Config{
		Company: CompanyConfig{
			Name:     companyName,
			Currency: currency,
		},
		Fiscal: FiscalConfig{
			YearStart: "01-01",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Equity",
			AuthorEmail: "equity@cleared.dev",
		},
	}
}

// Validate checks the struct tags and, when present, the custom catalog.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("validating config: %w", err)
	}
	if c.Catalog != nil {
		if _, err := c.BuildCatalog(); err != nil {
			return err
		}
	}
	return nil
}

// BuildCatalog returns the configured column catalog, or the default one.
func (c *Config) BuildCatalog() (*equity.Catalog, error) {
	if c.Catalog == nil {
		return equity.DefaultCatalog(), nil
	}
	signals := equity.DefaultSignals()
	if c.Catalog.Signals != nil {
		signals = *c.Catalog.Signals
	}
	cat, err := equity.NewCatalog(c.Catalog.Columns, signals)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	return cat, nil
}

// FiscalYear returns the fiscal year that starts in the given calendar year.
func (c *Config) FiscalYear(year int) (model.Period, error) {
	start, err := time.Parse("01-02", c.Fiscal.YearStart)
	if err != nil {
		return model.Period{}, fmt.Errorf("parsing fiscal year_start %q: %w", c.Fiscal.YearStart, err)
	}
	return model.FiscalYear(year, start.Month(), start.Day()), nil
}

// Formatter returns the amount formatter for the company currency.
func (c *Config) Formatter() equity.CurrencyFormatter {
	return equity.NewCurrencyFormatter(c.Company.Currency)
}
