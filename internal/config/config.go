package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var killPasswordPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}$`)

// Config holds everything the terminal needs at startup. Values come from an
// optional config file plus POS_-prefixed environment overrides.
type Config struct {
	Addr        string `mapstructure:"addr"`
	DatabaseURL string `mapstructure:"database_url"`
	RedisAddr   string `mapstructure:"redis_addr"`

	SnapshotPath string `mapstructure:"snapshot_path"`

	JWTSecret string `mapstructure:"jwt_secret"`

	TaxRate       float64 `mapstructure:"tax_rate"`
	InvoicePrefix string  `mapstructure:"invoice_prefix"`

	KillAfterSale bool   `mapstructure:"kill_after_sale"`
	KillPassword  string `mapstructure:"kill_password"`

	SerialPort string `mapstructure:"serial_port"`
	SerialBaud int    `mapstructure:"serial_baud"`

	DebounceMillis int `mapstructure:"debounce_millis"`

	CompanyName    string `mapstructure:"company_name"`
	CompanyAddress string `mapstructure:"company_address"`
	CompanyPhone   string `mapstructure:"company_phone"`
	CompanyEmail   string `mapstructure:"company_email"`
	InvoiceTerms   string `mapstructure:"invoice_terms"`
}

// Debounce returns the scan-settle interval shared by the input classifier and
// the serial channel.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMillis) * time.Millisecond
}

// Load reads pos.yaml from the working directory if present, then applies
// environment overrides (POS_ADDR, POS_TAX_RATE, ...).
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("pos")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("addr", ":8080")
	v.SetDefault("database_url", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("snapshot_path", "pos_data.json")
	v.SetDefault("jwt_secret", "super-secret-key")
	v.SetDefault("tax_rate", 8.5)
	v.SetDefault("invoice_prefix", "INV")
	v.SetDefault("kill_after_sale", false)
	v.SetDefault("kill_password", "00000000")
	v.SetDefault("serial_port", "")
	v.SetDefault("serial_baud", 9600)
	v.SetDefault("debounce_millis", 100)
	v.SetDefault("company_name", "Your Store Name")
	v.SetDefault("company_address", "123 Store Street, City, State 12345")
	v.SetDefault("company_phone", "+1 (555) 123-4567")
	v.SetDefault("company_email", "contact@yourstore.com")
	v.SetDefault("invoice_terms", "Payment due within 30 days")

	v.SetEnvPrefix("POS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.TaxRate < 0 {
		return fmt.Errorf("tax_rate must not be negative")
	}
	if !killPasswordPattern.MatchString(c.KillPassword) {
		return fmt.Errorf("kill_password must be 8 hexadecimal characters")
	}
	if c.DebounceMillis <= 0 {
		return fmt.Errorf("debounce_millis must be positive")
	}
	if c.SerialBaud <= 0 {
		return fmt.Errorf("serial_baud must be positive")
	}
	return nil
}
