package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Hardware modes
const (
	HardwareAuto = "auto"
	HardwareMock = "mock"
)

// Config holds application configuration
type Config struct {
	Port           string        `mapstructure:"port"`
	HTTPPort       string        `mapstructure:"http_port"`
	Hardware       string        `mapstructure:"hardware"` // "auto" | "mock"
	I2CBus         string        `mapstructure:"i2c_bus"`
	W1Path         string        `mapstructure:"w1_path"`
	W1FamilyPrefix string        `mapstructure:"w1_family_prefix"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	LogLevel       string        `mapstructure:"log_level"`
	TLSCert        string        `mapstructure:"tls_cert"` // path to this service's certificate
	TLSKey         string        `mapstructure:"tls_key"`  // path to this service's private key
	TLSCA          string        `mapstructure:"tls_ca"`   // path to the CA certificate
}

var defaults = map[string]any{
	"port":             "50051",
	"http_port":        "6000",
	"hardware":         HardwareAuto,
	"i2c_bus":          "1",
	"w1_path":          "/sys/bus/w1/devices/",
	"w1_family_prefix": "10-",
	"poll_interval":    30 * time.Second,
	"log_level":        "info",
	"tls_cert":         "",
	"tls_key":          "",
	"tls_ca":           "",
}

// Load reads configuration from environment variables
func Load() (Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Hardware {
	case HardwareAuto, HardwareMock:
	default:
		return fmt.Errorf("invalid HARDWARE %q: want %q or %q", c.Hardware, HardwareAuto, HardwareMock)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("invalid POLL_INTERVAL %s: must be positive", c.PollInterval)
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return fmt.Errorf("TLS_CERT and TLS_KEY must be set together")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return nil
}

// Level returns the configured log level
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
