package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nPaBwaYT/desblock/codec"
)

// Config holds every option of the desblock tool.
type Config struct {
	// Key material, read as text (zero-padded to 64 bits) or as 16 hex digits.
	Key string `mapstructure:"key"`
	// How Key is interpreted. Options: text, hex
	KeyFormat string `mapstructure:"key_format"`
	// Padding scheme for messages. Options: pkcs7, zeros
	Padding string `mapstructure:"padding"`
	// Number of goroutines transforming blocks of one message.
	Workers int `mapstructure:"workers"`
	// Reject keys whose bytes do not have odd parity.
	CheckParity bool `mapstructure:"check_parity"`

	Cache struct {
		// How long derived round keys are kept. 0 keeps them for the whole run.
		TTL time.Duration `mapstructure:"ttl"`
	} `mapstructure:"cache"`

	Logging struct {
		// Minimum level of a log required to be written. Options: debug, info, warn, error
		LogLevel string `mapstructure:"log_level"`
		// Full path to file to which logs will be written. Blank will write to stderr.
		LogFilePath string `mapstructure:"log_file_path"`
	} `mapstructure:"logging"`
}

const envVarPrefix = "DESBLOCK"

// flagKeys maps command line flag names onto config keys.
var flagKeys = map[string]string{
	"key":          "key",
	"key-format":   "key_format",
	"padding":      "padding",
	"workers":      "workers",
	"check-parity": "check_parity",
	"log-level":    "logging.log_level",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("key", "")
	v.SetDefault("key_format", "text")
	v.SetDefault("padding", "pkcs7")
	v.SetDefault("workers", 1)
	v.SetDefault("check_parity", false)
	v.SetDefault("cache.ttl", "0s")
	v.SetDefault("logging.log_level", "warn")
	v.SetDefault("logging.log_file_path", "")
}

// LoadConfig reads config.yaml from configPath when one is given, then layers
// environment variables and any changed flags on top.
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.AddConfigPath(configPath)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: no config file in path %s", configPath)
			}
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(envVarPrefix)
	v.AutomaticEnv()

	// This allows us to set nested yaml config options through environment
	// variables. For example, logging.log_level can be set using: DESBLOCK_LOGGING_LOG_LEVEL
	for _, k := range v.AllKeys() {
		envVar := strings.ReplaceAll(strings.ToUpper(k), ".", "_")
		if err := v.BindEnv(k, envVarPrefix+"_"+envVar); err != nil {
			return nil, fmt.Errorf("error binding %s to %s: %w", k, envVarPrefix+"_"+envVar, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", name, err)
				}
			}
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config object: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects option values the tool cannot act on.
func (c *Config) Validate() error {
	switch strings.ToLower(c.KeyFormat) {
	case "text", "hex":
	default:
		return fmt.Errorf("invalid key_format %q: must be text or hex", c.KeyFormat)
	}
	if _, err := codec.PaddingByName(c.Padding); err != nil {
		return fmt.Errorf("invalid padding: %w", err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("invalid workers %d: must be at least 1", c.Workers)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("invalid cache.ttl %v: must not be negative", c.Cache.TTL)
	}
	return nil
}
