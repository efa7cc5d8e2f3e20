package limitbook

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Instrument string `yaml:"instrument" mapstructure:"instrument"`
	LogLevel   string `yaml:"log_level" mapstructure:"log_level"`
	BufferSize int64  `yaml:"buffer_size" mapstructure:"buffer_size"`
	// TickSize is the price of one tick, e.g. "0.01".
	TickSize string `yaml:"tick_size" mapstructure:"tick_size"`
}

func DefaultConfig() Config {
	return Config{
		Instrument: "DEFAULT",
		LogLevel:   "info",
		BufferSize: defaultBufferSize,
		TickSize:   "1",
	}
}

// LoadConfig reads path, or limitbook.yaml from ./config or the working
// directory when path is empty. A missing default file is not an error.
// LIMITBOOK_* environment variables override file values, e.g.
// LIMITBOOK_LOG_LEVEL overrides log_level.
func LoadConfig(path string) (Config, error) {
	def := DefaultConfig()
	v := viper.New()
	v.SetDefault("instrument", def.Instrument)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("buffer_size", def.BufferSize)
	v.SetDefault("tick_size", def.TickSize)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("limitbook")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("LIMITBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if _, err := cfg.Tick(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Tick() (decimal.Decimal, error) {
	tick, err := decimal.NewFromString(c.TickSize)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("tick_size %q: %w", c.TickSize, err)
	}
	if tick.Sign() <= 0 {
		return decimal.Decimal{}, fmt.Errorf("tick_size %q: must be positive", c.TickSize)
	}
	return tick, nil
}
