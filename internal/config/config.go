package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "AIRCON"

// Config is the typed view of config.yml plus AIRCON_* environment overrides.
type Config struct {
	DB      DBConfig      `mapstructure:"db"`
	Cache   CacheConfig   `mapstructure:"cache"`
	API     APIConfig     `mapstructure:"api"`
	Run     RunConfig     `mapstructure:"run"`
	Log     LogConfig     `mapstructure:"log"`
	MQTT    MQTTConfig    `mapstructure:"mqtt"`
	Server  ServerConfig  `mapstructure:"server"`
	Control ControlConfig `mapstructure:"control"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig points at the telemetry log written by the external sensor logger.
type CacheConfig struct {
	Path   string        `mapstructure:"path"`
	MaxAge time.Duration `mapstructure:"max_age"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type RunConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// MQTTConfig enables decision publishing when Broker is non-empty.
type MQTTConfig struct {
	Broker   string `mapstructure:"broker"`
	Topic    string `mapstructure:"topic"`
	ClientID string `mapstructure:"client_id"`
}

type ServerConfig struct {
	Port   string `mapstructure:"port"`
	APIKey string `mapstructure:"api_key"`
}

// ControlConfig holds the hysteresis band, target set-points and cooldowns.
type ControlConfig struct {
	RangeLow       float64       `mapstructure:"range_low"`
	RangeHigh      float64       `mapstructure:"range_high"`
	LowSetpoint    string        `mapstructure:"low_setpoint"`
	HighSetpoint   string        `mapstructure:"high_setpoint"`
	ChangeCooldown time.Duration `mapstructure:"change_cooldown"`
	OffCooldown    time.Duration `mapstructure:"off_cooldown"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.path", "remo.db")
	v.SetDefault("cache.path", "templog.txt")
	v.SetDefault("cache.max_age", 2*time.Minute)
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("run.timeout", 30*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.topic", "aircon/controller/events")
	v.SetDefault("mqtt.client_id", "aircon-controller")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.api_key", "")
	v.SetDefault("control.range_low", 27.0)
	v.SetDefault("control.range_high", 29.0)
	v.SetDefault("control.low_setpoint", "28")
	v.SetDefault("control.high_setpoint", "30")
	v.SetDefault("control.change_cooldown", 5*time.Minute)
	v.SetDefault("control.off_cooldown", 10*time.Minute)
}

// Load reads configuration. When file is empty, config.yml is looked up in
// the usual locations and its absence is not an error.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("configs")
		v.AddConfigPath("$HOME/.config/aircon-controller")
		v.AddConfigPath("/etc/aircon-controller")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that would make the controller misbehave.
func (c *Config) Validate() error {
	if c.DB.Path == "" {
		return errors.New("db.path must not be empty")
	}
	if c.Control.RangeLow >= c.Control.RangeHigh {
		return fmt.Errorf("control.range_low (%.1f) must be below control.range_high (%.1f)",
			c.Control.RangeLow, c.Control.RangeHigh)
	}
	if c.Control.LowSetpoint == "" || c.Control.HighSetpoint == "" {
		return errors.New("control set-points must not be empty")
	}
	if c.API.Timeout <= 0 {
		return errors.New("api.timeout must be positive")
	}
	if c.Run.Timeout <= 0 {
		return errors.New("run.timeout must be positive")
	}
	return nil
}
