package config

import (
	"os"
	"strconv"
	"strings"

	"normfit/internal/errors"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the environment variable pointing at an optional YAML config file
const ConfigFileEnv = "NORMFIT_CONFIG"

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Profiling ProfilingConfig `yaml:"profiling"`
	Fit       FitConfig       `yaml:"fit"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string `yaml:"port" validate:"required,numeric"`
	GinMode string `yaml:"gin_mode" validate:"oneof=debug release test"`
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string `yaml:"port" validate:"omitempty,numeric"`
	Enabled bool   `yaml:"enabled"`
}

// FitConfig holds defaults and limits for fit runs
type FitConfig struct {
	DefaultMean     float64 `yaml:"default_mean"`
	DefaultVariance float64 `yaml:"default_variance" validate:"gt=0"`
	DefaultSize     int     `yaml:"default_size" validate:"gte=2"`
	MaxSampleSize   int     `yaml:"max_sample_size" validate:"gtefield=DefaultSize"`
	Alpha           float64 `yaml:"alpha" validate:"gt=0,lt=1"`
	ExpectationMode string  `yaml:"expectation_mode" validate:"oneof=legacy cdf"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=ERROR WARN INFO DEBUG TRACE"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    "8080",
			GinMode: "release",
		},
		Profiling: ProfilingConfig{
			Port:    "6060",
			Enabled: false,
		},
		Fit: FitConfig{
			DefaultMean:     5,
			DefaultVariance: 4,
			DefaultSize:     1000,
			MaxSampleSize:   100000,
			Alpha:           0.05,
			ExpectationMode: "legacy",
		},
		Log: LogConfig{
			Level:  "INFO",
			Format: "text",
		},
	}
}

// Load builds configuration from defaults, the optional YAML file named by
// NORMFIT_CONFIG, and environment variables, in that order, then validates it.
func Load() (*Config, error) {
	config := Default()

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := overlayFile(config, path); err != nil {
			return nil, err
		}
	}

	applyEnv(config)

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// LoadFile reads a YAML file over the defaults without consulting the environment
func LoadFile(path string) (*Config, error) {
	config := Default()
	if err := overlayFile(config, path); err != nil {
		return nil, err
	}
	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func overlayFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return errors.Wrapf(errors.ConfigInvalid(err.Error()), "failed to parse config file %s", path)
	}
	return nil
}

func applyEnv(config *Config) {
	config.Server.Port = getEnvOrDefault("PORT", config.Server.Port)
	config.Server.GinMode = getEnvOrDefault("GIN_MODE", config.Server.GinMode)

	config.Profiling.Port = getEnvOrDefault("PPROF_PORT", config.Profiling.Port)
	config.Profiling.Enabled = getEnvBoolOrDefault("PPROF_ENABLED", config.Profiling.Enabled)

	config.Fit.DefaultMean = getEnvFloatOrDefault("NORMFIT_DEFAULT_MEAN", config.Fit.DefaultMean)
	config.Fit.DefaultVariance = getEnvFloatOrDefault("NORMFIT_DEFAULT_VARIANCE", config.Fit.DefaultVariance)
	config.Fit.DefaultSize = getEnvIntOrDefault("NORMFIT_DEFAULT_SIZE", config.Fit.DefaultSize)
	config.Fit.MaxSampleSize = getEnvIntOrDefault("NORMFIT_MAX_SAMPLE_SIZE", config.Fit.MaxSampleSize)
	config.Fit.Alpha = getEnvFloatOrDefault("NORMFIT_ALPHA", config.Fit.Alpha)
	config.Fit.ExpectationMode = strings.ToLower(getEnvOrDefault("NORMFIT_EXPECTATION_MODE", config.Fit.ExpectationMode))

	config.Log.Level = strings.ToUpper(getEnvOrDefault("LOG_LEVEL", config.Log.Level))
	config.Log.Format = strings.ToLower(getEnvOrDefault("LOG_FORMAT", config.Log.Format))
}

var validate = validator.New()

// Validate checks the struct tags of every section
func Validate(config *Config) error {
	if err := validate.Struct(config); err != nil {
		return errors.ConfigInvalid(err.Error())
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
