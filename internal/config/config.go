// Package config provides configuration loading and validation for the
// treewire exporter.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidFormat     = errors.New("invalid output format")
	ErrInvalidWorkers    = errors.New("worker count must be positive")
	ErrInvalidStringSize = errors.New("max string size must be positive")
)

// Output formats.
const (
	FormatJSON   = "json"
	FormatYojson = "yjson"
	FormatBiniou = "biniou"
)

// Default configuration values.
const (
	defaultFormat        = FormatJSON
	defaultWorkers       = 4
	defaultMaxStringSize = 65535
)

// Config holds all configuration for the exporter.
type Config struct {
	Output  OutputConfig  `mapstructure:"output"`
	Paths   PathsConfig   `mapstructure:"paths"`
	Dedup   DedupConfig   `mapstructure:"dedup"`
	Export  ExportConfig  `mapstructure:"export"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// OutputConfig controls where and how encoded units are written.
type OutputConfig struct {
	// Format selects the codec: json, yjson, or biniou.
	Format string `mapstructure:"format"`

	// Pattern is the output file pattern. A leading '%' is substituted
	// with the input file path.
	Pattern string `mapstructure:"pattern"`

	// Compress wraps output sinks in LZ4 framing.
	Compress bool `mapstructure:"compress"`
}

// PathsConfig controls source path normalization.
type PathsConfig struct {
	BasePath            string `mapstructure:"base_path"`
	RepoRoot            string `mapstructure:"repo_root"`
	SysRoot             string `mapstructure:"sys_root"`
	KeepExternalPaths   bool   `mapstructure:"keep_external_paths"`
	AllowSiblingsToRoot bool   `mapstructure:"allow_siblings_to_root"`
	ResolveSymlinks     bool   `mapstructure:"resolve_symlinks"`
}

// DedupConfig controls the cross-process deduplication and translation
// services. Empty directories disable the corresponding service.
type DedupConfig struct {
	Dir            string `mapstructure:"dir"`
	RecordKeys     bool   `mapstructure:"record_keys"`
	TranslationDir string `mapstructure:"translation_dir"`
}

// ExportConfig holds encoder settings.
type ExportConfig struct {
	Workers       int  `mapstructure:"workers"`
	MaxStringSize int  `mapstructure:"max_string_size"`
	DumpComments  bool `mapstructure:"dump_comments"`
	TextPointers  bool `mapstructure:"text_pointers"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(".treewire")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("$HOME")
	}

	viperCfg.SetEnvPrefix("TREEWIRE")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validate(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// Validate checks the configuration. Callers that mutate a loaded
// config, such as command-line flag overrides, run it again afterwards.
func (c *Config) Validate() error {
	return validate(c)
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("output.format", defaultFormat)
	viperCfg.SetDefault("output.pattern", "")
	viperCfg.SetDefault("output.compress", false)

	viperCfg.SetDefault("paths.base_path", "")
	viperCfg.SetDefault("paths.repo_root", "")
	viperCfg.SetDefault("paths.sys_root", "")
	viperCfg.SetDefault("paths.keep_external_paths", false)
	viperCfg.SetDefault("paths.allow_siblings_to_root", false)
	viperCfg.SetDefault("paths.resolve_symlinks", false)

	viperCfg.SetDefault("dedup.dir", "")
	viperCfg.SetDefault("dedup.record_keys", false)
	viperCfg.SetDefault("dedup.translation_dir", "")

	viperCfg.SetDefault("export.workers", defaultWorkers)
	viperCfg.SetDefault("export.max_string_size", defaultMaxStringSize)
	viperCfg.SetDefault("export.dump_comments", false)
	viperCfg.SetDefault("export.text_pointers", false)

	viperCfg.SetDefault("logging.level", "info")
	viperCfg.SetDefault("logging.format", "text")
}

// validate validates the configuration.
func validate(config *Config) error {
	switch config.Output.Format {
	case FormatJSON, FormatYojson, FormatBiniou:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, config.Output.Format)
	}

	if config.Export.Workers <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, config.Export.Workers)
	}

	if config.Export.MaxStringSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidStringSize, config.Export.MaxStringSize)
	}

	return nil
}
