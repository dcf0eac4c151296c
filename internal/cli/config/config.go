package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/conduit-lang/modeltypes/internal/orm/codegen"
)

// Config represents the modeltypes configuration
type Config struct {
	Database    DatabaseConfig    `mapstructure:"database"`
	Schema      SchemaConfig      `mapstructure:"schema"`
	Models      ModelsConfig      `mapstructure:"models"`
	Annotations AnnotationsConfig `mapstructure:"annotations"`
	Inference   InferenceConfig   `mapstructure:"inference"`
}

// DatabaseConfig selects the dialect and, optionally, a live connection
type DatabaseConfig struct {
	Dialect string `mapstructure:"dialect"`
	Driver  string `mapstructure:"driver"`
	URL     string `mapstructure:"url"`
}

// SchemaConfig points at the static schema file
type SchemaConfig struct {
	File string `mapstructure:"file"`
}

// ModelsConfig points at the model manifest
type ModelsConfig struct {
	File string `mapstructure:"file"`
}

// AnnotationsConfig controls how inferred types are rendered
type AnnotationsConfig struct {
	Format               string `mapstructure:"format"`
	TemporalClass        string `mapstructure:"temporal_class"`
	BuilderType          string `mapstructure:"builder_type"`
	WriteModelMagicWhere bool   `mapstructure:"write_model_magic_where"`
}

// InferenceConfig tunes the inference run
type InferenceConfig struct {
	Workers int `mapstructure:"workers"`
}

// Load loads the configuration from modeltypes.yml or modeltypes.yaml in dir.
// A missing file is not an error; defaults and MODELTYPES_* variables apply.
// Values are not validated here so callers can apply overrides first.
func Load(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("database.dialect", "mysql")
	v.SetDefault("database.driver", "pgx")
	v.SetDefault("database.url", "")
	v.SetDefault("schema.file", "schema.yml")
	v.SetDefault("models.file", "models.yml")
	v.SetDefault("annotations.format", codegen.FormatDocblock)
	v.SetDefault("annotations.temporal_class", codegen.DefaultTemporalClass)
	v.SetDefault("annotations.builder_type", codegen.DefaultBuilderType)
	v.SetDefault("annotations.write_model_magic_where", true)
	v.SetDefault("inference.workers", 1)

	if dir == "" {
		dir = "."
	}
	v.SetConfigName("modeltypes")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("MODELTYPES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Dialect) == "" {
		return fmt.Errorf("database.dialect must not be empty")
	}
	if c.Inference.Workers < 1 {
		return fmt.Errorf("inference.workers must be at least 1, got: %d", c.Inference.Workers)
	}
	if _, err := codegen.NewRenderer(c.Annotations.Format, c.Annotations.TemporalClass); err != nil {
		return fmt.Errorf("annotations.format: %w", err)
	}
	return nil
}
