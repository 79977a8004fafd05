// Package config resolves settings from flag defaults, an optional YAML
// file, the environment and explicitly set flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix marks the environment variables read as config. A double
// underscore separates nesting levels: VOCABDECK_DB__PATH sets db.path.
const EnvPrefix = "VOCABDECK_"

// DefaultFile is read when present and --config is not given.
const DefaultFile = "vocabdeck.yaml"

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	DB        DBConfig        `koanf:"db"`
	Reference ReferenceConfig `koanf:"reference"`
	Log       LogConfig       `koanf:"log"`
	Migrate   MigrateConfig   `koanf:"migrate"`
}

type ServerConfig struct {
	Addr      string `koanf:"addr" validate:"required,hostname_port"`
	StaticDir string `koanf:"static_dir" validate:"omitempty,dir"`
	Mode      string `koanf:"mode" validate:"oneof=release debug test"`
}

type DBConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// ReferenceConfig locates the seed datasets. When GitURL is set, Dir is a
// checkout of that repository.
type ReferenceConfig struct {
	Dir            string `koanf:"dir" validate:"required"`
	IrregularVerbs string `koanf:"irregular_verbs" validate:"required"`
	PhrasalVerbs   string `koanf:"phrasal_verbs" validate:"required"`
	GitURL         string `koanf:"git_url"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

// MigrateConfig selects the hosted database to copy from: a PostgREST
// endpoint (URL and Key) or a Postgres DSN.
type MigrateConfig struct {
	URL      string        `koanf:"url" validate:"omitempty,url"`
	Key      string        `koanf:"key" validate:"required_with=URL"`
	DSN      string        `koanf:"dsn"`
	PageSize int           `koanf:"page_size" validate:"gt=0"`
	Timeout  time.Duration `koanf:"timeout" validate:"gt=0"`
}

// RegisterFlags defines every config key as a flag on fs. The flag
// defaults are the built-in defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", DefaultFile, "path to a YAML config file")

	fs.String("server.addr", "0.0.0.0:8081", "HTTP listen address")
	fs.String("server.static_dir", "", "directory holding the front end (embedded placeholder when empty)")
	fs.String("server.mode", "release", "gin mode: release, debug or test")

	fs.String("db.path", "data/flashcards.db", "SQLite database file")

	fs.String("reference.dir", ".", "directory holding the reference datasets")
	fs.String("reference.irregular_verbs", "irregular_verbs", "irregular verbs dataset file name")
	fs.String("reference.phrasal_verbs", "verb_governance", "verb governance dataset file name")
	fs.String("reference.git_url", "", "git repository to clone or pull into reference.dir before seeding")

	fs.String("log.level", "info", "log level: debug, info, warn or error")
	fs.String("log.format", "text", "log format: text or json")

	fs.String("migrate.url", "", "PostgREST base URL of the hosted database")
	fs.String("migrate.key", "", "API key for migrate.url")
	fs.String("migrate.dsn", "", "Postgres DSN of the hosted database")
	fs.Int("migrate.page_size", 1000, "rows per PostgREST page")
	fs.Duration("migrate.timeout", 30*time.Second, "HTTP timeout per PostgREST page")
}

// LoadDotEnv exports variables from the given .env files (".env" when none
// are named). Missing files are ignored; variables already set win.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}
	return nil
}

// Load resolves the configuration for a flag set built by RegisterFlags.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	path, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	if err := loadFile(k, path, flags.Changed("config")); err != nil {
		return nil, err
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
			return strings.ReplaceAll(key, "__", "."), value
		},
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	// Set flags override everything; unset flags only fill missing keys.
	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// loadFile reads the YAML file at path. A missing file is only an error
// when the path was asked for explicitly.
func loadFile(k *koanf.Koanf, path string, explicit bool) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}
