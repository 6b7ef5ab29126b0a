package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config represents the quill configuration.
type Config struct {
	Provider         string           `koanf:"provider"`
	Model            string           `koanf:"model"`
	Style            string           `koanf:"style"`
	Format           string           `koanf:"format"`
	SummaryMaxLength int              `koanf:"summary_max_length"`
	LLMDiffBullets   bool             `koanf:"llm_diff_bullets"`
	Generation       GenerationConfig `koanf:"generation"`
	Diff             DiffConfig       `koanf:"diff"`
	Cache            CacheConfig      `koanf:"cache"`
	Privacy          PrivacyConfig    `koanf:"privacy"`
	Logging          LoggingConfig    `koanf:"logging"`
}

// GenerationConfig controls the generation backend's sampling parameters.
type GenerationConfig struct {
	MaxTokens   int     `koanf:"max_tokens"`
	Temperature float64 `koanf:"temperature"`
	TopP        float64 `koanf:"top_p"`
}

// DiffConfig controls staged-diff collection.
type DiffConfig struct {
	ContextLines int      `koanf:"context_lines"`
	MaxDiffBytes int      `koanf:"max_diff_bytes"`
	Include      []string `koanf:"include"`
	Exclude      []string `koanf:"exclude"`
}

// CacheConfig controls generation-response caching.
type CacheConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Dir        string `koanf:"dir"`
	TTLSeconds int    `koanf:"ttl_seconds"`
}

// PrivacyConfig controls secret redaction before diffs leave the machine.
type PrivacyConfig struct {
	RedactSecrets bool `koanf:"redact_secrets"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns a Config with all defaults applied.
func Default() *Config {
	return &Config{
		Provider:         "anthropic",
		Model:            "claude-sonnet-4-20250514",
		Style:            "conventional",
		Format:           "text",
		SummaryMaxLength: 500,
		LLMDiffBullets:   false,
		Generation: GenerationConfig{
			MaxTokens:   512,
			Temperature: 0.2,
			TopP:        1.0,
		},
		Diff: DiffConfig{
			ContextLines: 3,
			MaxDiffBytes: 500000,
			Include:      []string{"**/*"},
			Exclude:      []string{"vendor/**", "**/*.gen.go", "**/dist/**", "**/*.lock"},
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 86400,
		},
		Privacy: PrivacyConfig{
			RedactSecrets: true,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for quill.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "quill"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "quill"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "quill"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "quill"), nil
	default:
		return filepath.Join(home, ".config", "quill"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load builds the effective config by merging: defaults <- file <- env <-
// overrides. The overrides map comes from CLI flags; only set keys apply.
func Load(overrides map[string]string) (*Config, error) {
	k := koanf.New(".")

	cfg := Default()
	if err := k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// QUILL_CACHE__TTL_SECONDS -> cache.ttl_seconds. Double underscore
	// separates nesting levels; single underscore stays within a key.
	err = k.Load(env.Provider("QUILL_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "QUILL_")
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	for key, value := range overrides {
		if value == "" {
			continue
		}
		if err := SetField(cfg, key, value); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// LoadFile returns defaults overlaid with just the config file, ignoring
// env vars. Used by `config set` so one edit doesn't bake env state into
// the file.
func LoadFile() (*Config, error) {
	k := koanf.New(".")

	cfg := Default()
	if err := k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// Marshal renders the config as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	data, err := yaml.Parser().Marshal(k.Raw())
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// Save writes the config to the config file as YAML.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// SetField sets a single config field by dotted key name. Returns an error
// if the key is unknown or the value does not parse.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "style":
		cfg.Style = value
	case "format":
		cfg.Format = value
	case "summary_max_length":
		n, err := atoiField(key, value)
		if err != nil {
			return err
		}
		cfg.SummaryMaxLength = n
	case "llm_diff_bullets":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("llm_diff_bullets must be a boolean: %w", err)
		}
		cfg.LLMDiffBullets = b
	case "generation.max_tokens":
		n, err := atoiField(key, value)
		if err != nil {
			return err
		}
		cfg.Generation.MaxTokens = n
	case "generation.temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("generation.temperature must be a number: %w", err)
		}
		cfg.Generation.Temperature = f
	case "generation.top_p":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("generation.top_p must be a number: %w", err)
		}
		cfg.Generation.TopP = f
	case "diff.context_lines":
		n, err := atoiField(key, value)
		if err != nil {
			return err
		}
		cfg.Diff.ContextLines = n
	case "diff.max_diff_bytes":
		n, err := atoiField(key, value)
		if err != nil {
			return err
		}
		cfg.Diff.MaxDiffBytes = n
	case "cache.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("cache.enabled must be a boolean: %w", err)
		}
		cfg.Cache.Enabled = b
	case "cache.dir":
		cfg.Cache.Dir = value
	case "cache.ttl_seconds":
		n, err := atoiField(key, value)
		if err != nil {
			return err
		}
		cfg.Cache.TTLSeconds = n
	case "privacy.redact_secrets":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("privacy.redact_secrets must be a boolean: %w", err)
		}
		cfg.Privacy.RedactSecrets = b
	case "logging.level":
		cfg.Logging.Level = value
	case "logging.format":
		cfg.Logging.Format = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func atoiField(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
