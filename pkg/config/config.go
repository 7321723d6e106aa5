// Package config resolves recognition settings from defaults, a YAML or JSON
// file, host preference maps and GESTURES_* environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/aretw0/gestures/pkg/domain"
	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. GESTURES_DEADZONE.
const EnvPrefix = "GESTURES_"

// Resolve builds the effective configuration: defaults, then the file at path
// (skipped when path is empty), then the environment. The result is validated.
func Resolve(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Load reads a YAML or JSON file over the defaults. JSON is picked by the
// .json extension, anything else is read as YAML.
func Load(path string) (domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.DefaultConfig(), fmt.Errorf("failed to read config: %w", err)
	}
	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = "json"
	}
	return Parse(data, format)
}

// Parse decodes a YAML or JSON document over the defaults.
func Parse(data []byte, format string) (domain.Config, error) {
	raw := map[string]any{}
	switch format {
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return domain.DefaultConfig(), fmt.Errorf("failed to parse config json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return domain.DefaultConfig(), fmt.Errorf("failed to parse config yaml: %w", err)
		}
	}
	cfg := domain.DefaultConfig()
	if err := DecodeInto(&cfg, raw); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode applies a host preference map over the defaults.
func Decode(prefs map[string]any) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	err := DecodeInto(&cfg, prefs)
	return cfg, err
}

// DecodeInto applies a preference map over cfg. Only the keys present are
// changed. Durations accept "300ms" strings or plain numbers of milliseconds,
// buttons accept names or numbers. Unknown keys are rejected.
func DecodeInto(cfg *domain.Config, prefs map[string]any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			millisecondsHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(prefs); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	return nil
}

// ApplyEnv overrides cfg with GESTURES_* variables of the process environment.
func ApplyEnv(cfg *domain.Config) error {
	return applyEnv(cfg, nil)
}

func applyEnv(cfg *domain.Config, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("%w: parse env: %v", domain.ErrInvalidConfig, err)
	}
	return nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// millisecondsHook reads bare numbers as milliseconds for duration fields.
func millisecondsHook(from, to reflect.Type, data any) (any, error) {
	if to != durationType {
		return data, nil
	}
	switch v := data.(type) {
	case int:
		return time.Duration(v) * time.Millisecond, nil
	case int64:
		return time.Duration(v) * time.Millisecond, nil
	case uint64:
		return time.Duration(v) * time.Millisecond, nil
	case float64:
		return time.Duration(v * float64(time.Millisecond)), nil
	}
	return data, nil
}
