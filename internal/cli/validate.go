package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/gestures/pkg/config"
	"gopkg.in/yaml.v3"
)

// Validate resolves the configuration at path (defaults, file, environment)
// and prints the effective values as YAML, or JSON when asJSON is set.
func Validate(out io.Writer, path string, asJSON bool) error {
	cfg, err := config.Resolve(path)
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	_, err = out.Write(data)
	return err
}
