// Package config loads and validates YAML case files.
package config

import (
	"os"

	"github.com/acrovato/gmshcfd/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadCase reads, maps, and validates a case file. The returned Case has all
// shorthands expanded and all paths resolved.
func LoadCase(path string) (domain.Case, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Case{}, &domain.OpError{
			Op:   "config.load_case",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var dto YAMLCase
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return domain.Case{}, &domain.OpError{
			Op:   "config.load_case",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return MapCase(path, dto)
}
