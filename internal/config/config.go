// Package config loads the role bootstrap configuration: the set of
// roles a process should register at startup, each with its thesaurus
// source, relevance function and blend coefficient (spec §4.5 ambient
// stack), grounded on the teacher's yaml-tagged, validator-checked
// Config/LoadConfig idiom.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/kittclouds/rolegraph/pkg/rolegraph"
)

// RoleConfig declares one role's bootstrap settings.
type RoleConfig struct {
	Name              string                      `yaml:"name" json:"name" validate:"required,min=1,max=128"`
	ThesaurusPath     string                      `yaml:"thesaurus_path" json:"thesaurus_path" validate:"required,file"`
	RelevanceFunction rolegraph.RelevanceFunction `yaml:"relevance_function" json:"relevance_function" validate:"required,oneof=title-scorer terraphim-graph bm25 bm25f bm25plus tfidf jaccard query-ratio"`
	Alpha             float64                     `yaml:"alpha" json:"alpha" validate:"gte=0,lte=1"`
	Selected          bool                        `yaml:"selected" json:"selected"`
}

// Config is the complete role-registry bootstrap document (spec §4.5).
type Config struct {
	Roles      []RoleConfig `yaml:"roles" json:"roles" validate:"required,min=1,dive"`
	LoadedFrom string       `yaml:"-" json:"-"`
}

// Load reads and parses a YAML config document from path, applying
// DefaultAlpha to any role that left alpha unset, then validates the
// result (spec §9: YAML config + validator struct tags, mirroring the
// teacher's Load-then-Validate flow).
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	cfg.LoadedFrom = path

	for i := range cfg.Roles {
		if cfg.Roles[i].Alpha == 0 {
			cfg.Roles[i].Alpha = rolegraph.DefaultAlpha
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate runs struct-tag validation over cfg and reports at most one
// selected role, since the registry can only have one role selected at a
// time (spec §4.4).
func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, formatValidationError(e))
			}
			return fmt.Errorf("config: validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
		}
		return fmt.Errorf("config: validation failed: %w", err)
	}

	selected := 0
	for _, r := range c.Roles {
		if r.Selected {
			selected++
		}
	}
	if selected > 1 {
		return fmt.Errorf("config: at most one role may set selected: true, found %d", selected)
	}
	return nil
}

func formatValidationError(e validator.FieldError) string {
	return fmt.Sprintf("%s failed %s validation (got %v)", e.Namespace(), e.Tag(), e.Value())
}
