// Package roster holds the small amount of business configuration the board
// needs: the DJ name-to-initials rules used by the upcoming-events strip and
// the house-venue patterns that mark partner-venue handoffs.
package roster

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DJ maps a substring of an assigned DJ's name to display initials.
type DJ struct {
	Match    string `yaml:"match" validate:"required"`
	Initials string `yaml:"initials" validate:"required"`
}

// Config is the roster file shape.
type Config struct {
	DJs         []DJ     `yaml:"djs" validate:"dive"`
	HouseVenues []string `yaml:"house_venues"`
}

var validate = validator.New()

// Default returns the compiled-in roster used when no file is configured.
func Default() Config {
	return Config{
		DJs: []DJ{
			{Match: "henry", Initials: "HK"},
			{Match: "woody", Initials: "WM"},
			{Match: "paul", Initials: "PB"},
			{Match: "stefano", Initials: "SB"},
			{Match: "felipe", Initials: "FS"},
			{Match: "stephanie", Initials: "SD"},
		},
		HouseVenues: []string{"house"},
	}
}

// Load reads and validates a roster YAML file.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read roster file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse roster file: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid roster file: %w", err)
	}
	return cfg, nil
}

// Initials converts an assigned DJ's full name to display initials.
// Unassigned slots render as "TBA"; names with no roster rule as "??".
func (c Config) Initials(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || strings.EqualFold(trimmed, "Unassigned") {
		return "TBA"
	}
	lower := strings.ToLower(trimmed)
	for _, dj := range c.DJs {
		if strings.Contains(lower, strings.ToLower(dj.Match)) {
			return dj.Initials
		}
	}
	return "??"
}
