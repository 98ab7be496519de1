package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Candidate is one contestant on the roster served to the UI.
type Candidate struct {
	Number     int    `yaml:"number" json:"number"`
	Name       string `yaml:"name" json:"name"`
	Department string `yaml:"department" json:"department"`
}

// DefaultRoster returns the built-in contestant list used when no
// roster file is configured.
func DefaultRoster() []Candidate {
	return []Candidate{
		{Number: 1, Name: "Alexinoh Yamba", Department: "ORD"},
		{Number: 2, Name: "Edmar Tanoy", Department: "FAD"},
		{Number: 3, Name: "Vicarthur Tango-an", Department: "MSESDD"},
		{Number: 4, Name: "Khalil Bigtas", Department: "MMD"},
		{Number: 5, Name: "Larry Brana", Department: "GD"},
	}
}

// LoadRoster reads a YAML candidate roster. An empty path yields the
// default roster.
func LoadRoster(path string) ([]Candidate, error) {
	if path == "" {
		return DefaultRoster(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadRoster, err)
	}
	var roster []Candidate
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadRoster, err)
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("%w: roster file is empty", ErrLoadRoster)
	}
	return roster, nil
}
