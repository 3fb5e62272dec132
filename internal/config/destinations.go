package config

import (
	"fmt"
	"os"

	"bitbucket.org/crgw/rental-hub/internal/rules"
	"gopkg.in/yaml.v3"
)

// DestinationsFile is the YAML layout of DESTINATIONS_FILE:
//
//	flexible: [Kribi, Douala]
//	fourByFour: [Bamenda, Buea]
type DestinationsFile struct {
	Flexible   []string `yaml:"flexible"`
	FourByFour []string `yaml:"fourByFour"`
}

// Destinations builds the destination set. Without a file the built-in lists
// are used.
func (c DestinationsConfig) Destinations() (*rules.DestinationSet, error) {
	policy, err := rules.ParseUnknownDestinationPolicy(c.UnknownPolicy)
	if err != nil {
		return nil, err
	}

	if c.File == "" {
		return rules.DefaultDestinationSet(policy), nil
	}

	content, err := os.ReadFile(c.File)
	if err != nil {
		return nil, fmt.Errorf("cannot read destinations file: %w", err)
	}

	return ParseDestinations(content, policy)
}

func ParseDestinations(content []byte, policy rules.UnknownDestinationPolicy) (*rules.DestinationSet, error) {
	var file DestinationsFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("cannot parse destinations file: %w", err)
	}

	return rules.NewDestinationSet(file.Flexible, file.FourByFour, policy)
}
