package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyOutput  = "output"
	keyLogging = "logging"
	keyParser  = "parser"
	keyServer  = "server"
)

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// target. A section present in the overlay replaces the whole section in
// target, with unspecified fields zeroed; absent sections are left alone.
// Unknown top-level keys are ignored.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err = decodeSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	return nil
}

// decodeSection decodes node into a zero value of the section's type and
// assigns it, so the overlay replaces rather than merges the section.
func decodeSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyOutput:
		var v OutputConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Output = v
	case keyLogging:
		var v LoggingConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	case keyParser:
		var v ParserConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Parser = v
	case keyServer:
		var v ServerConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Server = v
	}
	return nil
}
