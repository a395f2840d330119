package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"
)

// YAMLParser is an ff config file parser for YAML documents. Nested mappings
// flatten into dash-joined flag names, so
//
//	export:
//	  bucket: results
//
// sets --export-bucket. Sequences are joined with commas.
func YAMLParser(r io.Reader, set func(name, value string) error) error {
	var doc map[string]any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parse yaml config: %w", err)
	}
	return flatten("", doc, set)
}

func flatten(prefix string, m map[string]any, set func(name, value string) error) error {
	for k, v := range m {
		name := k
		if prefix != "" {
			name = prefix + "-" + k
		}

		switch val := v.(type) {
		case map[string]any:
			if err := flatten(name, val, set); err != nil {
				return err
			}
		case []any:
			parts := make([]string, len(val))
			for i, item := range val {
				parts[i] = fmt.Sprint(item)
			}
			if err := set(name, strings.Join(parts, ",")); err != nil {
				return err
			}
		case nil:
			if err := set(name, ""); err != nil {
				return err
			}
		default:
			if err := set(name, fmt.Sprint(val)); err != nil {
				return err
			}
		}
	}
	return nil
}
