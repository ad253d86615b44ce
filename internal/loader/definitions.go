// Package loader reads alias definition files and registers them with an
// alias provider.
//
// A definition file is YAML with two optional sections:
//
//	variations:
//	  colour:
//	    - {key: white, id: "white_-"}
//	    - {key: red, id: "red_-"}
//	aliases:
//	  - name: "{colour} wool"
//	    id: "minecraft:-wool"
//	  - name: oak log
//	    id: minecraft:oak_log
//	    states: {axis: y}
//
// Alias names may reference variation groups in braces; each reference is
// expanded into one alias per variation of the group.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// VariationDef is one variation of a variation group.
type VariationDef struct {
	Key    string            `yaml:"key"`
	ID     string            `yaml:"id"`
	Tags   []string          `yaml:"tags"`
	States map[string]string `yaml:"states"`
}

// AliasDef is one alias entry. Name may contain {group} references.
type AliasDef struct {
	Name   string            `yaml:"name"`
	Plural string            `yaml:"plural"`
	Gender int               `yaml:"gender"`
	ID     string            `yaml:"id"`
	Tags   []string          `yaml:"tags"`
	States map[string]string `yaml:"states"`
}

// File is a parsed definition file.
type File struct {
	Path       string                    `yaml:"-"`
	Variations map[string][]VariationDef `yaml:"variations"`
	Aliases    []AliasDef                `yaml:"aliases"`
}

// knownSections are the top-level keys of a definition file.
var knownSections = map[string]bool{
	"variations": true,
	"aliases":    true,
}

// ParseFile reads and parses a definition file.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse parses definition content. path is used for error messages only.
func Parse(path string, data []byte) (*File, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{File: path, Message: fmt.Sprintf("invalid YAML: %v", err)}
	}
	for section := range raw {
		if !knownSections[section] {
			return nil, &UnknownFieldError{File: path, Field: section}
		}
	}

	f := &File{Path: path}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ParseError{File: path, Message: fmt.Sprintf("failed to decode definitions: %v", err)}
	}

	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// validate checks the required fields of every entry.
func (f *File) validate() error {
	for group, defs := range f.Variations {
		if group == "" {
			return &ParseError{File: f.Path, Message: "variation group without a name"}
		}
		for i, def := range defs {
			if def.Key == "" && def.ID == "" && len(def.Tags) == 0 && len(def.States) == 0 {
				return &ParseError{File: f.Path, Message: fmt.Sprintf("variations.%s[%d]: empty variation", group, i)}
			}
		}
	}
	for i, def := range f.Aliases {
		if def.Name == "" {
			return &ParseError{File: f.Path, Message: fmt.Sprintf("aliases[%d]: missing name", i)}
		}
		if def.ID == "" {
			return &ParseError{File: f.Path, Message: fmt.Sprintf("aliases[%d] %q: missing id", i, def.Name)}
		}
	}
	return nil
}

// ParseError represents a malformed definition file.
type ParseError struct {
	File    string
	Message string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// UnknownFieldError represents an unknown top-level section.
type UnknownFieldError struct {
	File  string
	Field string
}

func (e *UnknownFieldError) Error() string {
	msg := fmt.Sprintf("unknown section %q, expected \"variations\" or \"aliases\"", e.Field)
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, msg)
	}
	return msg
}

// RegistrationError wraps a failure to register one expanded alias.
type RegistrationError struct {
	File  string
	Alias string
	Err   error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("%s: alias %q: %v", e.File, e.Alias, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}
