// Package config handles loading of the rule file and of the process
// settings taken from the environment.
package config

import (
	"errors"
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/BartekS5/odevalidator/pkg/models"
)

// ErrDuplicateSection is returned when a section name appears more than once.
var ErrDuplicateSection = errors.New("duplicate section")

var loadOptions = ini.LoadOptions{
	InsensitiveKeys:            true,
	IgnoreInlineComment:        true,
	PreserveSurroundedQuote:    true,
	AllowPythonMultilineValues: true,
	AllowNonUniqueSections:     true,
}

// LoadSections reads an INI rule file and returns its sections in file order.
// Keys of the DEFAULT section are inherited by every other section.
func LoadSections(filePath string) ([]models.Section, error) {
	f, err := ini.LoadSources(loadOptions, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file '%s': %w", filePath, err)
	}
	return sections(f)
}

// ParseSections is LoadSections for in-memory content.
func ParseSections(data []byte) ([]models.Section, error) {
	f, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rule configuration: %w", err)
	}
	return sections(f)
}

func sections(f *ini.File) ([]models.Section, error) {
	// Non-unique sections are enabled so repeats can be rejected, which also
	// means an explicit [DEFAULT] block is its own section next to the implicit one.
	defaults := make(map[string]string)
	for _, s := range f.Sections() {
		if s.Name() == ini.DefaultSection {
			for k, v := range s.KeysHash() {
				defaults[k] = v
			}
		}
	}

	var out []models.Section
	seen := make(map[string]bool)
	for _, s := range f.Sections() {
		if s.Name() == ini.DefaultSection {
			continue
		}
		if seen[s.Name()] {
			return nil, fmt.Errorf("%w '%s'", ErrDuplicateSection, s.Name())
		}
		seen[s.Name()] = true
		opts := make(map[string]string, len(defaults)+len(s.Keys()))
		for k, v := range defaults {
			opts[k] = v
		}
		for _, key := range s.Keys() {
			opts[key.Name()] = key.Value()
		}
		out = append(out, models.NewSection(s.Name(), opts))
	}
	return out, nil
}
