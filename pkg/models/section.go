package models

import "strings"

// Section is one named block of the rule configuration file.
// Option keys are matched case-insensitively.
type Section struct {
	Name    string
	options map[string]string
}

// NewSection builds a section from raw key/value pairs.
func NewSection(name string, options map[string]string) Section {
	s := Section{Name: name, options: make(map[string]string, len(options))}
	for k, v := range options {
		s.options[strings.ToLower(k)] = v
	}
	return s
}

// Get returns the option value and whether the key was present.
func (s Section) Get(key string) (string, bool) {
	v, ok := s.options[strings.ToLower(key)]
	return v, ok
}
