package validator

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration = errors.New("invalid rule configuration")
	ErrTraversal     = errors.New("field path could not be traversed")
	ErrRecordDecode  = errors.New("record could not be decoded")
	ErrRecordID      = errors.New("record identifier could not be extracted")
)

// ConfigurationError reports a bad or missing property in one rule section.
// It matches ErrConfiguration with errors.Is.
type ConfigurationError struct {
	Section string
	Key     string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("missing required configuration property '%s' for field '%s'", e.Key, e.Section)
	}
	return fmt.Sprintf("invalid configuration property '%s' for field '%s': %v", e.Key, e.Section, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// TraversalError is returned when a path step lands on something that is not an object.
type TraversalError struct {
	Path   string
	Record map[string]interface{}
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("could not find field with path '%s' in message: '%v'", e.Path, e.Record)
}

func (e *TraversalError) Is(target error) bool { return target == ErrTraversal }
