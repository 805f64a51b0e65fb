package validator

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/BartekS5/odevalidator/pkg/models"
)

// FieldRule binds one field path of a record to its declared type and constraints.
// It owns the sequence state of an Increment constraint, so the same instance
// must see records in their original order.
type FieldRule struct {
	name        string
	path        string
	keys        []string
	typ         FieldType
	constraints Constraints

	mu  sync.Mutex
	seq sequenceState
}

// NewFieldRule builds a rule from one configuration section.
func NewFieldRule(section models.Section) (*FieldRule, error) {
	path, ok := section.Get(KeyPath)
	if !ok {
		return nil, &ConfigurationError{Section: section.Name, Key: KeyPath}
	}

	typ, err := parseFieldType(section)
	if err != nil {
		return nil, err
	}

	constraints, err := parseConstraints(section)
	if err != nil {
		return nil, err
	}

	return &FieldRule{
		name:        section.Name,
		path:        path,
		keys:        strings.Split(path, "."),
		typ:         typ,
		constraints: constraints,
	}, nil
}

// Name is the configuration section the rule was built from.
func (f *FieldRule) Name() string { return f.name }

func (f *FieldRule) Path() string { return f.path }

func (f *FieldRule) Type() FieldType { return f.typ }

func (f *FieldRule) Constraints() Constraints { return f.constraints }

// Extract walks the dotted path through nested objects. found is false when the
// last key is absent. A non-object on the way down is a *TraversalError.
func (f *FieldRule) Extract(record map[string]interface{}) (value interface{}, found bool, err error) {
	return extractPath(record, f.path, f.keys)
}

func extractPath(record map[string]interface{}, path string, keys []string) (interface{}, bool, error) {
	current := record
	for i, key := range keys {
		v, ok := current[key]
		if i == len(keys)-1 {
			return v, ok, nil
		}
		next, isMap := v.(map[string]interface{})
		if !isMap {
			return nil, false, &TraversalError{Path: path, Record: record}
		}
		current = next
	}
	return nil, false, nil
}

// Validate extracts the field from record and checks it.
func (f *FieldRule) Validate(record map[string]interface{}) (models.ValidationResult, error) {
	value, found, err := f.Extract(record)
	if err != nil {
		return models.ValidationResult{}, err
	}
	return f.Check(value, found), nil
}

// Check evaluates an already extracted value, advancing the sequence state if
// an Increment is configured.
func (f *FieldRule) Check(value interface{}, found bool) models.ValidationResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return evaluate(f.path, f.typ, f.constraints, value, found, &f.seq)
}

// ResetSequence forgets the previous value so the next record starts a new sequence.
func (f *FieldRule) ResetSequence() {
	f.mu.Lock()
	f.seq.reset()
	f.mu.Unlock()
}

// PreviousValue returns the last value seen by the Increment constraint.
func (f *FieldRule) PreviousValue() (decimal.Decimal, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seq.previous, f.seq.initialized
}
