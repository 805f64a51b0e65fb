package validator

import (
	"errors"
	"fmt"

	"github.com/BartekS5/odevalidator/internal/config"
	"github.com/BartekS5/odevalidator/pkg/models"
)

// SettingsSection is reserved for global options and never becomes a field rule.
const SettingsSection = "_settings"

// TestCase is the ordered set of field rules loaded from one configuration file.
type TestCase struct {
	fields  []*FieldRule
	lenient bool
}

type TestCaseOption func(*TestCase)

// WithLenientTraversal reports a path that cannot be traversed as a missing
// field instead of failing the record.
func WithLenientTraversal() TestCaseOption {
	return func(tc *TestCase) { tc.lenient = true }
}

// NewTestCase builds one FieldRule per section, in order. The first bad section
// aborts construction.
func NewTestCase(sections []models.Section, opts ...TestCaseOption) (*TestCase, error) {
	tc := &TestCase{}
	for _, opt := range opts {
		opt(tc)
	}

	for _, section := range sections {
		if section.Name == SettingsSection {
			continue
		}
		field, err := NewFieldRule(section)
		if err != nil {
			return nil, err
		}
		tc.fields = append(tc.fields, field)
	}
	return tc, nil
}

// LoadTestCase reads a rule file from disk.
func LoadTestCase(filePath string, opts ...TestCaseOption) (*TestCase, error) {
	sections, err := config.LoadSections(filePath)
	if errors.Is(err, config.ErrDuplicateSection) {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if err != nil {
		return nil, err
	}
	tc, err := NewTestCase(sections, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build rules from '%s': %w", filePath, err)
	}
	return tc, nil
}

func (tc *TestCase) Fields() []*FieldRule {
	return append([]*FieldRule(nil), tc.fields...)
}

// Validate checks every field of record, in rule order.
func (tc *TestCase) Validate(record map[string]interface{}) ([]models.ValidationResult, error) {
	results := make([]models.ValidationResult, 0, len(tc.fields))
	for _, field := range tc.fields {
		result, err := field.Validate(record)
		if err != nil {
			var te *TraversalError
			if !tc.lenient || !errors.As(err, &te) {
				return nil, err
			}
			result = field.Check(nil, false)
		}
		results = append(results, result)
	}
	return results, nil
}

// Reset clears the sequence state of every field.
func (tc *TestCase) Reset() {
	for _, field := range tc.fields {
		field.ResetSequence()
	}
}
