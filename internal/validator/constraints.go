package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"github.com/BartekS5/odevalidator/pkg/models"
	"github.com/BartekS5/odevalidator/pkg/utils"
)

// FieldType is the declared semantic type of a field.
type FieldType string

const (
	TypeDecimal   FieldType = "decimal"
	TypeEnum      FieldType = "enum"
	TypeTimestamp FieldType = "timestamp"
	TypeString    FieldType = "string"
)

// Configuration keys of a rule section.
const (
	KeyPath        = "Path"
	KeyType        = "Type"
	KeyUpperLimit  = "UpperLimit"
	KeyLowerLimit  = "LowerLimit"
	KeyValues      = "Values"
	KeyIncrement   = "Increment"
	KeyEqualsValue = "EqualsValue"
)

// ValueSet is the list of allowed string forms for an enumerated field.
type ValueSet struct {
	items []string
	index map[string]struct{}
}

func newValueSet(items []string) *ValueSet {
	vs := &ValueSet{items: items, index: make(map[string]struct{}, len(items))}
	for _, it := range items {
		vs.index[it] = struct{}{}
	}
	return vs
}

func (vs *ValueSet) Contains(v string) bool {
	_, ok := vs.index[v]
	return ok
}

// Items returns the allowed values in configuration order.
func (vs *ValueSet) Items() []string {
	return append([]string(nil), vs.items...)
}

func (vs *ValueSet) String() string {
	return strings.Join(vs.items, ", ")
}

// Constraints are the optional checks configured for a field. A nil pointer
// means the constraint is not configured.
type Constraints struct {
	UpperLimit  *decimal.Decimal
	LowerLimit  *decimal.Decimal
	Values      *ValueSet
	Increment   *int64
	EqualsValue *string
}

// Enabled lists the configuration keys of the constraints that are set.
func (c Constraints) Enabled() []string {
	var keys []string
	if c.UpperLimit != nil {
		keys = append(keys, KeyUpperLimit)
	}
	if c.LowerLimit != nil {
		keys = append(keys, KeyLowerLimit)
	}
	if c.Values != nil {
		keys = append(keys, KeyValues)
	}
	if c.EqualsValue != nil {
		keys = append(keys, KeyEqualsValue)
	}
	if c.Increment != nil {
		keys = append(keys, KeyIncrement)
	}
	return keys
}

func parseFieldType(section models.Section) (FieldType, error) {
	raw, ok := section.Get(KeyType)
	if !ok {
		return "", &ConfigurationError{Section: section.Name, Key: KeyType}
	}
	typ := FieldType(strings.ToLower(strings.TrimSpace(raw)))
	err := validation.Validate(typ,
		validation.Required,
		validation.In(TypeDecimal, TypeEnum, TypeTimestamp, TypeString).
			Error(fmt.Sprintf("must be one of %s, %s, %s, %s", TypeDecimal, TypeEnum, TypeTimestamp, TypeString)),
	)
	if err != nil {
		return "", &ConfigurationError{Section: section.Name, Key: KeyType, Err: fmt.Errorf("%q %w", raw, err)}
	}
	return typ, nil
}

// parseConstraints turns the optional string options of a section into typed constraints.
func parseConstraints(section models.Section) (Constraints, error) {
	var c Constraints

	if raw, ok := section.Get(KeyUpperLimit); ok {
		d, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return c, &ConfigurationError{Section: section.Name, Key: KeyUpperLimit, Err: err}
		}
		c.UpperLimit = &d
	}

	if raw, ok := section.Get(KeyLowerLimit); ok {
		d, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return c, &ConfigurationError{Section: section.Name, Key: KeyLowerLimit, Err: err}
		}
		c.LowerLimit = &d
	}

	if raw, ok := section.Get(KeyValues); ok {
		vs, err := parseValues(raw)
		if err != nil {
			return c, &ConfigurationError{Section: section.Name, Key: KeyValues, Err: err}
		}
		c.Values = vs
	}

	if raw, ok := section.Get(KeyIncrement); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return c, &ConfigurationError{Section: section.Name, Key: KeyIncrement, Err: err}
		}
		c.Increment = &n
	}

	if raw, ok := section.Get(KeyEqualsValue); ok {
		v := raw
		c.EqualsValue = &v
	}

	return c, nil
}

// parseValues decodes a JSON array literal. Elements are kept by their string form.
func parseValues(raw string) (*ValueSet, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var items []interface{}
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("expected a JSON array: %w", err)
	}
	if items == nil {
		return nil, fmt.Errorf("expected a JSON array, got null")
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after JSON array")
	}

	out := make([]string, len(items))
	for i, it := range items {
		out[i] = utils.ToString(it)
	}
	return newValueSet(out), nil
}
