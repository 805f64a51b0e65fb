package validator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/BartekS5/odevalidator/pkg/models"
	"github.com/BartekS5/odevalidator/pkg/utils"
)

// sequenceState is the last value seen by an Increment constraint.
type sequenceState struct {
	previous    decimal.Decimal
	initialized bool
}

func (s *sequenceState) reset() {
	*s = sequenceState{}
}

// evaluate runs the checks for one extracted value in a fixed order and stops at
// the first failure. seq is only read or written when an Increment is configured.
func evaluate(path string, typ FieldType, c Constraints, value interface{}, found bool, seq *sequenceState) models.ValidationResult {
	invalid := func(format string, args ...interface{}) models.ValidationResult {
		return models.ValidationResult{Field: path, Valid: false, Details: fmt.Sprintf(format, args...)}
	}

	if !found || value == nil {
		return invalid("Field '%s' missing", path)
	}
	if s, ok := value.(string); ok && s == "" {
		return invalid("Field '%s' empty", path)
	}

	str := utils.ToString(value)

	if c.UpperLimit != nil || c.LowerLimit != nil {
		d, err := utils.ToDecimal(value)
		if err != nil {
			return invalid("Field '%s' value '%s' is not a valid decimal", path, str)
		}
		if c.UpperLimit != nil && d.GreaterThan(*c.UpperLimit) {
			return invalid("Field '%s' value '%s' is greater than upper limit '%s'", path, d, c.UpperLimit)
		}
		if c.LowerLimit != nil && d.LessThan(*c.LowerLimit) {
			return invalid("Field '%s' value '%s' is less than lower limit '%s'", path, d, c.LowerLimit)
		}
	}

	if c.Values != nil && !c.Values.Contains(str) {
		return invalid("Field '%s' value '%s' not in list of known values: [%s]", path, str, c.Values)
	}

	if c.EqualsValue != nil && str != *c.EqualsValue {
		return invalid("Field '%s' value '%s' did not equal expected value '%s'", path, str, *c.EqualsValue)
	}

	if c.Increment != nil {
		current, err := utils.ToDecimal(value)
		if err != nil {
			return invalid("Field '%s' value '%s' is not a valid decimal", path, str)
		}
		if !seq.initialized {
			seq.previous = current
			seq.initialized = true
		} else {
			expected := seq.previous.Add(decimal.NewFromInt(*c.Increment))
			seq.previous = current
			if !current.Equal(expected) {
				return invalid("Field '%s' successor value '%s' did not match expected value '%s', increment '%d'",
					path, current, expected, *c.Increment)
			}
		}
	}

	if typ == TypeTimestamp {
		if _, err := utils.ParseTimestamp(value); err != nil {
			return invalid("Field '%s' value could not be parsed as a timestamp, error: %v", path, err)
		}
	}

	return models.ValidationResult{Field: path, Valid: true, Details: ""}
}
