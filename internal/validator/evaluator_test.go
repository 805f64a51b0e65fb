package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpperAndLowerLimits(t *testing.T) {
	upper := mustField(t, "Path", "v", "Type", "decimal", "UpperLimit", "100")
	lower := mustField(t, "Path", "v", "Type", "decimal", "LowerLimit", "100")

	tests := []struct {
		name  string
		field *FieldRule
		value interface{}
		valid bool
		msg   string
	}{
		{name: "upper boundary inclusive", field: upper, value: json.Number("100"), valid: true},
		{name: "above upper", field: upper, value: json.Number("101"), msg: "Field 'v' value '101' is greater than upper limit '100'"},
		{name: "upper fractional", field: upper, value: json.Number("100.0001"), msg: "Field 'v' value '100.0001' is greater than upper limit '100'"},
		{name: "numeric string", field: upper, value: "99.5", valid: true},
		{name: "lower boundary inclusive", field: lower, value: json.Number("100"), valid: true},
		{name: "below lower", field: lower, value: json.Number("99"), msg: "Field 'v' value '99' is less than lower limit '100'"},
		{name: "not numeric", field: lower, value: "abc", msg: "Field 'v' value 'abc' is not a valid decimal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.field.Check(tt.value, true)
			assert.Equal(t, tt.valid, res.Valid)
			if !tt.valid {
				assert.Equal(t, tt.msg, res.Details)
			}
		})
	}
}

func TestLimitsUseExactDecimals(t *testing.T) {
	f := mustField(t, "Path", "v", "Type", "decimal", "UpperLimit", "0.3")
	// 0.1 + 0.2 style artifacts must not appear with large precise literals
	res := f.Check(json.Number("0.30000000000000000001"), true)
	assert.False(t, res.Valid)

	res = f.Check(json.Number("0.3"), true)
	assert.True(t, res.Valid)
}

func TestValuesConstraint(t *testing.T) {
	f := mustField(t, "Path", "status", "Type", "enum", "Values", `["A","B"]`)

	assert.True(t, f.Check("A", true).Valid)
	assert.True(t, f.Check("B", true).Valid)

	res := f.Check("C", true)
	assert.False(t, res.Valid)
	assert.Equal(t, "Field 'status' value 'C' not in list of known values: [A, B]", res.Details)
}

func TestValuesConstraintMatchesNumbersByText(t *testing.T) {
	f := mustField(t, "Path", "code", "Type", "enum", "Values", `[1, "2"]`)
	assert.True(t, f.Check(json.Number("1"), true).Valid)
	assert.True(t, f.Check(json.Number("2"), true).Valid)
	assert.False(t, f.Check(json.Number("3"), true).Valid)
}

func TestEqualsValueConstraint(t *testing.T) {
	f := mustField(t, "Path", "kind", "Type", "string", "EqualsValue", "BSM")

	assert.True(t, f.Check("BSM", true).Valid)

	res := f.Check("TIM", true)
	assert.False(t, res.Valid)
	assert.Equal(t, "Field 'kind' value 'TIM' did not equal expected value 'BSM'", res.Details)

	n := mustField(t, "Path", "n", "Type", "decimal", "EqualsValue", "42")
	assert.True(t, n.Check(json.Number("42"), true).Valid)
}

func TestIncrementSequence(t *testing.T) {
	f := mustField(t, "Path", "id", "Type", "decimal", "Increment", "1")

	for _, v := range []string{"5", "6", "7"} {
		res := f.Check(json.Number(v), true)
		assert.True(t, res.Valid, "value %s", v)
	}

	f.ResetSequence()
	require.True(t, f.Check(json.Number("5"), true).Valid)
	res := f.Check(json.Number("7"), true)
	assert.False(t, res.Valid)
	assert.Equal(t, "Field 'id' successor value '7' did not match expected value '6', increment '1'", res.Details)
}

func TestIncrementUpdatesStateOnFailure(t *testing.T) {
	f := mustField(t, "Path", "id", "Type", "decimal", "Increment", "2")

	assert.True(t, f.Check(json.Number("10"), true).Valid)
	assert.False(t, f.Check(json.Number("11"), true).Valid)
	// the failed value becomes the new baseline
	assert.True(t, f.Check(json.Number("13"), true).Valid)

	prev, ok := f.PreviousValue()
	require.True(t, ok)
	assert.Equal(t, "13", prev.String())
}

func TestIncrementDetectsDuplicates(t *testing.T) {
	f := mustField(t, "Path", "id", "Type", "decimal", "Increment", "1")
	f.Check(json.Number("3"), true)
	res := f.Check(json.Number("3"), true)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Details, "expected value '4'")
}

func TestIncrementLeavesStateWhenEarlierCheckFails(t *testing.T) {
	f := mustField(t, "Path", "id", "Type", "decimal", "Increment", "1", "UpperLimit", "10")

	assert.True(t, f.Check(json.Number("5"), true).Valid)
	assert.False(t, f.Check(json.Number("50"), true).Valid)
	assert.False(t, f.Check(nil, false).Valid)

	prev, _ := f.PreviousValue()
	assert.Equal(t, "5", prev.String())
	assert.True(t, f.Check(json.Number("6"), true).Valid)
}

func TestIncrementNonNumericValue(t *testing.T) {
	f := mustField(t, "Path", "id", "Type", "string", "Increment", "1")
	res := f.Check("abc", true)
	assert.False(t, res.Valid)
	assert.Equal(t, "Field 'id' value 'abc' is not a valid decimal", res.Details)

	_, ok := f.PreviousValue()
	assert.False(t, ok)
}

func TestTimestampType(t *testing.T) {
	f := mustField(t, "Path", "ts", "Type", "timestamp")

	assert.True(t, f.Check("2023-01-15T10:00:00Z", true).Valid)
	assert.True(t, f.Check("2023-01-15 10:00:00.123", true).Valid)

	res := f.Check("not-a-date", true)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Details, "Field 'ts' value could not be parsed as a timestamp, error: ")
	assert.Greater(t, len(res.Details), len("Field 'ts' value could not be parsed as a timestamp, error: "))
}

func TestTimestampRejectsNumbers(t *testing.T) {
	f := mustField(t, "Path", "ts", "Type", "timestamp")

	res := f.Check(json.Number("1673776800"), true)
	assert.False(t, res.Valid)
	assert.Equal(t, "Field 'ts' value could not be parsed as a timestamp, error: expected a date/time string, got json.Number", res.Details)
}

func TestTimestampOnlyCheckedForTimestampType(t *testing.T) {
	f := mustField(t, "Path", "ts", "Type", "string")
	assert.True(t, f.Check("not-a-date", true).Valid)
}

func TestChecksShortCircuitInOrder(t *testing.T) {
	f := mustField(t,
		"Path", "v",
		"Type", "timestamp",
		"UpperLimit", "10",
		"Values", `["20"]`,
	)
	// the upper limit fires before the values and timestamp checks
	res := f.Check(json.Number("20"), true)
	assert.Equal(t, "Field 'v' value '20' is greater than upper limit '10'", res.Details)
}

func TestStatelessFieldsAreRepeatable(t *testing.T) {
	f := mustField(t, "Path", "status", "Type", "enum", "Values", `["A"]`, "EqualsValue", "A")
	first := f.Check("A", true)
	second := f.Check("A", true)
	assert.Equal(t, first, second)

	first = f.Check("Z", true)
	second = f.Check("Z", true)
	assert.Equal(t, first, second)
}
