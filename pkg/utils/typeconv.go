package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
)

// ToDecimal coerces a decoded JSON value into an arbitrary precision decimal.
// Records are decoded with json.Number so numeric text is kept exactly.
func ToDecimal(val interface{}) (decimal.Decimal, error) {
	switch v := val.(type) {
	case decimal.Decimal:
		return v, nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		return decimal.NewFromString(strings.TrimSpace(v))
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case []byte:
		return ToDecimal(string(v))
	default:
		return decimal.Zero, fmt.Errorf("cannot convert %T to decimal", val)
	}
}

// ToString returns the canonical string form of a decoded JSON value.
// Scalars use their literal text; objects and arrays are re-encoded as JSON.
func ToString(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case decimal.Decimal:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case []byte:
		return string(v)
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ParseTimestamp parses a date/time string without a fixed layout.
// Text without a zone is read in the local time zone. Numbers are not
// accepted as epoch values.
func ParseTimestamp(val interface{}) (time.Time, error) {
	switch v := val.(type) {
	case time.Time:
		return v, nil
	case string:
		return dateparse.ParseLocal(strings.TrimSpace(v))
	default:
		return time.Time{}, fmt.Errorf("expected a date/time string, got %T", val)
	}
}
