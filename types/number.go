package types

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Number is a numeric field the exchange sends either quoted ("3000.21"),
// bare (3000.21) or as null. All three decode through the same rule:
//
//   - JSON string: parsed as a decimal, ErrInvalidNumericString on failure
//   - JSON number: taken as its float value
//   - null: 0
//
// Any other JSON type is ErrInvalidFieldType. Note that null and a genuine
// zero are indistinguishable after decoding; Null reports which one it was.
type Number struct {
	value float64
	null  bool
}

// NewNumber wraps a float.
func NewNumber(v float64) Number {
	return Number{value: v}
}

// Float64 returns the decoded value.
func (n Number) Float64() float64 {
	return n.value
}

// Decimal returns the value as a decimal.Decimal.
func (n Number) Decimal() decimal.Decimal {
	return decimal.NewFromFloat(n.value)
}

// Null reports whether the wire value was null.
func (n Number) Null() bool {
	return n.null
}

func (n Number) String() string {
	return strconv.FormatFloat(n.value, 'f', -1, 64)
}

// UnmarshalJSON 宽松数值解析
func (n *Number) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &FieldError{Kind: ErrInvalidFieldType, Reason: "empty input"}
	}

	switch c := data[0]; {
	case c == 'n':
		if string(data) != "null" {
			return &FieldError{Kind: ErrInvalidFieldType, Value: string(data)}
		}
		n.value, n.null = 0, true
		return nil
	case c == '"':
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return &FieldError{Kind: ErrInvalidNumericString, Value: string(data), Reason: err.Error()}
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return &FieldError{Kind: ErrInvalidNumericString, Value: s, Reason: err.Error()}
		}
		n.value, n.null = d.InexactFloat64(), false
		return nil
	case c == '-' || (c >= '0' && c <= '9'):
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return &FieldError{Kind: ErrInvalidFieldType, Value: string(data), Reason: err.Error()}
		}
		n.value, n.null = f, false
		return nil
	default:
		return &FieldError{Kind: ErrInvalidFieldType, Value: string(data), Reason: "expected string, number or null"}
	}
}

// MarshalJSON writes the value as a quoted decimal, the form the exchange accepts on input.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(n.String())), nil
}
