package dto

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// FlexDecimal is a decimal that tolerates sloppy numeric input. JSON numbers,
// numeric strings (with thousands separators stripped) and anything else all
// decode without error; unparseable input coerces to zero. Amount fields must
// never fail a whole request on one bad cell.
type FlexDecimal struct {
	decimal.Decimal
}

// NewFlexDecimal wraps a decimal for use in request fixtures.
func NewFlexDecimal(d decimal.Decimal) FlexDecimal {
	return FlexDecimal{Decimal: d}
}

func (f *FlexDecimal) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		f.Decimal = decimal.Zero
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			f.Decimal = decimal.Zero
			return nil
		}
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
		if s == "" {
			f.Decimal = decimal.Zero
			return nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			f.Decimal = decimal.Zero
			return nil
		}
		f.Decimal = d
		return nil
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		f.Decimal = decimal.Zero
		return nil
	}
	f.Decimal = d
	return nil
}

// FlexStringList accepts either a JSON array of strings or a JSON-encoded
// array inside a string (the shape some front-end multi-selects submit).
// Anything else decodes to an empty list. Downstream code only ever sees a
// normalized []string.
type FlexStringList []string

func (f *FlexStringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*f = nil
		return nil
	}

	var direct []string
	if err := json.Unmarshal(data, &direct); err == nil {
		*f = direct
		return nil
	}

	var embedded string
	if err := json.Unmarshal(data, &embedded); err == nil {
		embedded = strings.TrimSpace(embedded)
		if embedded == "" {
			*f = []string{}
			return nil
		}
		var parsed []string
		if err := json.Unmarshal([]byte(embedded), &parsed); err == nil {
			*f = parsed
			return nil
		}
	}

	*f = []string{}
	return nil
}
