package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// maxNumber bounds form numbers to integers a float64 holds exactly, which
// also keeps Int within range.
const maxNumber = 1 << 53

// Number is a numeric form field. Decoding never fails: input that is not a
// finite number (or numeric string) within ±2^53 becomes zero, and range
// checks are left to validation.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	f, _ := parseNumber(data)
	*n = Number(f)
	return nil
}

func (n Number) Int() int {
	f := float64(n)
	if math.IsNaN(f) || math.Abs(f) > maxNumber {
		return 0
	}
	return int(f)
}

func (n Number) Float() float64 {
	return float64(n)
}

// parseNumber reads a JSON number or numeric string. ok is false for null,
// empty strings and anything that is not a usable number.
func parseNumber(data []byte) (float64, bool) {
	data = bytes.TrimSpace(data)
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, false
		}
		if f, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return 0, false
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > maxNumber {
		return 0, false
	}
	return f, true
}

// OptionalNumber is a Number that may be left blank. null, an empty string
// and unusable input leave it unset, and an unset value is stored as NULL.
type OptionalNumber struct {
	Number
	Set bool
}

func NewOptionalNumber(f float64) OptionalNumber {
	return OptionalNumber{Number: Number(f), Set: true}
}

func (n *OptionalNumber) UnmarshalJSON(data []byte) error {
	f, ok := parseNumber(data)
	*n = OptionalNumber{Number: Number(f), Set: ok}
	return nil
}

func (n OptionalNumber) MarshalJSON() ([]byte, error) {
	if !n.Set {
		return []byte("null"), nil
	}
	return json.Marshal(float64(n.Number))
}

// Value lets validation rules see an unset number as empty.
func (n OptionalNumber) Value() (driver.Value, error) {
	if !n.Set {
		return nil, nil
	}
	return float64(n.Number), nil
}

// Ptr is the column value: nil when unset.
func (n OptionalNumber) Ptr() *float64 {
	if !n.Set {
		return nil
	}
	f := float64(n.Number)
	return &f
}
