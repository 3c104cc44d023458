package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrNotNumeric is returned by Number accessors when a value was supplied but
// could not be parsed.
var ErrNotNumeric = errors.New("value is not numeric")

// Number is a loosely typed numeric input. It accepts a JSON number, a numeric
// string or null, and works as a form field through gin's BindUnmarshaler.
type Number struct {
	Value   float64
	Present bool
	Valid   bool
}

// NewNumber returns a present, valid Number.
func NewNumber(v float64) Number {
	return Number{Value: v, Present: true, Valid: true}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = NewNumber(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return n.UnmarshalParam(s)
	}

	// Booleans, objects and arrays count as supplied but unusable.
	*n = Number{Present: true}
	return nil
}

// UnmarshalParam implements gin's binding.BindUnmarshaler for form values.
// NaN and infinities count as unparseable.
func (n *Number) UnmarshalParam(param string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(param), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*n = Number{Present: true}
		return nil
	}
	*n = NewNumber(f)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Present || !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Float returns the value, def when absent, or ErrNotNumeric when unparseable
// or not finite.
func (n Number) Float(def float64) (float64, error) {
	if !n.Present {
		return def, nil
	}
	if !n.Valid || math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
		return 0, ErrNotNumeric
	}
	return n.Value, nil
}

// Int is Float truncated toward zero.
func (n Number) Int(def int) (int, error) {
	f, err := n.Float(float64(def))
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
