package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexInt accepts a JSON number or a numeric string. Wearable firmware
// frequently serializes readings as strings.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		return f.set(n.String())
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return f.set(s)
	}

	return fmt.Errorf("FlexInt: unexpected type, expected number or string")
}

func (f *FlexInt) set(s string) error {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		*f = FlexInt(v)
		return nil
	}
	// Whole-valued floats such as "72.0" are accepted.
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(v) || v != float64(int(v)) {
		return fmt.Errorf("FlexInt: invalid integer %q", s)
	}
	*f = FlexInt(int(v))
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(f))
}

func (f FlexInt) Int() int {
	return int(f)
}

// FlexFloat accepts a JSON number or a numeric string. NaN and infinities are rejected.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexFloat(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		val, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("FlexFloat: invalid float64 string %q: %w", s, err)
		}
		if !finite(val) {
			return fmt.Errorf("FlexFloat: %q is not a finite number", s)
		}
		*f = FlexFloat(val)
		return nil
	}

	return fmt.Errorf("FlexFloat: unexpected type, expected number or string")
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}

func (f FlexFloat) Float64() float64 {
	return float64(f)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
