package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Float is a number that may be missing. It is the only representation of
// "no value" used by the engine: parse failures, empty aggregations and
// undefined ratios all end up as the zero Float. It serializes as JSON null.
type Float struct {
	Val   float64
	Valid bool
}

// Missing is the "no value" sentinel.
var Missing = Float{}

// Some wraps v. NaN and infinities are folded into Missing so they never leak
// to callers.
func Some(v float64) Float {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Missing
	}
	return Float{Val: v, Valid: true}
}

func (f Float) Get() (float64, bool) {
	return f.Val, f.Valid
}

// Or returns the value, or fallback when missing.
func (f Float) Or(fallback float64) float64 {
	if !f.Valid {
		return fallback
	}
	return f.Val
}

func (f Float) String() string {
	if !f.Valid {
		return ""
	}
	return strconv.FormatFloat(f.Val, 'f', -1, 64)
}

func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Val)
}

func (f *Float) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = Missing
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Some(v)
	return nil
}

// Scan implements sql.Scanner.
func (f *Float) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f = Missing
	case float64:
		*f = Some(v)
	case float32:
		*f = Some(float64(v))
	case int64:
		*f = Some(float64(v))
	case []byte:
		return f.scanString(string(v))
	case string:
		return f.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into Float", src)
	}
	return nil
}

func (f *Float) scanString(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("cannot scan %q into Float: %w", s, err)
	}
	*f = Some(v)
	return nil
}

// Value implements driver.Valuer.
func (f Float) Value() (driver.Value, error) {
	if !f.Valid {
		return nil, nil
	}
	return f.Val, nil
}
