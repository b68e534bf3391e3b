package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidMultiplier is returned when an overtime multiplier falls
// outside [1, 5] or disagrees with the overtime hours on the record.
var ErrInvalidMultiplier = errors.New("invalid_multiplier")

// Multiplier is an optional overtime multiplier. The zero value means no
// overtime; a set value is always within [1, 5]. Keeping the fields opaque
// makes an out-of-range or orphaned multiplier unrepresentable through the
// constructors.
type Multiplier struct {
	set   bool
	value float64
}

// NoOvertime is the unset multiplier.
func NoOvertime() Multiplier {
	return Multiplier{}
}

// NewMultiplier builds a set multiplier, rejecting values outside [1, 5].
func NewMultiplier(value float64) (Multiplier, error) {
	if value < 1 || value > 5 {
		return Multiplier{}, ErrInvalidMultiplier
	}
	return Multiplier{set: true, value: value}, nil
}

// IsSet reports whether the multiplier carries a value.
func (m Multiplier) IsSet() bool {
	return m.set
}

// Float returns the multiplier value; ok is false when unset.
func (m Multiplier) Float() (value float64, ok bool) {
	return m.value, m.set
}

// Or returns the multiplier value, or fallback when unset.
func (m Multiplier) Or(fallback float64) float64 {
	if m.set {
		return m.value
	}
	return fallback
}

func (m Multiplier) String() string {
	if !m.set {
		return ""
	}
	return strconv.FormatFloat(m.value, 'g', -1, 64)
}

// Value implements driver.Valuer; unset stores SQL NULL.
func (m Multiplier) Value() (driver.Value, error) {
	if !m.set {
		return nil, nil
	}
	return m.value, nil
}

// Scan implements sql.Scanner; NULL scans to the unset multiplier.
func (m *Multiplier) Scan(src any) error {
	if src == nil {
		*m = Multiplier{}
		return nil
	}

	var value float64
	switch v := src.(type) {
	case float64:
		value = v
	case float32:
		value = float64(v)
	case int64:
		value = float64(v)
	case []byte:
		parsed, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return ErrInvalidMultiplier
		}
		value = parsed
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return ErrInvalidMultiplier
		}
		value = parsed
	default:
		return fmt.Errorf("multiplier: unsupported scan type %T", src)
	}

	parsed, err := NewMultiplier(value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Multiplier) MarshalJSON() ([]byte, error) {
	if !m.set {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}

func (m *Multiplier) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = Multiplier{}
		return nil
	}
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return ErrInvalidMultiplier
	}
	parsed, err := NewMultiplier(value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

var (
	_ driver.Valuer    = Multiplier{}
	_ json.Marshaler   = Multiplier{}
	_ json.Unmarshaler = (*Multiplier)(nil)
)
