package sheet

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ValueKind identifies the type of a cell value.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueText
	ValueNumber
	ValueBool
	ValueDate
)

// Value is a tagged union over the types a data row may carry.
type Value struct {
	kind    ValueKind
	text    string
	number  float64
	boolean bool
	date    time.Time
}

// Null returns the null value.
func Null() Value {
	return Value{kind: ValueNull}
}

// Text creates a text value.
func Text(s string) Value {
	return Value{kind: ValueText, text: s}
}

// Number creates a numeric value.
func Number(f float64) Value {
	return Value{kind: ValueNumber, number: f}
}

// Bool creates a boolean value.
func Bool(b bool) Value {
	return Value{kind: ValueBool, boolean: b}
}

// Date creates a date value.
func Date(t time.Time) Value {
	return Value{kind: ValueDate, date: t}
}

// ValueOf coerces an arbitrary Go value into a Value. Unrecognized types
// fall back to their fmt.Sprint text form.
func ValueOf(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case string:
		return Text(t)
	case bool:
		return Bool(t)
	case int:
		return Number(float64(t))
	case int8:
		return Number(float64(t))
	case int16:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case uint:
		return Number(float64(t))
	case uint32:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	case float32:
		return Number(float64(t))
	case float64:
		return Number(t)
	case time.Time:
		return Date(t)
	case *time.Time:
		if t == nil {
			return Null()
		}
		return Date(*t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Text(t.String())
		}
		return Number(f)
	case []byte:
		return Text(string(t))
	default:
		return Text(fmt.Sprint(v))
	}
}

// Kind returns the value kind.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == ValueNull
}

// Float returns the numeric payload.
func (v Value) Float() (float64, bool) {
	if v.kind != ValueNumber {
		return 0, false
	}
	return v.number, true
}

// Boolean returns the boolean payload.
func (v Value) Boolean() (bool, bool) {
	if v.kind != ValueBool {
		return false, false
	}
	return v.boolean, true
}

// Time returns the date payload.
func (v Value) Time() (time.Time, bool) {
	if v.kind != ValueDate {
		return time.Time{}, false
	}
	return v.date, true
}

// Any returns the underlying value as a plain Go type.
func (v Value) Any() any {
	switch v.kind {
	case ValueText:
		return v.text
	case ValueNumber:
		return v.number
	case ValueBool:
		return v.boolean
	case ValueDate:
		return v.date
	default:
		return nil
	}
}

// String returns the display form of the value. Null renders as the
// empty string; dates use RFC 3339.
func (v Value) String() string {
	switch v.kind {
	case ValueText:
		return v.text
	case ValueNumber:
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.boolean)
	case ValueDate:
		return v.date.Format(time.RFC3339)
	default:
		return ""
	}
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case ValueText:
		return v.text == other.text
	case ValueNumber:
		return v.number == other.number
	case ValueBool:
		return v.boolean == other.boolean
	case ValueDate:
		return v.date.Equal(other.date)
	default:
		return true
	}
}

// Compare orders two values of the same comparable kind. It returns
// -1, 0, or 1 and false when the values cannot be ordered.
func (v Value) Compare(other Value) (int, bool) {
	switch {
	case v.kind == ValueNumber && other.kind == ValueNumber:
		switch {
		case v.number < other.number:
			return -1, true
		case v.number > other.number:
			return 1, true
		}
		return 0, true
	case v.kind == ValueDate && other.kind == ValueDate:
		switch {
		case v.date.Before(other.date):
			return -1, true
		case v.date.After(other.date):
			return 1, true
		}
		return 0, true
	case v.kind == ValueText && other.kind == ValueText:
		switch {
		case v.text < other.text:
			return -1, true
		case v.text > other.text:
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
