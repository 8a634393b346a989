package models

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Kind tags the shape of a criterion value.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	default:
		return "string"
	}
}

// Value is a canonical criterion value: a number bound, a boolean requirement,
// an allowed set, or an exact-match string. The zero Value is the empty string.
type Value struct {
	kind  Kind
	num   float64
	isInt bool
	b     bool
	list  []string
	str   string
}

// Int returns an integral number value.
func Int(n int64) Value {
	return Value{kind: KindNumber, num: float64(n), isInt: true}
}

// Float returns a number value that renders with its fractional part.
func Float(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// List returns an allowed-set value. The slice is copied.
func List(items ...string) Value {
	return Value{kind: KindList, list: slices.Clone(items)}
}

func String(s string) Value {
	return Value{kind: KindString, str: s}
}

func (v Value) Kind() Kind { return v.kind }

// Number returns the numeric bound and whether v is a number.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// IsInt reports whether a number value is integral as written.
func (v Value) IsInt() bool {
	return v.kind == KindNumber && v.isInt
}

// Bool returns the boolean requirement and whether v is a bool.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Items returns a copy of the allowed set and whether v is a list.
func (v Value) Items() ([]string, bool) {
	return slices.Clone(v.list), v.kind == KindList
}

// Str returns the exact-match target and whether v is a string.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// String renders v the way it appears in reason text.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return FormatNumber(v.num, v.isInt)
	case KindBool:
		return YesNo(v.b)
	case KindList:
		return "[" + strings.Join(v.list, ", ") + "]"
	default:
		return v.str
	}
}

// Equal reports deep equality, including integral-ness of numbers.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num && v.isInt == o.isInt
	case KindBool:
		return v.b == o.b
	case KindList:
		return slices.Equal(v.list, o.list)
	default:
		return v.str == o.str
	}
}

// MarshalJSON emits the plain JSON form: 18, 18.5, true, ["SC","ST"], "Female".
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		if v.isInt {
			return []byte(strconv.FormatInt(int64(v.num), 10)), nil
		}
		s := strconv.FormatFloat(v.num, 'f', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return []byte(s), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return json.Marshal(v.str)
	}
}

// FormatNumber renders a number without a trailing ".0" for integral values.
func FormatNumber(f float64, isInt bool) string {
	if isInt || (f == math.Trunc(f) && math.Abs(f) < 1e15) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// YesNo renders a boolean requirement.
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
