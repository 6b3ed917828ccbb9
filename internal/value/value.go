package value

import (
	"math"
	"strconv"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindBool Kind = iota
	KindNil
	KindNumber
	KindObj
	// KindEmpty is an internal "no value" marker. Script code never sees it;
	// the table uses it for unused keys and deleted values.
	KindEmpty
)

// Value is an immutable tagged union, copied by value everywhere.
type Value struct {
	Kind Kind
	B    bool
	Num  float64
	Obj  Obj
}

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{Kind: KindBool, B: b} }

// Nil returns the nil value.
func Nil() Value { return Value{Kind: KindNil} }

// Number wraps a float64.
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// FromObj wraps a heap object.
func FromObj(o Obj) Value { return Value{Kind: KindObj, Obj: o} }

// Empty returns the internal no-value marker.
func Empty() Value { return Value{Kind: KindEmpty} }

func (v Value) IsBool() bool   { return v.Kind == KindBool }
func (v Value) IsNil() bool    { return v.Kind == KindNil }
func (v Value) IsNumber() bool { return v.Kind == KindNumber }
func (v Value) IsObj() bool    { return v.Kind == KindObj }
func (v Value) IsEmpty() bool  { return v.Kind == KindEmpty }

// IsString reports whether v references a string object.
func (v Value) IsString() bool {
	if v.Kind != KindObj {
		return false
	}
	_, ok := v.Obj.(*ObjString)
	return ok
}

// AsString returns the string object held by v, or nil.
func (v Value) AsString() *ObjString {
	if v.Kind != KindObj {
		return nil
	}
	s, _ := v.Obj.(*ObjString)
	return s
}

// IsFalsey reports whether v is nil or false. Every other value,
// including 0 and the empty string, is truthy.
func IsFalsey(v Value) bool {
	switch v.Kind {
	case KindNil:
		return true
	case KindBool:
		return !v.B
	default:
		return false
	}
}

// Equal compares two values. Values of different kinds are never equal and
// objects compare by identity, which is string equality for interned strings.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindBool:
		return a.B == b.B
	case KindNil, KindEmpty:
		return true
	case KindNumber:
		return a.Num == b.Num
	case KindObj:
		return a.Obj == b.Obj
	default:
		return false
	}
}

// Hash returns the table hash of v.
func Hash(v Value) uint32 {
	switch v.Kind {
	case KindBool:
		if v.B {
			return 0
		}
		return 1
	case KindNil:
		return 2
	case KindEmpty:
		return 3
	case KindNumber:
		return hashNumber(v.Num)
	case KindObj:
		if s, ok := v.Obj.(*ObjString); ok {
			return s.Hash
		}
		return 0
	default:
		return 0
	}
}

func hashNumber(n float64) uint32 {
	bits := math.Float64bits(n + 1)
	return uint32(bits) + uint32(bits>>32)
}

// String renders v the way the print statement shows it.
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		if v.B {
			return "true"
		}
		return "false"
	case KindNil:
		return "nil"
	case KindNumber:
		return formatNumber(v.Num)
	case KindObj:
		if v.Obj == nil {
			return "<nil obj>"
		}
		return v.Obj.String()
	case KindEmpty:
		return "[empty]"
	default:
		return "<unknown>"
	}
}

// formatNumber mirrors C's "%g": six significant digits, trailing zeros
// trimmed, exponent form outside [1e-4, 1e6).
func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "nan"
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	}
	return strconv.FormatFloat(n, 'g', 6, 64)
}

// TypeName reports the dynamic type name for a value.
func TypeName(v Value) string {
	switch v.Kind {
	case KindBool:
		return "bool"
	case KindNil:
		return "nil"
	case KindNumber:
		return "number"
	case KindObj:
		if v.Obj == nil {
			return "object"
		}
		return v.Obj.Type().String()
	case KindEmpty:
		return "empty"
	default:
		return "unknown"
	}
}
