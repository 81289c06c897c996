package model

import "fmt"

// ValueKind discriminates the KDL value union (spec §3).
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueBool
	ValueNumber
	ValueString
)

func (k ValueKind) String() string {
	switch k {
	case ValueNull:
		return "null"
	case ValueBool:
		return "boolean"
	case ValueNumber:
		return "number"
	case ValueString:
		return "string"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// NumberKind discriminates how a Number's magnitude is represented.
type NumberKind int

const (
	// NumberInt64 holds an exact signed 64-bit integer.
	NumberInt64 NumberKind = iota
	// NumberFloat64 holds an IEEE-754 double.
	NumberFloat64
	// NumberStringEncoded holds a canonical decimal/hex/octal/binary string,
	// used when the literal's magnitude exceeds signed 64-bit range or when
	// exact source precision must be preserved.
	NumberStringEncoded
)

// Number is a discriminated union of the three ways a KDL number can be
// represented internally.
type Number struct {
	Kind    NumberKind
	Int     int64
	Float   float64
	Encoded string
}

func Int(n int64) Number          { return Number{Kind: NumberInt64, Int: n} }
func Float(f float64) Number      { return Number{Kind: NumberFloat64, Float: f} }
func EncodedNumber(s string) Number { return Number{Kind: NumberStringEncoded, Encoded: s} }

func (n Number) String() string {
	switch n.Kind {
	case NumberInt64:
		return fmt.Sprintf("%d", n.Int)
	case NumberFloat64:
		return fmt.Sprintf("%v", n.Float)
	case NumberStringEncoded:
		return n.Encoded
	default:
		return "<invalid number>"
	}
}

// TypeAnnotation is the optional parenthesized identifier or quoted string
// preceding a node name or value.
type TypeAnnotation struct {
	Present bool
	Name    string
}

// Value is the KDL value union: {null, boolean, number, string} plus an
// optional type annotation.
type Value struct {
	Kind   ValueKind
	Bool   bool
	Number Number
	String string
	Type   TypeAnnotation
}

func NullValue() Value           { return Value{Kind: ValueNull} }
func BoolValue(b bool) Value     { return Value{Kind: ValueBool, Bool: b} }
func NumberValue(n Number) Value { return Value{Kind: ValueNumber, Number: n} }
func StringValue(s string) Value { return Value{Kind: ValueString, String: s} }

// WithType returns a copy of v carrying the given type annotation.
func (v Value) WithType(name string) Value {
	v.Type = TypeAnnotation{Present: true, Name: name}
	return v
}

// Format writes v as text for every fmt verb: an optional "(type)" prefix,
// then null, the boolean, the number, or the quoted string.
func (v Value) Format(f fmt.State, verb rune) {
	fmt.Fprint(f, v.text())
}

func (v Value) text() string {
	prefix := ""
	if v.Type.Present {
		prefix = fmt.Sprintf("(%s)", v.Type.Name)
	}
	switch v.Kind {
	case ValueNull:
		return prefix + "null"
	case ValueBool:
		return fmt.Sprintf("%s%v", prefix, v.Bool)
	case ValueNumber:
		return prefix + v.Number.String()
	case ValueString:
		return fmt.Sprintf("%s%q", prefix, v.String)
	default:
		return prefix + "<invalid value>"
	}
}
