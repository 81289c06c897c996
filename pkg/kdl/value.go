package kdl

import "github.com/ATSOTECK/kdlgo/internal/model"

// Position locates a token or event in the source document.
type Position = model.Position

// EventKind identifies the kind of a parser Event. The CommentBit may be
// OR-ed onto any structural kind to mark a slashdash-elided item when
// ParserOptions.EmitComments is set.
type EventKind = model.EventKind

const (
	EventEOF        = model.EventEOF
	EventParseError = model.EventParseError
	EventStartNode  = model.EventStartNode
	EventEndNode    = model.EventEndNode
	EventArgument   = model.EventArgument
	EventProperty   = model.EventProperty
	EventComment    = model.EventComment

	// CommentBit marks an event as slashdash-commented-out rather than
	// dropped. Use Event.Kind.Kind() to strip it off before switching on
	// the structural kind.
	CommentBit = model.CommentBit
)

// Event is a single item in a Parser's output stream. Name and Value (and
// any strings reachable through them) are borrowed: they are only
// guaranteed valid until the next call to Next on the same Parser.
type Event = model.Event

// ValueKind identifies the kind held by a Value.
type ValueKind = model.ValueKind

const (
	ValueNull   = model.ValueNull
	ValueBool   = model.ValueBool
	ValueNumber = model.ValueNumber
	ValueString = model.ValueString
)

// Value is a KDL argument or property value: null, a bool, a Number, or a
// string, optionally carrying a type annotation.
type Value = model.Value

// TypeAnnotation is the optional `(name)` prefix on a value or node.
type TypeAnnotation = model.TypeAnnotation

// NullValue returns the KDL null value.
func NullValue() Value { return model.NullValue() }

// BoolValue wraps a bool as a Value.
func BoolValue(b bool) Value { return model.BoolValue(b) }

// NumberValue wraps a Number as a Value.
func NumberValue(n Number) Value { return model.NumberValue(n) }

// StringValue wraps a string as a Value.
func StringValue(s string) Value { return model.StringValue(s) }

// NumberKind identifies the representation held by a Number.
type NumberKind = model.NumberKind

const (
	NumberInt64         = model.NumberInt64
	NumberFloat64       = model.NumberFloat64
	NumberStringEncoded = model.NumberStringEncoded
)

// Number is a KDL numeric value: a signed 64-bit integer, a float64, or
// its canonical decimal string (for integers too large for int64, and for
// decimal float literals with more than 15 digits or an exponent of
// magnitude 285 or more).
type Number = model.Number

// Int wraps a signed 64-bit integer as a Number.
func Int(n int64) Number { return model.Int(n) }

// Float wraps a float64 as a Number.
func Float(f float64) Number { return model.Float(f) }

// EncodedNumber wraps an out-of-range integer's canonical decimal string
// (sign preserved, underscores removed) as a Number.
func EncodedNumber(s string) Number { return model.EncodedNumber(s) }
