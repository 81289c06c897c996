package emitter

import (
	"github.com/ATSOTECK/kdlgo/internal/model"
	"github.com/ATSOTECK/kdlgo/internal/strutil"
)

// IdentifierMode selects how node/property/type-annotation names are
// rendered, grounded on ckdl's kdl_identifier_emission_mode
// (original_source/include/kdl/emitter.h).
type IdentifierMode int

const (
	// PreferBareIdentifiers writes a name unquoted whenever it is a valid
	// bare identifier, quoting it only when it isn't.
	PreferBareIdentifiers IdentifierMode = iota
	// QuoteAllIdentifiers always wraps names in quotes.
	QuoteAllIdentifiers
	// AsciiIdentifiers behaves like PreferBareIdentifiers but additionally
	// quotes any name containing a non-ASCII code point.
	AsciiIdentifiers
)

// FloatFormat controls how floating-point numbers are rendered, grounded
// on ckdl's kdl_float_printing_options.
type FloatFormat struct {
	AlwaysWriteDecimalPoint           bool
	AlwaysWriteDecimalPointOrExponent bool
	CapitalE                          bool
	ExponentPlus                      bool
	Plus                              bool
	MinExponent                       int
}

// DefaultFloatFormat matches ckdl's KDL_DEFAULT_EMITTER_OPTIONS float_mode.
var DefaultFloatFormat = FloatFormat{
	AlwaysWriteDecimalPointOrExponent: true,
	MinExponent:                       4,
}

// Options configures an Emitter (spec §4.7, §6 "Emitter options").
type Options struct {
	Indent         int
	EscapeMode     strutil.EscapeMode
	IdentifierMode IdentifierMode
	Version        model.CharSet
	Float          FloatFormat
}

// DefaultOptions matches ckdl's KDL_DEFAULT_EMITTER_OPTIONS.
var DefaultOptions = Options{
	Indent:         4,
	EscapeMode:     strutil.Default,
	IdentifierMode: PreferBareIdentifiers,
	Version:        model.CharSetV1,
	Float:          DefaultFloatFormat,
}
