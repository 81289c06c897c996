package kdl

import (
	"github.com/ATSOTECK/kdlgo/internal/emitter"
	"github.com/ATSOTECK/kdlgo/internal/model"
	"github.com/ATSOTECK/kdlgo/internal/parser"
	"github.com/ATSOTECK/kdlgo/internal/strutil"
)

// VersionMode selects how a Parser handles the v1/v2 ambiguity (spec §6
// "Parser options").
type VersionMode = parser.VersionMode

const (
	// DetectVersion tentatively accepts constructs legal in either version
	// until one forces a commitment. This is the default.
	DetectVersion = parser.DetectVersion
	// ForceV1 rejects any construct that is v2-only.
	ForceV1 = parser.ForceV1
	// ForceV2 rejects any construct that is v1-only.
	ForceV2 = parser.ForceV2
)

// ParserOptions configures a Parser.
type ParserOptions struct {
	// Version selects the version-handling policy. Defaults to
	// DetectVersion.
	Version VersionMode
	// EmitComments, when true, makes comment tokens visible as
	// EventComment events and causes slashdash-suppressed events to be
	// emitted with the comment bit set rather than dropped.
	EmitComments bool
}

// DefaultParserOptions returns the default parser configuration: detect
// the document's version, don't surface comments.
func DefaultParserOptions() ParserOptions {
	return ParserOptions{Version: DetectVersion}
}

func (o ParserOptions) toInternal() parser.Options {
	return parser.Options{Version: o.Version, EmitComments: o.EmitComments}
}

// IdentifierMode selects how node/property/type-annotation names are
// rendered by an Emitter.
type IdentifierMode = emitter.IdentifierMode

const (
	// PreferBareIdentifiers writes a name unquoted whenever it is a valid
	// bare identifier, quoting it only when it isn't. This is the default.
	PreferBareIdentifiers = emitter.PreferBareIdentifiers
	// QuoteAllIdentifiers always wraps names in quotes.
	QuoteAllIdentifiers = emitter.QuoteAllIdentifiers
	// AsciiIdentifiers behaves like PreferBareIdentifiers but additionally
	// quotes any name containing a non-ASCII code point.
	AsciiIdentifiers = emitter.AsciiIdentifiers
)

// EscapeMode selects which characters an Emitter backslash-escapes when
// writing a quoted string (spec §4.4).
type EscapeMode = strutil.EscapeMode

const (
	EscapeMinimal   = strutil.Minimal
	EscapeControl   = strutil.Control
	EscapeNewline   = strutil.Newline
	EscapeTab       = strutil.Tab
	EscapeAsciiMode = strutil.AsciiMode
	EscapeDefault   = strutil.Default
)

// FloatFormat controls how floating-point numbers are rendered (spec §4.7
// "Float-mode sub-options").
type FloatFormat = emitter.FloatFormat

// DefaultFloatFormat is the default float rendering mode: shortest
// round-trip representation, always carrying a decimal point or exponent.
func DefaultFloatFormat() FloatFormat {
	return emitter.DefaultFloatFormat
}

// Version identifies which KDL dialect an Emitter targets, and which
// charset rules apply when escaping strings.
type Version = model.CharSet

const (
	VersionV1 = model.CharSetV1
	VersionV2 = model.CharSetV2
)

// EmitterOptions configures an Emitter.
type EmitterOptions struct {
	// Indent is the number of spaces per nesting level.
	Indent int
	// EscapeMode selects which characters get backslash-escaped.
	EscapeMode EscapeMode
	// IdentifierMode selects bare-vs-quoted rendering of names.
	IdentifierMode IdentifierMode
	// Version selects the target KDL dialect's escaping/identifier rules.
	Version Version
	// Float configures floating-point rendering.
	Float FloatFormat
}

// DefaultEmitterOptions returns ckdl's default emitter configuration: four
// spaces of indent, default escaping, bare identifiers preferred, v1
// rules, shortest round-trip floats.
func DefaultEmitterOptions() EmitterOptions {
	return EmitterOptions{
		Indent:         4,
		EscapeMode:     EscapeDefault,
		IdentifierMode: PreferBareIdentifiers,
		Version:        VersionV1,
		Float:          DefaultFloatFormat(),
	}
}

func (o EmitterOptions) toInternal() emitter.Options {
	return emitter.Options{
		Indent:         o.Indent,
		EscapeMode:     o.EscapeMode,
		IdentifierMode: o.IdentifierMode,
		Version:        o.Version,
		Float:          o.Float,
	}
}
