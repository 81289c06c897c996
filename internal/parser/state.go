package parser

// baseState is the parser's primary position: at the document root or
// between sibling nodes inside a children block, versus inside a node
// header collecting its type, arguments, properties, and children block.
type baseState int

const (
	outsideNode baseState = iota
	inNode
)

// flags is the orthogonal bitfield of position/modifier flags layered on
// top of baseState (spec §4.6).
type flags uint32

const (
	flagAwaitingTypeID flags = 1 << iota
	flagAwaitingTypeClose
	flagTypeClosed
	flagInProperty
	flagMaybeInProperty
	flagBarePropertyName
	flagNewlinesAreWhitespace
	flagEndOfNode
	flagEndOfNodeOrChildBlock
	flagLineCont
	flagContextualWhitespaceSeen
)

func (f flags) has(bit flags) bool { return f&bit != 0 }

// versionState is the lattice the parser moves through as constructs in
// the input force a commitment to v1 or v2 (spec §4.6 "Version detection").
type versionState int

const (
	versionUnknown versionState = iota
	versionV1
	versionV2
	versionConflict
)

// VersionMode selects the parser's version-handling policy (spec §6
// "Parser options").
type VersionMode int

const (
	// DetectVersion tentatively accepts constructs legal in either version
	// until one forces a commitment.
	DetectVersion VersionMode = iota
	// ForceV1 rejects any construct that is v2-only.
	ForceV1
	// ForceV2 rejects any construct that is v1-only.
	ForceV2
)

// Options configures a Parser (spec §6 "Parser options").
type Options struct {
	Version      VersionMode
	EmitComments bool
}
