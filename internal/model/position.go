// Package model holds the value types shared by the tokenizer, parser, and
// emitter: source positions, tokens, KDL values, and parser events.
package model

import "fmt"

// Position identifies a location in a source document.
type Position struct {
	Offset int // byte offset from the start of the document
	Line   int // 1-indexed line number
	Column int // 1-indexed column number, counted in code points
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// CharSet selects which KDL syntax variant's grammar rules are active.
type CharSet int

const (
	// CharSetV1 activates KDL v1 rules: BOM is whitespace, `< > ,` are
	// forbidden in identifiers, and there is no illegal-character set.
	CharSetV1 CharSet = iota
	// CharSetV2 activates KDL v2 rules: vertical tab is whitespace, BOM is
	// illegal outside the very start of the document, and `#` is forbidden
	// in identifiers.
	CharSetV2
)

func (cs CharSet) String() string {
	switch cs {
	case CharSetV1:
		return "v1"
	case CharSetV2:
		return "v2"
	default:
		return "unknown"
	}
}
