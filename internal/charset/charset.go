// Package charset implements the character classification predicates the
// tokenizer and parser use, parameterized by which KDL syntax version is
// active (spec §4.2). The code-point tables mirror ckdl's
// _kdl_is_whitespace/_kdl_is_newline/_kdl_is_id family
// (original_source/src/tokenizer.c), extended for KDL v2 per spec wording.
package charset

import "github.com/ATSOTECK/kdlgo/internal/model"

// IsWhitespace reports whether c is KDL whitespace under the given
// character set. v1 treats the BOM as whitespace; v2 does not, but adds
// vertical tab.
func IsWhitespace(cs model.CharSet, c rune) bool {
	switch c {
	case 0x0009, // TAB
		0x0020, // SPACE
		0x00A0, // NO-BREAK SPACE
		0x1680, // OGHAM SPACE MARK
		0x2000, 0x2001, 0x2002, 0x2003, 0x2004,
		0x2005, 0x2006, 0x2007, 0x2008, 0x2009, 0x200A,
		0x202F, // NARROW NO-BREAK SPACE
		0x205F, // MEDIUM MATHEMATICAL SPACE
		0x3000: // IDEOGRAPHIC SPACE
		return true
	case 0xFEFF: // BOM
		return cs == model.CharSetV1
	case 0x000B: // VERTICAL TAB
		return cs == model.CharSetV2
	default:
		return false
	}
}

// IsNewline reports whether c is one of the six newline forms KDL
// recognizes. CRLF is handled as a pair by the tokenizer; each half is a
// newline character in isolation.
func IsNewline(c rune) bool {
	switch c {
	case 0x000D, // CR
		0x000A, // LF
		0x0085, // NEL
		0x000C, // FF
		0x2028, // LS
		0x2029: // PS
		return true
	default:
		return false
	}
}

// IsIllegal reports whether c is illegal in KDL v2 source text. v1 has no
// illegal-character rule at this layer.
func IsIllegal(cs model.CharSet, c rune) bool {
	if cs != model.CharSetV2 {
		return false
	}
	switch {
	case c > 0x10FFFF:
		return true
	case c <= 0x08:
		return true
	case c >= 0x0E && c <= 0x1F:
		return true
	case c == 0x7F: // DEL
		return true
	case c >= 0xD800 && c <= 0xDFFF: // UTF-16 surrogate
		return true
	case c == 0x200E || c == 0x200F: // directional marks
		return true
	case c >= 0x202A && c <= 0x202E: // directional embedding/override
		return true
	case c >= 0x2066 && c <= 0x2069: // directional isolate
		return true
	case c == 0xFEFF: // BOM
		return true
	default:
		return false
	}
}

// forbiddenPunctuation is shared by word-character classification in both
// versions.
func forbiddenPunctuation(c rune) bool {
	switch c {
	case '\\', '/', '(', ')', '{', '}', ';', '[', ']', '"', '=':
		return true
	default:
		return false
	}
}

// IsWordChar reports whether c may appear in an unquoted word (identifier,
// number, or keyword literal).
func IsWordChar(cs model.CharSet, c rune) bool {
	if c <= 0x20 || c > 0x10FFFF {
		return false
	}
	if forbiddenPunctuation(c) {
		return false
	}
	if cs == model.CharSetV1 {
		if c == '<' || c == '>' || c == ',' {
			return false
		}
	}
	if IsWhitespace(cs, c) || IsNewline(c) {
		return false
	}
	if cs == model.CharSetV2 && IsIllegal(cs, c) {
		return false
	}
	return true
}

// IsIdentChar reports whether c may appear in a bare identifier. Identical
// to IsWordChar except that v2 additionally forbids '#'.
func IsIdentChar(cs model.CharSet, c rune) bool {
	if !IsWordChar(cs, c) {
		return false
	}
	if cs == model.CharSetV2 && c == '#' {
		return false
	}
	return true
}

// IsIdentStart reports whether c may begin a bare identifier: an identifier
// character that is not a decimal digit.
func IsIdentStart(cs model.CharSet, c rune) bool {
	return IsIdentChar(cs, c) && !(c >= '0' && c <= '9')
}

// IsEndOfWord reports whether c terminates an in-progress word token.
func IsEndOfWord(cs model.CharSet, c rune) bool {
	if IsWhitespace(cs, c) || IsNewline(c) {
		return true
	}
	switch c {
	case ';', ')', '}', '/', '\\', '=':
		return true
	default:
		return false
	}
}

// equalsLookalikes are v2 code points that function as '=' in property and
// type-annotation position, per spec §4.2.
var equalsLookalikes = map[rune]bool{
	'=':     true,
	0xFE66:  true, // SMALL EQUALS SIGN
	0xFF1D:  true, // FULLWIDTH EQUALS SIGN
	0x1F7F0: true, // HEAVY EQUALS SIGN
}

// IsEqualsSign reports whether c is recognized as an equals sign. v1 only
// recognizes the ASCII '='; v2 also recognizes a small set of Unicode
// equals-like code points.
func IsEqualsSign(cs model.CharSet, c rune) bool {
	if cs == model.CharSetV1 {
		return c == '='
	}
	return equalsLookalikes[c]
}
