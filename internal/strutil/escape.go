package strutil

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ATSOTECK/kdlgo/internal/charset"
	"github.com/ATSOTECK/kdlgo/internal/codec"
	"github.com/ATSOTECK/kdlgo/internal/model"
)

// EscapeMode selects which characters beyond the mandatory minimum get
// backslash-escaped. Flags combine with bitwise OR, mirroring ckdl's
// kdl_escape_mode (original_source/include/kdl/common.h).
type EscapeMode int

const (
	// Minimal always escapes '\' and '"'; nothing else.
	Minimal EscapeMode = 0
	// Control escapes ASCII control characters (and, in v2, vertical tab).
	Control EscapeMode = 0x10
	// Newline escapes LF, CR, FF, NEL, LS, PS.
	Newline EscapeMode = 0x20
	// Tab escapes TAB.
	Tab EscapeMode = 0x40
	asciiModeBit EscapeMode = 0x100
	// AsciiMode additionally escapes every code point >= 0x7F.
	AsciiMode EscapeMode = asciiModeBit | Control | Newline | Tab
	// Default escapes control characters, newlines, and tabs but leaves
	// non-ASCII text intact.
	Default EscapeMode = Control | Newline | Tab
)

func (m EscapeMode) hasAsciiMode() bool { return m&AsciiMode == AsciiMode }

// Escape backslash-escapes s according to mode, honoring version-specific
// rules (v2 additionally substitutes a \u{} escape for any character that
// is illegal in v2 source text, rather than ever emitting it literally).
func Escape(s []byte, mode EscapeMode, version model.CharSet) (string, error) {
	buf := NewBuffer(len(s) * 2)

	i := 0
	for i < len(s) {
		c, size, status := codec.DecodeOne(s[i:])
		if status != codec.OK {
			return "", errors.New("strutil: invalid UTF-8 in string to escape")
		}
		orig := s[i : i+size]
		i += size

		switch {
		case c > 0x10FFFF:
			return "", fmt.Errorf("strutil: code point U+%X out of range", c)
		case c == 0x0A && mode&Newline != 0:
			buf.WriteString(`\n`)
		case c == 0x0D && mode&Newline != 0:
			buf.WriteString(`\r`)
		case c == 0x09 && mode&Tab != 0:
			buf.WriteString(`\t`)
		case c == 0x5C:
			buf.WriteString(`\\`)
		case c == 0x22:
			buf.WriteString(`\"`)
		case c == 0x08 && mode&Control != 0:
			buf.WriteString(`\b`)
		case c == 0x0C && mode&Newline != 0:
			buf.WriteString(`\f`)
		case needsUnicodeEscape(mode, version, c):
			buf.WriteString(`\u{`)
			buf.WriteString(strconv.FormatInt(int64(c), 16))
			buf.WriteByte('}')
		default:
			buf.WriteBytes(orig)
		}
	}
	return buf.String(), nil
}

// needsUnicodeEscape decides whether c must be rendered as \u{...} rather
// than a named escape or literal bytes.
func needsUnicodeEscape(mode EscapeMode, version model.CharSet, c rune) bool {
	controlMisc := mode&Control != 0 &&
		((c < 0x20 && c != 0x0A && c != 0x0D && c != 0x09 && c != 0x0C) || c == 0x7F)
	extraNewlines := mode&Newline != 0 && (c == 0x85 || c == 0x2028 || c == 0x2029)
	v2VerticalTab := version == model.CharSetV2 && mode&Control != 0 && c == 0x0B
	asciiMode := mode.hasAsciiMode() && c >= 0x7F
	illegalInV2 := version == model.CharSetV2 && charset.IsIllegal(model.CharSetV2, c)
	return controlMisc || extraNewlines || v2VerticalTab || asciiMode || illegalInV2
}
