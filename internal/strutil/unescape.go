package strutil

import (
	"fmt"

	"github.com/ATSOTECK/kdlgo/internal/charset"
	"github.com/ATSOTECK/kdlgo/internal/codec"
	"github.com/ATSOTECK/kdlgo/internal/model"
)

// UnescapeV1 reverses the v1 escape set: \n \r \t \\ \/ \" \b \f and
// \u{1-6 hex digits}. Any other backslash sequence is a format error,
// grounded on ckdl's kdl_unescape_v1 (original_source/src/str.c).
func UnescapeV1(s []byte) (string, error) {
	buf := NewBuffer(len(s))

	i := 0
	for i < len(s) {
		c := s[i]
		if c != '\\' {
			buf.WriteByte(c)
			i++
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("strutil: trailing backslash")
		}
		switch s[i] {
		case 'n':
			buf.WriteByte('\n')
			i++
		case 'r':
			buf.WriteByte('\r')
			i++
		case 't':
			buf.WriteByte('\t')
			i++
		case '\\':
			buf.WriteByte('\\')
			i++
		case '/':
			buf.WriteByte('/')
			i++
		case '"':
			buf.WriteByte('"')
			i++
		case 'b':
			buf.WriteByte('\b')
			i++
		case 'f':
			buf.WriteByte('\f')
			i++
		case 'u':
			i++
			cp, n, err := parseHexEscape(s[i:])
			if err != nil {
				return "", err
			}
			i += n
			if !buf.WriteRune(cp) {
				return "", fmt.Errorf("strutil: \\u{%x} is not a valid code point", cp)
			}
		default:
			return "", fmt.Errorf("strutil: unknown escape sequence \\%c", s[i])
		}
	}
	return buf.String(), nil
}

// parseHexEscape parses the "{1-6 hex digits}" tail of a \u escape and
// returns the decoded code point together with the number of input bytes
// consumed (including the braces).
func parseHexEscape(s []byte) (rune, int, error) {
	if len(s) == 0 || s[0] != '{' {
		return 0, 0, fmt.Errorf("strutil: \\u must be followed by '{'")
	}
	i := 1
	var v rune
	digits := 0
	for i < len(s) && s[i] != '}' {
		d, ok := hexDigit(s[i])
		if !ok {
			return 0, 0, fmt.Errorf("strutil: invalid hex digit %q in \\u escape", s[i])
		}
		v = v<<4 | rune(d)
		digits++
		if digits > 6 {
			return 0, 0, fmt.Errorf("strutil: \\u escape has too many hex digits")
		}
		i++
	}
	if digits == 0 {
		return 0, 0, fmt.Errorf("strutil: \\u{} escape is empty")
	}
	if i >= len(s) || s[i] != '}' {
		return 0, 0, fmt.Errorf("strutil: unterminated \\u escape")
	}
	return v, i + 1, nil
}

func hexDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

// UnescapeV2Line reverses a single-line v2 string's escapes: the v1 set
// plus \s (space) and a backslash followed by a run of whitespace and
// newlines (any number of each), which is elided entirely (a line
// continuation). Every literal code point is rejected if charset.IsIllegal
// reports it illegal in v2; a \u{...} escape is rejected only for a
// surrogate or a value above U+10FFFF. Grounded on ckdl's kdl_unescape_v2
// (original_source/src/str.c).
func UnescapeV2Line(s []byte) (string, error) {
	buf := NewBuffer(len(s))

	i := 0
	for i < len(s) {
		c, size, status := codec.DecodeOne(s[i:])
		if status != codec.OK {
			return "", fmt.Errorf("strutil: invalid UTF-8 in string to unescape")
		}

		if c != '\\' {
			if charset.IsIllegal(model.CharSetV2, c) {
				return "", fmt.Errorf("strutil: illegal code point U+%X", c)
			}
			buf.WriteBytes(s[i : i+size])
			i += size
			continue
		}
		i += size

		if i >= len(s) {
			return "", fmt.Errorf("strutil: trailing backslash")
		}
		ec, esize, status := codec.DecodeOne(s[i:])
		if status != codec.OK {
			return "", fmt.Errorf("strutil: invalid UTF-8 after backslash")
		}

		switch ec {
		case 'n':
			buf.WriteByte('\n')
			i += esize
		case 'r':
			buf.WriteByte('\r')
			i += esize
		case 't':
			buf.WriteByte('\t')
			i += esize
		case '\\':
			buf.WriteByte('\\')
			i += esize
		case '/':
			buf.WriteByte('/')
			i += esize
		case '"':
			buf.WriteByte('"')
			i += esize
		case 'b':
			buf.WriteByte('\b')
			i += esize
		case 'f':
			buf.WriteByte('\f')
			i += esize
		case 's':
			buf.WriteByte(' ')
			i += esize
		case 'u':
			i += esize
			cp, n, err := parseHexEscape(s[i:])
			if err != nil {
				return "", err
			}
			i += n
			if cp >= 0xD800 && cp <= 0xDFFF {
				return "", fmt.Errorf("strutil: \\u{%x} is a surrogate code point", cp)
			}
			if !buf.WriteRune(cp) {
				return "", fmt.Errorf("strutil: \\u{%x} is not a valid code point", cp)
			}
		default:
			if !charset.IsWhitespace(model.CharSetV2, ec) && !charset.IsNewline(ec) {
				return "", fmt.Errorf("strutil: unknown escape sequence \\%c", ec)
			}
			// A backslash followed by whitespace and/or newlines consumes
			// the entire run (spec §4.4); any number of newlines, in any
			// position within the run, is fine.
			i += esize
			for i < len(s) {
				wc, wsize, status := codec.DecodeOne(s[i:])
				if status != codec.OK {
					break
				}
				if charset.IsNewline(wc) || charset.IsWhitespace(model.CharSetV2, wc) {
					i += wsize
					continue
				}
				break
			}
		}
	}
	return buf.String(), nil
}
