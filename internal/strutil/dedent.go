package strutil

import (
	"fmt"
	"strings"

	"github.com/ATSOTECK/kdlgo/internal/charset"
	"github.com/ATSOTECK/kdlgo/internal/codec"
	"github.com/ATSOTECK/kdlgo/internal/model"
)

// normalizeNewlines rewrites every KDL newline form (CRLF, CR, NEL, FF, LS,
// PS) in s to a plain LF, matching the first step of ckdl's multi-line
// string handling (original_source/src/str.c, _kdl_dedent_multiline_string).
func normalizeNewlines(s []byte) string {
	var buf strings.Builder
	buf.Grow(len(s))

	i := 0
	for i < len(s) {
		c, size, status := codec.DecodeOne(s[i:])
		if status != codec.OK {
			buf.WriteByte(s[i])
			i++
			continue
		}
		if c == '\r' {
			i += size
			if i < len(s) {
				if nc, nsize, nstatus := codec.DecodeOne(s[i:]); nstatus == codec.OK && nc == '\n' {
					i += nsize
				}
			}
			buf.WriteByte('\n')
			continue
		}
		if charset.IsNewline(c) {
			buf.WriteByte('\n')
			i += size
			continue
		}
		buf.WriteString(string(s[i : i+size]))
		i += size
	}
	return buf.String()
}

// DedentMultiline implements spec §4.4's five-step algorithm for multi-line
// (triple-quoted) strings: normalize newlines, require the text to open and
// close on newlines, strip the final line's whitespace as a common indent
// from every other line, and unescape what remains.
//
// A multi-line string with no newline at all is a format error here even
// though ckdl's C implementation passes such text through unchanged — spec
// §7 lists a missing mandatory leading/trailing newline as a semantic
// error, and that explicit requirement takes precedence.
func DedentMultiline(s []byte) (string, error) {
	dedented, err := dedentLines(s)
	if err != nil {
		return "", err
	}
	return UnescapeV2Line([]byte(dedented))
}

// DedentMultilineRaw applies the same indentation-stripping rules as
// DedentMultiline but skips the final unescape step, for raw multi-line
// strings whose body has no escape sequences to resolve.
func DedentMultilineRaw(s []byte) (string, error) {
	return dedentLines(s)
}

func dedentLines(s []byte) (string, error) {
	normalized := normalizeNewlines(s)

	last := strings.LastIndexByte(normalized, '\n')
	if last < 0 {
		return "", fmt.Errorf("strutil: multi-line string has no newline")
	}

	indent := normalized[last+1:]
	if err := requireAllWhitespaceV2(indent); err != nil {
		return "", fmt.Errorf("strutil: multi-line string closing line: %w", err)
	}

	if !strings.HasPrefix(normalized, "\n") {
		return "", fmt.Errorf("strutil: multi-line string must open with a newline")
	}

	body := normalized[1:last]
	lines := strings.Split(body, "\n")

	out := make([]string, len(lines))
	for idx, line := range lines {
		if line == "" {
			out[idx] = line
			continue
		}
		trimmed, ok := strings.CutPrefix(line, indent)
		if !ok {
			return "", fmt.Errorf("strutil: multi-line string line %d does not match closing indent", idx+1)
		}
		out[idx] = trimmed
	}

	return strings.Join(out, "\n"), nil
}

func requireAllWhitespaceV2(s string) error {
	i := 0
	b := []byte(s)
	for i < len(b) {
		c, size, status := codec.DecodeOne(b[i:])
		if status != codec.OK {
			return fmt.Errorf("invalid UTF-8")
		}
		if !charset.IsWhitespace(model.CharSetV2, c) {
			return fmt.Errorf("non-whitespace character %q before closing quotes", c)
		}
		i += size
	}
	return nil
}
