package strutil_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ATSOTECK/kdlgo/internal/model"
	"github.com/ATSOTECK/kdlgo/internal/strutil"
)

func TestEscapeMinimalOnlyQuoteAndBackslash(t *testing.T) {
	out, err := strutil.Escape([]byte("a\"b\\c\nd"), strutil.Minimal, model.CharSetV1)
	require.NoError(t, err)
	require.Equal(t, "a\\\"b\\\\c\nd", out)
}

func TestEscapeDefaultEscapesNewlineTabControl(t *testing.T) {
	out, err := strutil.Escape([]byte("a\nb\tc\x01d"), strutil.Default, model.CharSetV1)
	require.NoError(t, err)
	require.Equal(t, `a\nb\tc\u{1}d`, out)
}

func TestEscapeAsciiModeEscapesNonASCII(t *testing.T) {
	out, err := strutil.Escape([]byte("café"), strutil.AsciiMode, model.CharSetV1)
	require.NoError(t, err)
	require.Equal(t, `caf\u{e9}`, out)
}

func TestEscapeV2EscapesIllegalCharacters(t *testing.T) {
	out, err := strutil.Escape([]byte{0xE2, 0x80, 0x8E}, strutil.Default, model.CharSetV2)
	require.NoError(t, err)
	require.Equal(t, `\u{200e}`, out)
}

func TestEscapeUnescapeRoundTrip(t *testing.T) {
	original := "hello\nworld\t\"quoted\"\\slash"
	escaped, err := strutil.Escape([]byte(original), strutil.Default, model.CharSetV1)
	require.NoError(t, err)
	back, err := strutil.UnescapeV1([]byte(escaped))
	require.NoError(t, err)
	require.Equal(t, original, back)
}
