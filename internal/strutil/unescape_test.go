package strutil_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ATSOTECK/kdlgo/internal/strutil"
)

func TestUnescapeV1Basic(t *testing.T) {
	out, err := strutil.UnescapeV1([]byte(`a\nb\tc\\d\"e`))
	require.NoError(t, err)
	require.Equal(t, "a\nb\tc\\d\"e", out)
}

func TestUnescapeV1UnicodeEscape(t *testing.T) {
	out, err := strutil.UnescapeV1([]byte(`\u{48}\u{65}\u{6C}\u{6C}\u{6F}`))
	require.NoError(t, err)
	require.Equal(t, "Hello", out)
}

func TestUnescapeV1RejectsUnknownEscape(t *testing.T) {
	_, err := strutil.UnescapeV1([]byte(`\q`))
	require.Error(t, err)
}

func TestUnescapeV1RejectsTrailingBackslash(t *testing.T) {
	_, err := strutil.UnescapeV1([]byte(`abc\`))
	require.Error(t, err)
}

func TestUnescapeV2LineSpaceEscape(t *testing.T) {
	out, err := strutil.UnescapeV2Line([]byte(`a\sb`))
	require.NoError(t, err)
	require.Equal(t, "a b", out)
}

func TestUnescapeV2LineLineContinuation(t *testing.T) {
	out, err := strutil.UnescapeV2Line([]byte("a\\\n   b"))
	require.NoError(t, err)
	require.Equal(t, "ab", out)
}

func TestUnescapeV2LineWhitespaceEscapeWithoutNewline(t *testing.T) {
	out, err := strutil.UnescapeV2Line([]byte("a\\   b"))
	require.NoError(t, err)
	require.Equal(t, "ab", out)
}

func TestUnescapeV2LineLineContinuationMultipleNewlines(t *testing.T) {
	out, err := strutil.UnescapeV2Line([]byte("a\\\n\n   b"))
	require.NoError(t, err)
	require.Equal(t, "ab", out)
}

func TestUnescapeV2LineRejectsSurrogate(t *testing.T) {
	_, err := strutil.UnescapeV2Line([]byte(`\u{d800}`))
	require.Error(t, err)
}

func TestUnescapeV2LineRejectsIllegalCharacter(t *testing.T) {
	_, err := strutil.UnescapeV2Line([]byte{0xE2, 0x80, 0x8E})
	require.Error(t, err)
}
