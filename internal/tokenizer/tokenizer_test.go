package tokenizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ATSOTECK/kdlgo/internal/model"
	"github.com/ATSOTECK/kdlgo/internal/tokenizer"
)

func tokenize(t *testing.T, doc string, cs model.CharSet) []model.Token {
	t.Helper()
	tk := tokenizer.NewString([]byte(doc), cs)
	var toks []model.Token
	for {
		tok, err := tk.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == model.TokenEOF {
			return toks
		}
	}
}

func TestTokenizeIdentifierAndWhitespace(t *testing.T) {
	toks := tokenize(t, "node arg", model.CharSetV1)
	require.Equal(t, model.TokenWord, toks[0].Kind)
	require.Equal(t, "node", string(toks[0].Text))
	require.Equal(t, model.TokenWhitespace, toks[1].Kind)
	require.Equal(t, model.TokenWord, toks[2].Kind)
	require.Equal(t, "arg", string(toks[2].Text))
	require.Equal(t, model.TokenEOF, toks[3].Kind)
}

func TestTokenizeCRLFIsSingleNewlineToken(t *testing.T) {
	toks := tokenize(t, "a\r\nb", model.CharSetV1)
	require.Equal(t, model.TokenNewline, toks[1].Kind)
	require.Equal(t, model.TokenWord, toks[2].Kind)
}

func TestTokenizeQuotedString(t *testing.T) {
	toks := tokenize(t, `"hello\nworld"`, model.CharSetV1)
	require.Equal(t, model.TokenString, toks[0].Kind)
	require.Equal(t, `hello\nworld`, string(toks[0].Text))
}

func TestTokenizeStringWithMultiCharEscapedLineContinuation(t *testing.T) {
	doc := "\"a\\   \n  b\""
	toks := tokenize(t, doc, model.CharSetV2)
	require.Equal(t, model.TokenString, toks[0].Kind)
	require.Equal(t, "a\\   \n  b", string(toks[0].Text))
	require.Equal(t, model.TokenEOF, toks[1].Kind)
}

func TestTokenizeEmptyString(t *testing.T) {
	toks := tokenize(t, `""`, model.CharSetV1)
	require.Equal(t, model.TokenString, toks[0].Kind)
	require.Equal(t, "", string(toks[0].Text))
}

func TestTokenizeMultiLineString(t *testing.T) {
	toks := tokenize(t, "\"\"\"\nindented\n\"\"\"", model.CharSetV1)
	require.Equal(t, model.TokenMultiLineString, toks[0].Kind)
	require.Equal(t, "\nindented\n", string(toks[0].Text))
}

func TestTokenizeRawStringV1(t *testing.T) {
	toks := tokenize(t, `r#"raw \n text"#`, model.CharSetV1)
	require.Equal(t, model.TokenRawStringV1, toks[0].Kind)
	require.Equal(t, `raw \n text`, string(toks[0].Text))
}

func TestTokenizeRawStringV1BacksOffToIdentifier(t *testing.T) {
	toks := tokenize(t, `round`, model.CharSetV1)
	require.Equal(t, model.TokenWord, toks[0].Kind)
	require.Equal(t, "round", string(toks[0].Text))
}

func TestTokenizeRawStringV2(t *testing.T) {
	toks := tokenize(t, `#"raw text"#`, model.CharSetV2)
	require.Equal(t, model.TokenRawStringV2, toks[0].Kind)
	require.Equal(t, "raw text", string(toks[0].Text))
}

func TestTokenizeSlashdash(t *testing.T) {
	toks := tokenize(t, `/-node`, model.CharSetV1)
	require.Equal(t, model.TokenSlashdash, toks[0].Kind)
	require.Equal(t, model.TokenWord, toks[1].Kind)
}

func TestTokenizeLineComment(t *testing.T) {
	toks := tokenize(t, "// a comment\nnode", model.CharSetV1)
	require.Equal(t, model.TokenSingleLineComment, toks[0].Kind)
	require.Equal(t, model.TokenNewline, toks[1].Kind)
	require.Equal(t, model.TokenWord, toks[2].Kind)
}

func TestTokenizeNestedBlockComment(t *testing.T) {
	toks := tokenize(t, "/* outer /* inner */ still outer */node", model.CharSetV1)
	require.Equal(t, model.TokenMultiLineComment, toks[0].Kind)
	require.Equal(t, model.TokenWord, toks[1].Kind)
	require.Equal(t, "node", string(toks[1].Text))
}

func TestTokenizeUnterminatedBlockCommentErrors(t *testing.T) {
	tk := tokenizer.NewString([]byte("/* never closes"), model.CharSetV1)
	_, err := tk.Next()
	require.Error(t, err)
}

func TestTokenizePunctuation(t *testing.T) {
	toks := tokenize(t, `(type)a=1{}`, model.CharSetV1)
	kinds := make([]model.TokenKind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	require.Equal(t, []model.TokenKind{
		model.TokenStartType, model.TokenWord, model.TokenEndType,
		model.TokenWord, model.TokenEquals, model.TokenWord,
		model.TokenStartChildren, model.TokenEndChildren, model.TokenEOF,
	}, kinds)
}

func TestTokenizeBOMSkippedOnce(t *testing.T) {
	toks := tokenize(t, "\xef\xbb\xbfnode", model.CharSetV1)
	require.Equal(t, model.TokenWord, toks[0].Kind)
	require.Equal(t, "node", string(toks[0].Text))
}

func TestTokenizeStreamingSourceMatchesString(t *testing.T) {
	doc := "node1 arg1=1 {\n  node2 \"value\"\n}"
	stringToks := tokenize(t, doc, model.CharSetV1)

	tk := tokenizer.NewStream(strings.NewReader(doc), model.CharSetV1)
	var streamToks []model.Token
	for {
		tok, err := tk.Next()
		require.NoError(t, err)
		streamToks = append(streamToks, model.Token{Kind: tok.Kind, Text: append([]byte(nil), tok.Text...)})
		if tok.Kind == model.TokenEOF {
			break
		}
	}

	require.Equal(t, len(stringToks), len(streamToks))
	for i := range stringToks {
		require.Equal(t, stringToks[i].Kind, streamToks[i].Kind, "token %d", i)
		require.Equal(t, string(stringToks[i].Text), string(streamToks[i].Text), "token %d", i)
	}
}
