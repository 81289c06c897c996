package kdl

import (
	"io"

	"github.com/ATSOTECK/kdlgo/internal/model"
	"github.com/ATSOTECK/kdlgo/internal/tokenizer"
)

// TokenKind identifies the syntactic category of a Token.
type TokenKind = model.TokenKind

const (
	TokenIllegal            = model.TokenIllegal
	TokenStartType          = model.TokenStartType
	TokenEndType            = model.TokenEndType
	TokenWord               = model.TokenWord
	TokenString             = model.TokenString
	TokenMultiLineString    = model.TokenMultiLineString
	TokenRawStringV1        = model.TokenRawStringV1
	TokenRawStringV2        = model.TokenRawStringV2
	TokenRawMultiLineString = model.TokenRawMultiLineString
	TokenSingleLineComment  = model.TokenSingleLineComment
	TokenSlashdash          = model.TokenSlashdash
	TokenMultiLineComment   = model.TokenMultiLineComment
	TokenEquals             = model.TokenEquals
	TokenStartChildren      = model.TokenStartChildren
	TokenEndChildren        = model.TokenEndChildren
	TokenNewline            = model.TokenNewline
	TokenSemicolon          = model.TokenSemicolon
	TokenLineContinuation   = model.TokenLineContinuation
	TokenWhitespace         = model.TokenWhitespace
	TokenEOF                = model.TokenEOF
)

// Token is a single lexical token. Text is borrowed: it is only valid
// until the next call to Tokenizer.Next.
type Token = model.Token

// Tokenizer is the low-level pull-based lexer underlying Parser, exposed
// for callers that want raw tokens (e.g. a syntax-highlighting or
// token-dump tool) rather than parsed events.
type Tokenizer struct {
	t *tokenizer.Tokenizer
}

// NewTokenizer creates a Tokenizer reading from r.
func NewTokenizer(r io.Reader, v Version) *Tokenizer {
	return &Tokenizer{t: tokenizer.NewStream(r, v)}
}

// NewTokenizerString creates a Tokenizer reading an in-memory document.
func NewTokenizerString(doc []byte, v Version) *Tokenizer {
	return &Tokenizer{t: tokenizer.NewString(doc, v)}
}

// Next returns the next token, including whitespace, comments, and a
// final TokenEOF. It returns a non-nil error only for lexical failures
// (malformed UTF-8, unterminated string/comment, illegal code point);
// once an error is returned, the Tokenizer should not be used further.
func (t *Tokenizer) Next() (Token, error) { return t.t.Next() }

// SetCharSet switches which version's character rules the Tokenizer
// applies to subsequent tokens, mirroring the commitment a Parser makes
// when it detects a version-forcing construct.
func (t *Tokenizer) SetCharSet(v Version) { t.t.SetCharSet(v) }
