// Package parser implements the KDL event-based streaming parser (spec
// §4.6): a pull interface over internal/tokenizer that yields start-node,
// end-node, argument, property, and comment events, tracking the v1/v2
// version lattice and slashdash suppression as it goes.
package parser

import (
	"math"

	"github.com/ATSOTECK/kdlgo/internal/charset"
	"github.com/ATSOTECK/kdlgo/internal/model"
	"github.com/ATSOTECK/kdlgo/internal/strutil"
	"github.com/ATSOTECK/kdlgo/internal/tokenizer"
)

// Parser is a pull-based KDL document parser. Event.Name and Event.Value
// strings are borrowed and only valid until the next call to Next.
type Parser struct {
	tok *tokenizer.Tokenizer
	opt Options

	base  baseState
	flags flags
	depth int

	version versionState

	pending   *model.Token // single-slot pushback for a token to be reprocessed
	typeAnn   model.TypeAnnotation
	propName  string // saved when IN_PROPERTY or MAYBE_IN_PROPERTY
	maybeName string

	slashdashActive bool
	slashdashDepth  int
}

// New creates a Parser reading from a tokenizer already positioned at the
// start of a document.
func New(tok *tokenizer.Tokenizer, opt Options) *Parser {
	initial := versionUnknown
	switch opt.Version {
	case ForceV1:
		initial = versionV1
		tok.SetCharSet(model.CharSetV1)
	case ForceV2:
		initial = versionV2
		tok.SetCharSet(model.CharSetV2)
	}
	return &Parser{tok: tok, opt: opt, base: outsideNode, version: initial}
}

// Next returns the next event, or an EventEOF event once the document is
// exhausted.
func (p *Parser) Next() (model.Event, error) {
	for {
		tok, err := p.nextToken()
		if err != nil {
			return model.Event{}, err
		}

		ev, emitted, err := p.dispatch(tok)
		if err != nil {
			return model.Event{}, err
		}
		if emitted {
			return ev, nil
		}
	}
}

// nextToken pulls from the pushback slot if set, otherwise the tokenizer.
func (p *Parser) nextToken() (model.Token, error) {
	if p.pending != nil {
		tok := *p.pending
		p.pending = nil
		return tok, nil
	}
	return p.tok.Next()
}

func (p *Parser) pushBack(tok model.Token) {
	t := tok
	p.pending = &t
}

// dispatch applies the token-scheduling rules common to both base states
// (spec §4.6 "Scheduling of tokens") before handing off to the per-state
// handler. emitted reports whether ev is a real event to return from Next.
func (p *Parser) dispatch(tok model.Token) (ev model.Event, emitted bool, err error) {
	if tok.Kind == model.TokenNewline && p.flags.has(flagNewlinesAreWhitespace) {
		tok.Kind = model.TokenWhitespace
	}

	switch tok.Kind {
	case model.TokenWhitespace:
		return p.handleWhitespaceOrComment(tok, false)
	case model.TokenSingleLineComment, model.TokenMultiLineComment:
		return p.handleWhitespaceOrComment(tok, true)
	case model.TokenSlashdash:
		p.armSlashdash()
		return model.Event{}, false, nil
	case model.TokenEOF:
		if p.base == inNode {
			// End the node still open at end of input (emitting a pending
			// argument first), then see the EOF again.
			if p.flags.has(flagMaybeInProperty) {
				return p.handleInNode(tok)
			}
			p.pushBack(tok)
			return p.endNode(tok.Pos, false)
		}
		return model.Event{Kind: model.EventEOF, Pos: tok.Pos}, true, nil
	}

	if p.base == outsideNode {
		return p.handleOutsideNode(tok)
	}
	return p.handleInNode(tok)
}

func (p *Parser) armSlashdash() {
	if !p.slashdashActive {
		p.slashdashActive = true
		p.slashdashDepth = p.depth + 1
	}
	p.flags |= flagNewlinesAreWhitespace
}

// handleWhitespaceOrComment ignores whitespace/comments outside of the
// positions spec §4.6 step 2 calls out, optionally surfacing a comment
// event when the caller asked for them.
func (p *Parser) handleWhitespaceOrComment(tok model.Token, isComment bool) (model.Event, bool, error) {
	banned := p.flags.has(flagAwaitingTypeID) || p.flags.has(flagAwaitingTypeClose) || p.flags.has(flagInProperty)
	contextuallyBanned := p.flags.has(flagMaybeInProperty)

	if banned {
		switch p.version {
		case versionV1:
			return model.Event{}, false, p.errAt(tok.Pos, "whitespace is not allowed here in KDL v1")
		default:
			if err := p.commitVersion(tok.Pos, versionV2); err != nil {
				return model.Event{}, false, err
			}
		}
	} else if contextuallyBanned {
		p.flags |= flagContextualWhitespaceSeen
	}

	if isComment && p.opt.EmitComments {
		return model.Event{Kind: model.EventComment, Message: string(tok.Text), Pos: tok.Pos}, true, nil
	}
	return model.Event{}, false, nil
}

// handleOutsideNode implements spec §4.6's OUTSIDE_NODE handler.
func (p *Parser) handleOutsideNode(tok model.Token) (model.Event, bool, error) {
	if p.flags.has(flagEndOfNode) || p.flags.has(flagEndOfNodeOrChildBlock) {
		switch tok.Kind {
		case model.TokenNewline, model.TokenSemicolon:
			p.flags = p.flags &^ (flagEndOfNode | flagEndOfNodeOrChildBlock)
		case model.TokenEndChildren:
			// A further '}' closing an enclosing block is not "tokens on
			// the same line"; closeChildrenBlock below replaces the flag.
		case model.TokenWord, model.TokenString, model.TokenMultiLineString,
			model.TokenRawStringV1, model.TokenRawStringV2, model.TokenRawMultiLineString,
			model.TokenStartType:
			return model.Event{}, false, p.errAt(tok.Pos,
				"a node closed by '}' must be followed by a newline or ';' before further content")
		}
	}

	switch tok.Kind {
	case model.TokenNewline, model.TokenSemicolon:
		return model.Event{}, false, nil
	case model.TokenStartType:
		if p.flags.has(flagTypeClosed) {
			return model.Event{}, false, p.errAt(tok.Pos, "only one type annotation is allowed")
		}
		p.flags |= flagAwaitingTypeID
		return model.Event{}, false, nil
	case model.TokenEndType:
		if !p.flags.has(flagAwaitingTypeClose) {
			return model.Event{}, false, p.errAt(tok.Pos, "unexpected ')'")
		}
		p.flags = p.flags &^ flagAwaitingTypeClose
		p.flags |= flagTypeClosed
		return model.Event{}, false, nil
	case model.TokenEndChildren:
		return p.closeChildrenBlock(tok.Pos)
	case model.TokenWord, model.TokenString, model.TokenMultiLineString,
		model.TokenRawStringV1, model.TokenRawStringV2, model.TokenRawMultiLineString:
		return p.startNode(tok)
	default:
		return model.Event{}, false, p.errAt(tok.Pos, "unexpected %s at start of node", tok.Kind)
	}
}

func (p *Parser) startNode(tok model.Token) (model.Event, bool, error) {
	if p.flags.has(flagAwaitingTypeID) {
		name, err := p.identifierOrString(tok)
		if err != nil {
			return model.Event{}, false, err
		}
		p.typeAnn = model.TypeAnnotation{Present: true, Name: name}
		p.flags = p.flags &^ flagAwaitingTypeID
		p.flags |= flagAwaitingTypeClose
		return model.Event{}, false, nil
	}

	name, err := p.identifierOrString(tok)
	if err != nil {
		return model.Event{}, false, err
	}

	typ := p.typeAnn
	p.typeAnn = model.TypeAnnotation{}
	p.flags = p.flags &^ flagTypeClosed
	p.base = inNode
	p.depth++

	ev := model.Event{Kind: model.EventStartNode, Name: name, Pos: tok.Pos}
	ev.Value.Type = typ
	return p.applySlashdash(ev, false)
}

// closeChildrenBlock handles a `}` seen in OUTSIDE_NODE: it closes the
// children block just entered AND terminates the node that owns it, since
// entering a children block (`{`) and starting a node each added one to
// depth; this single `}` must unwind both and emit that node's end-node
// event, which is the only place a node-with-children's end event is ever
// produced.
func (p *Parser) closeChildrenBlock(pos model.Position) (model.Event, bool, error) {
	p.base = outsideNode
	p.depth -= 2
	if p.depth < 0 {
		return model.Event{}, false, p.errAt(pos, "unmatched '}'")
	}
	// The node just closed by '}' (spec's "boundary behaviors": a node
	// terminated by {...} followed by same-line tokens is rejected).
	p.flags = flagEndOfNodeOrChildBlock

	ev := model.Event{Kind: model.EventEndNode, Pos: pos}
	emitted, matched := p.applySlashdashEndNode(ev)
	if matched {
		p.slashdashActive = false
		p.flags = p.flags &^ flagNewlinesAreWhitespace
	}
	return emitted, !matched || p.opt.EmitComments, nil
}

// handleInNode implements spec §4.6's IN_NODE handler.
func (p *Parser) handleInNode(tok model.Token) (model.Event, bool, error) {
	if p.flags.has(flagLineCont) {
		switch tok.Kind {
		case model.TokenNewline:
			p.flags = p.flags &^ flagLineCont
			return model.Event{}, false, nil
		case model.TokenSingleLineComment:
			return model.Event{}, false, nil
		default:
			return model.Event{}, false, p.errAt(tok.Pos, "expected newline after line continuation")
		}
	}

	if p.flags.has(flagMaybeInProperty) {
		if tok.Kind == model.TokenEquals {
			p.flags = p.flags &^ (flagMaybeInProperty | flagContextualWhitespaceSeen)
			p.flags |= flagInProperty
			p.propName = p.maybeName
			return model.Event{}, false, nil
		}

		name := p.maybeName
		bare := p.flags.has(flagBarePropertyName)
		p.flags = p.flags &^ (flagMaybeInProperty | flagBarePropertyName | flagContextualWhitespaceSeen)

		if bare {
			if err := p.commitBareArgument(tok.Pos); err != nil {
				return model.Event{}, false, err
			}
		}

		ev := model.Event{Kind: model.EventArgument, Value: model.StringValue(name), Pos: tok.Pos}
		out, emitted, err := p.applySlashdash(ev, true)
		if err != nil {
			return model.Event{}, false, err
		}
		p.pushBack(tok)
		return out, emitted, nil
	}

	switch tok.Kind {
	case model.TokenLineContinuation:
		p.flags |= flagLineCont
		return model.Event{}, false, nil

	case model.TokenStartType:
		if p.flags.has(flagTypeClosed) {
			return model.Event{}, false, p.errAt(tok.Pos, "only one type annotation is allowed")
		}
		p.flags |= flagAwaitingTypeID
		return model.Event{}, false, nil

	case model.TokenEndType:
		if !p.flags.has(flagAwaitingTypeClose) {
			return model.Event{}, false, p.errAt(tok.Pos, "unexpected ')'")
		}
		p.flags = p.flags &^ flagAwaitingTypeClose
		p.flags |= flagTypeClosed
		return model.Event{}, false, nil

	case model.TokenWord, model.TokenString, model.TokenMultiLineString,
		model.TokenRawStringV1, model.TokenRawStringV2, model.TokenRawMultiLineString:
		return p.valueToken(tok)

	case model.TokenStartChildren:
		p.base = outsideNode
		p.depth++
		return model.Event{}, false, nil

	case model.TokenEndChildren:
		p.pushBack(tok)
		return p.endNode(tok.Pos, true)

	case model.TokenNewline, model.TokenSemicolon:
		return p.endNode(tok.Pos, false)

	default:
		return model.Event{}, false, p.errAt(tok.Pos, "unexpected %s in node", tok.Kind)
	}
}

// endNode closes the innermost open node. closedByChildrenBrace is true
// only when the terminating token was a '}' seen directly in IN_NODE
// position (a childless node ending right before its enclosing block's
// close, e.g. "parent { child }"): that '}' is pushed back and
// reprocessed by OUTSIDE_NODE's closeChildrenBlock, which is the one that
// actually owns the children block, so flagEndOfNode here only marks that
// the reprocessed token is itself a close, not same-line trailing
// content. A plain ';'/newline terminator consumes its own separator and
// never needs this bookkeeping, since new sibling nodes on the same line
// after a ';' are always legal.
func (p *Parser) endNode(pos model.Position, closedByChildrenBrace bool) (model.Event, bool, error) {
	p.base = outsideNode
	p.depth--
	p.flags = 0
	p.typeAnn = model.TypeAnnotation{}
	if closedByChildrenBrace {
		p.flags |= flagEndOfNode
	}

	ev := model.Event{Kind: model.EventEndNode, Pos: pos}
	out, matched := p.applySlashdashEndNode(ev)
	if matched && p.slashdashDepth == p.depth+1 {
		p.slashdashActive = false
		p.flags = p.flags &^ flagNewlinesAreWhitespace
	}
	return out, !matched || p.opt.EmitComments, nil
}

// valueToken handles an identifier or string token seen in IN_NODE
// position: awaiting-type-id, a type-annotated value, or a plain argument
// or property value (spec §4.6 "IN_NODE handler").
func (p *Parser) valueToken(tok model.Token) (model.Event, bool, error) {
	if p.flags.has(flagAwaitingTypeID) {
		name, err := p.identifierOrString(tok)
		if err != nil {
			return model.Event{}, false, err
		}
		p.typeAnn = model.TypeAnnotation{Present: true, Name: name}
		p.flags = p.flags &^ flagAwaitingTypeID
		p.flags |= flagAwaitingTypeClose
		return model.Event{}, false, nil
	}

	val, bareWord, err := p.readValue(tok)
	if err != nil {
		return model.Event{}, false, err
	}
	if p.typeAnn.Present {
		val = val.WithType(p.typeAnn.Name)
		p.typeAnn = model.TypeAnnotation{}
	}
	p.flags = p.flags &^ flagTypeClosed

	if p.flags.has(flagInProperty) {
		p.flags = p.flags &^ flagInProperty
		if bareWord {
			if err := p.commitBareArgument(tok.Pos); err != nil {
				return model.Event{}, false, err
			}
		}
		ev := model.Event{Kind: model.EventProperty, Name: p.propName, Value: val, Pos: tok.Pos}
		return p.applySlashdash(ev, true)
	}

	if val.Kind == model.ValueString && !val.Type.Present {
		p.maybeName = val.String
		p.flags |= flagMaybeInProperty
		if bareWord {
			p.flags |= flagBarePropertyName
		}
		return model.Event{}, false, nil
	}

	if bareWord {
		if err := p.commitBareArgument(tok.Pos); err != nil {
			return model.Event{}, false, err
		}
	}

	ev := model.Event{Kind: model.EventArgument, Value: val, Pos: tok.Pos}
	return p.applySlashdash(ev, true)
}

// commitBareArgument applies spec §4.6's rule that a bare (unquoted) word
// used as an argument or property value is illegal in v1 and forces v2
// otherwise.
func (p *Parser) commitBareArgument(pos model.Position) error {
	if p.version == versionV1 {
		return p.errAt(pos, "bare identifiers are not valid argument or property values in KDL v1")
	}
	return p.commitVersion(pos, versionV2)
}

// applySlashdash suppresses or comment-tags a one-shot structural event
// (argument, property, or a childless node's own start-node) if a
// slashdash is active at or above the current depth.
func (p *Parser) applySlashdash(ev model.Event, singleShot bool) (model.Event, bool, error) {
	if !p.slashdashActive || p.depth > p.slashdashDepth {
		return ev, true, nil
	}

	if p.opt.EmitComments {
		ev.Kind |= model.CommentBit
	} else {
		ev = model.Event{}
	}

	// The elided item has begun, so a newline terminates it again.
	p.flags = p.flags &^ flagNewlinesAreWhitespace
	if singleShot {
		p.slashdashActive = false
	}

	if !p.opt.EmitComments {
		return model.Event{}, false, nil
	}
	return ev, true, nil
}

// applySlashdashEndNode is applySlashdash specialised for EventEndNode,
// which unlike arguments/properties is never dropped for depth-bookkeeping
// reasons even when slashdash-suppressed, so it reports separately whether
// the event fell within the active slashdash's range (matched).
func (p *Parser) applySlashdashEndNode(ev model.Event) (out model.Event, matched bool) {
	if !p.slashdashActive || p.depth > p.slashdashDepth {
		return ev, false
	}
	if p.opt.EmitComments {
		ev.Kind |= model.CommentBit
		return ev, true
	}
	return model.Event{}, true
}

// identifierOrString extracts a type-annotation or node-name identifier
// from tok: bare words are validated as identifiers (spec §4.6 "Identifier
// validation"); quoted/raw strings are taken as-is.
func (p *Parser) identifierOrString(tok model.Token) (string, error) {
	switch tok.Kind {
	case model.TokenWord:
		if err := p.validateIdentifier(tok); err != nil {
			return "", err
		}
		return string(tok.Text), nil
	default:
		return p.stringFromToken(tok)
	}
}

// readValue parses tok as a KDL value (spec §4.7): a number if it looks
// like one, the v2 keyword literals, or a string. bareWord reports whether
// the result came from an unquoted word (as opposed to a quoted/raw
// string), which matters for v1/v2 commitment rules upstream.
func (p *Parser) readValue(tok model.Token) (model.Value, bool, error) {
	if tok.Kind != model.TokenWord {
		s, err := p.stringFromToken(tok)
		if err != nil {
			return model.Value{}, false, err
		}
		return model.StringValue(s), false, nil
	}

	text := string(tok.Text)
	if looksLikeNumber(text) {
		n, err := parseNumber(text)
		if err != nil {
			return model.Value{}, false, p.errAt(tok.Pos, "%s", err.Error())
		}
		return model.NumberValue(n), false, nil
	}

	if v, ok, err := p.keywordLiteral(tok, text); ok || err != nil {
		return v, false, err
	}

	if v, ok, err := p.v1KeywordLiteral(tok, text); ok || err != nil {
		return v, false, err
	}

	if err := p.validateIdentifier(tok); err != nil {
		return model.Value{}, false, err
	}
	return model.StringValue(text), true, nil
}

// keywordLiteral recognizes the v2 keyword literals #null/#true/#false and
// the v2 special float literals #inf/#-inf/#nan, each of which forces a
// commitment to v2.
func (p *Parser) keywordLiteral(tok model.Token, text string) (model.Value, bool, error) {
	switch text {
	case "#null", "#true", "#false", "#inf", "#-inf", "#nan":
	default:
		return model.Value{}, false, nil
	}
	if err := p.commitVersion(tok.Pos, versionV2); err != nil {
		return model.Value{}, false, err
	}
	switch text {
	case "#null":
		return model.NullValue(), true, nil
	case "#true":
		return model.BoolValue(true), true, nil
	case "#false":
		return model.BoolValue(false), true, nil
	case "#inf":
		return model.NumberValue(model.Float(posInf)), true, nil
	case "#-inf":
		return model.NumberValue(model.Float(negInf)), true, nil
	case "#nan":
		return model.NumberValue(model.Float(nan)), true, nil
	}
	return model.Value{}, false, nil
}

// v1KeywordLiteral recognizes the unprefixed v1 spellings of the boolean
// and null literals. v2 has no bare form of these (spec §4.6 "Identifier
// validation" reserves them outright), so seeing one commits to v1.
func (p *Parser) v1KeywordLiteral(tok model.Token, text string) (model.Value, bool, error) {
	switch text {
	case "true", "false", "null":
	default:
		return model.Value{}, false, nil
	}
	if p.version == versionV2 {
		return model.Value{}, false, p.errAt(tok.Pos, "%q is not a valid bare value in KDL v2", text)
	}
	if err := p.commitVersion(tok.Pos, versionV1); err != nil {
		return model.Value{}, false, err
	}
	switch text {
	case "true":
		return model.BoolValue(true), true, nil
	case "false":
		return model.BoolValue(false), true, nil
	case "null":
		return model.NullValue(), true, nil
	}
	return model.Value{}, false, nil
}

// stringFromToken decodes a string-family token's text into its final
// value, selecting the escape/dedent path by token kind.
func (p *Parser) stringFromToken(tok model.Token) (string, error) {
	switch tok.Kind {
	case model.TokenString:
		if p.activeCharSet() == model.CharSetV2 {
			return strutil.UnescapeV2Line(tok.Text)
		}
		return strutil.UnescapeV1(tok.Text)
	case model.TokenMultiLineString:
		if err := p.commitVersion(tok.Pos, versionV2); err != nil {
			return "", err
		}
		return strutil.DedentMultiline(tok.Text)
	case model.TokenRawStringV1:
		if err := p.commitVersion(tok.Pos, versionV1); err != nil {
			return "", err
		}
		return string(tok.Text), nil
	case model.TokenRawStringV2:
		if err := p.commitVersion(tok.Pos, versionV2); err != nil {
			return "", err
		}
		return string(tok.Text), nil
	case model.TokenRawMultiLineString:
		if err := p.commitVersion(tok.Pos, versionV2); err != nil {
			return "", err
		}
		return strutil.DedentMultilineRaw(tok.Text)
	default:
		return "", p.errAt(tok.Pos, "expected a string or identifier, got %s", tok.Kind)
	}
}

func (p *Parser) activeCharSet() model.CharSet {
	if p.version == versionV2 {
		return model.CharSetV2
	}
	return model.CharSetV1
}

// validateIdentifier checks a bare word token against spec §4.6's
// identifier-start/identifier-continue rule and rejects the v2 keyword
// literals when used as a plain identifier.
func (p *Parser) validateIdentifier(tok model.Token) error {
	text := string(tok.Text)
	cs := p.activeCharSet()
	for i, c := range text {
		if (i == 0 && !charset.IsIdentStart(cs, c)) || (i > 0 && !charset.IsIdentChar(cs, c)) {
			return p.errAt(tok.Pos, "%q is not a valid bare identifier", text)
		}
	}
	if p.version != versionV2 {
		return nil
	}
	switch text {
	case "inf", "-inf", "nan", "null", "true", "false":
		return p.errAt(tok.Pos, "%q is a reserved keyword literal and is not a valid bare identifier in KDL v2", text)
	}
	return nil
}

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
	nan    = math.NaN()
)

// commitVersion moves the version lattice forward: unknown can commit to
// either version; a conflicting later commitment is a parse error (spec
// §4.6 "Version detection"). It also switches the tokenizer's active
// character set so subsequent classification follows the committed
// version.
func (p *Parser) commitVersion(pos model.Position, v versionState) error {
	switch p.version {
	case versionUnknown:
		p.version = v
		if v == versionV1 {
			p.tok.SetCharSet(model.CharSetV1)
		} else {
			p.tok.SetCharSet(model.CharSetV2)
		}
		return nil
	case v:
		return nil
	case versionConflict:
		return p.errAt(pos, "document mixes KDL v1 and v2 constructs")
	default:
		p.version = versionConflict
		return p.errAt(pos, "document mixes KDL v1 and v2 constructs")
	}
}

func (p *Parser) errAt(pos model.Position, format string, args ...any) error {
	return errAt(pos, format, args...)
}

// looksLikeNumber reports whether text's shape (optional sign, then a
// decimal digit, or a v2 "almost a number" leading '.') means it must
// parse as a number rather than a bare identifier (spec §4.6 "Number
// parsing").
func looksLikeNumber(text string) bool {
	i := 0
	if i < len(text) && (text[i] == '+' || text[i] == '-') {
		i++
	}
	if i >= len(text) {
		return false
	}
	if text[i] >= '0' && text[i] <= '9' {
		return true
	}
	if text[i] == '.' && i+1 < len(text) && text[i+1] >= '0' && text[i+1] <= '9' {
		return true
	}
	return false
}
