package kdl

import (
	"io"

	"github.com/ATSOTECK/kdlgo/internal/model"
	"github.com/ATSOTECK/kdlgo/internal/parser"
	"github.com/ATSOTECK/kdlgo/internal/tokenizer"
)

// Parser reads a KDL document and yields a stream of Events.
//
// Once Next has reported an EventParseError, the Parser does not attempt
// recovery: every subsequent call to Next returns an EventEOF event (spec
// §7 "Propagation policy"). Malformed KDL, including tokenizer and string
// escape failures, is always reported as an in-band EventParseError event,
// never as a Go error. A read error from the underlying reader ends the
// input at that point, so the error result of Next is always nil.
type Parser struct {
	p      *parser.Parser
	failed bool
}

// NewParser creates a Parser reading the document from r, starting at the
// beginning of the input.
func NewParser(r io.Reader, opt ParserOptions) *Parser {
	tok := tokenizer.NewStream(r, initialCharSet(opt.Version))
	return &Parser{p: parser.New(tok, opt.toInternal())}
}

// NewParserString creates a Parser reading the document from an in-memory
// byte slice. Unlike NewParser, this never blocks on I/O.
func NewParserString(doc []byte, opt ParserOptions) *Parser {
	tok := tokenizer.NewString(doc, initialCharSet(opt.Version))
	return &Parser{p: parser.New(tok, opt.toInternal())}
}

func initialCharSet(v VersionMode) model.CharSet {
	if v == ForceV2 {
		return VersionV2
	}
	return VersionV1
}

// Next returns the next event in the document. After EventEOF or
// EventParseError has been returned once, every further call returns
// EventEOF again.
//
// The returned Event's Name, Value, and Message fields borrow from the
// Parser's internal buffers: they are valid only until the next call to
// Next.
func (p *Parser) Next() (Event, error) {
	if p.failed {
		return model.Event{Kind: model.EventEOF}, nil
	}
	ev, err := p.p.Next()
	if err != nil {
		p.failed = true
		var pos model.Position
		switch e := err.(type) {
		case *parser.Error:
			pos = e.Pos
		case *tokenizer.Error:
			pos = e.Pos
		}
		return model.Event{Kind: model.EventParseError, Message: err.Error(), Pos: pos}, nil
	}
	if ev.Kind.Kind() == model.EventParseError || ev.Kind.Kind() == model.EventEOF {
		p.failed = true
	}
	return ev, nil
}
