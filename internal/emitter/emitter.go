// Package emitter implements the KDL pretty-printing emitter (spec §4.7):
// an imperative node/argument/property/children API writing indented,
// canonical KDL text, grounded byte-for-byte on ckdl's emitter.c.
package emitter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ATSOTECK/kdlgo/internal/charset"
	"github.com/ATSOTECK/kdlgo/internal/codec"
	"github.com/ATSOTECK/kdlgo/internal/model"
	"github.com/ATSOTECK/kdlgo/internal/strutil"
)

// Emitter writes KDL documents one node/argument/property at a time.
// Calls must follow the grammar: EmitNode[WithType], then zero or more
// EmitArg/EmitProperty, then optionally StartEmittingChildren ... nested
// node calls ... FinishEmittingChildren. Close (or a final
// FinishEmittingChildren for every open children block) must be called
// once writing is complete.
type Emitter struct {
	w     io.Writer
	opt   Options
	depth int
	atBOL bool
}

// New creates an Emitter that writes to w.
func New(w io.Writer, opt Options) *Emitter {
	return &Emitter{w: w, opt: opt, atBOL: true}
}

// Buffering is an Emitter backed by an in-memory buffer, for callers that
// want the finished document as a string rather than a stream.
type Buffering struct {
	*Emitter
	buf *bytes.Buffer
}

// NewBuffering creates a Buffering emitter.
func NewBuffering(opt Options) *Buffering {
	buf := &bytes.Buffer{}
	return &Buffering{Emitter: New(buf, opt), buf: buf}
}

// String returns everything written so far.
func (b *Buffering) String() string { return b.buf.String() }

func (e *Emitter) write(s string) error {
	_, err := io.WriteString(e.w, s)
	return err
}

// nodePreamble writes the newline (if not already at the start of a line)
// and indentation that precede every node.
func (e *Emitter) nodePreamble() error {
	if !e.atBOL {
		if err := e.write("\n"); err != nil {
			return err
		}
	}
	if err := e.write(spaces(e.depth * e.opt.Indent)); err != nil {
		return err
	}
	e.atBOL = false
	return nil
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%*s", n, "")
}

// EmitNode writes a node's name at the current depth.
func (e *Emitter) EmitNode(name string) error {
	if err := e.nodePreamble(); err != nil {
		return err
	}
	return e.emitIdentifier(name)
}

// EmitNodeWithType writes a type-annotated node name.
func (e *Emitter) EmitNodeWithType(typeName, name string) error {
	if err := e.nodePreamble(); err != nil {
		return err
	}
	if err := e.write("("); err != nil {
		return err
	}
	if err := e.emitIdentifier(typeName); err != nil {
		return err
	}
	if err := e.write(")"); err != nil {
		return err
	}
	return e.emitIdentifier(name)
}

// EmitArg writes a positional argument following the current node's name.
func (e *Emitter) EmitArg(v model.Value) error {
	if err := e.write(" "); err != nil {
		return err
	}
	return e.emitValue(v)
}

// EmitProperty writes a `name=value` property following the current
// node's name.
func (e *Emitter) EmitProperty(name string, v model.Value) error {
	if err := e.write(" "); err != nil {
		return err
	}
	if err := e.emitIdentifier(name); err != nil {
		return err
	}
	if err := e.write("="); err != nil {
		return err
	}
	return e.emitValue(v)
}

// StartEmittingChildren opens the current node's children block.
func (e *Emitter) StartEmittingChildren() error {
	e.atBOL = true
	e.depth++
	return e.write(" {\n")
}

// FinishEmittingChildren closes the innermost open children block.
func (e *Emitter) FinishEmittingChildren() error {
	if e.depth == 0 {
		return fmt.Errorf("emitter: FinishEmittingChildren called with no open children block")
	}
	e.depth--
	if err := e.nodePreamble(); err != nil {
		return err
	}
	e.atBOL = true
	return e.write("}\n")
}

// Close finishes every open children block and writes a trailing newline
// if needed. It is safe to call once writing is complete.
func (e *Emitter) Close() error {
	for e.depth != 0 {
		if err := e.FinishEmittingChildren(); err != nil {
			return err
		}
	}
	if !e.atBOL {
		if err := e.write("\n"); err != nil {
			return err
		}
		e.atBOL = true
	}
	return nil
}

func (e *Emitter) emitValue(v model.Value) error {
	if v.Type.Present {
		if err := e.write("("); err != nil {
			return err
		}
		if err := e.emitIdentifier(v.Type.Name); err != nil {
			return err
		}
		if err := e.write(")"); err != nil {
			return err
		}
	}
	switch v.Kind {
	case model.ValueNull:
		return e.write("null")
	case model.ValueBool:
		if v.Bool {
			return e.write("true")
		}
		return e.write("false")
	case model.ValueNumber:
		return e.emitNumber(v.Number)
	case model.ValueString:
		return e.emitString(v.String)
	default:
		return fmt.Errorf("emitter: invalid value kind %v", v.Kind)
	}
}

func (e *Emitter) emitNumber(n model.Number) error {
	switch n.Kind {
	case model.NumberInt64:
		return e.write(fmt.Sprintf("%d", n.Int))
	case model.NumberFloat64:
		return e.write(formatFloat(n.Float, e.opt.Float))
	case model.NumberStringEncoded:
		return e.write(n.Encoded)
	default:
		return fmt.Errorf("emitter: invalid number kind %v", n.Kind)
	}
}

func (e *Emitter) emitString(s string) error {
	escaped, err := strutil.Escape([]byte(s), e.opt.EscapeMode, e.opt.Version)
	if err != nil {
		return err
	}
	if err := e.write(`"`); err != nil {
		return err
	}
	if err := e.write(escaped); err != nil {
		return err
	}
	return e.write(`"`)
}

// emitIdentifier writes name bare if it qualifies as a bare identifier
// under the configured IdentifierMode, quoting it otherwise.
func (e *Emitter) emitIdentifier(name string) error {
	if e.isBareIdentifier(name) {
		return e.write(name)
	}
	return e.emitString(name)
}

func (e *Emitter) isBareIdentifier(name string) bool {
	if e.opt.IdentifierMode == QuoteAllIdentifiers || name == "" {
		return false
	}
	cs := e.opt.Version
	i := 0
	first := true
	for i < len(name) {
		c, size, status := codec.DecodeOne([]byte(name)[i:])
		if status != codec.OK {
			return false
		}
		if first && !charset.IsIdentStart(cs, c) {
			return false
		}
		if !first && !charset.IsIdentChar(cs, c) {
			return false
		}
		if e.opt.IdentifierMode == AsciiIdentifiers && c >= 0x7F {
			return false
		}
		first = false
		i += size
	}
	return true
}
