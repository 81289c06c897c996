package kdl

import (
	"io"

	"github.com/ATSOTECK/kdlgo/internal/emitter"
)

// Emitter writes a KDL document one node/argument/property at a time,
// producing output that re-parses (in the same version) into an
// equivalent event sequence (spec §6 "Grammar reference").
//
// Calls must follow the grammar: EmitNode or EmitNodeWithType, then zero
// or more EmitArg/EmitProperty calls, then optionally
// StartEmittingChildren, nested node calls, and FinishEmittingChildren.
// Close must be called once writing is complete; it auto-balances any
// children blocks still open, mirroring ckdl's kdl_destroy_emitter.
type Emitter struct {
	e *emitter.Emitter
}

// NewEmitter creates an Emitter that writes to w.
func NewEmitter(w io.Writer, opt EmitterOptions) *Emitter {
	return &Emitter{e: emitter.New(w, opt.toInternal())}
}

// BufferingEmitter is an Emitter backed by an in-memory buffer, for
// callers that want the finished document as a string.
type BufferingEmitter struct {
	b *emitter.Buffering
}

// NewBufferingEmitter creates a BufferingEmitter.
func NewBufferingEmitter(opt EmitterOptions) *BufferingEmitter {
	return &BufferingEmitter{b: emitter.NewBuffering(opt.toInternal())}
}

// String returns everything written so far.
func (b *BufferingEmitter) String() string { return b.b.String() }

func (b *BufferingEmitter) EmitNode(name string) error { return b.b.EmitNode(name) }
func (b *BufferingEmitter) EmitNodeWithType(typeName, name string) error {
	return b.b.EmitNodeWithType(typeName, name)
}
func (b *BufferingEmitter) EmitArg(v Value) error                   { return b.b.EmitArg(v) }
func (b *BufferingEmitter) EmitProperty(name string, v Value) error { return b.b.EmitProperty(name, v) }
func (b *BufferingEmitter) StartEmittingChildren() error            { return b.b.StartEmittingChildren() }
func (b *BufferingEmitter) FinishEmittingChildren() error           { return b.b.FinishEmittingChildren() }
func (b *BufferingEmitter) Close() error                            { return b.b.Close() }

// EmitNode writes a node's name at the current depth.
func (e *Emitter) EmitNode(name string) error { return e.e.EmitNode(name) }

// EmitNodeWithType writes a type-annotated node name.
func (e *Emitter) EmitNodeWithType(typeName, name string) error {
	return e.e.EmitNodeWithType(typeName, name)
}

// EmitArg writes a positional argument following the current node's name.
func (e *Emitter) EmitArg(v Value) error { return e.e.EmitArg(v) }

// EmitProperty writes a `name=value` property following the current
// node's name.
func (e *Emitter) EmitProperty(name string, v Value) error { return e.e.EmitProperty(name, v) }

// StartEmittingChildren opens the current node's children block.
func (e *Emitter) StartEmittingChildren() error { return e.e.StartEmittingChildren() }

// FinishEmittingChildren closes the innermost open children block.
func (e *Emitter) FinishEmittingChildren() error { return e.e.FinishEmittingChildren() }

// Close finishes every open children block and writes a trailing newline
// if needed. It is safe to call once writing is complete.
func (e *Emitter) Close() error { return e.e.Close() }
