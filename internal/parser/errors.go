package parser

import (
	"fmt"

	"github.com/ATSOTECK/kdlgo/internal/model"
)

// Error is a parser-level failure: a grammar violation, a version
// conflict, or a propagated tokenizer/number/string error.
type Error struct {
	Pos     model.Position
	Message string
}

func (e *Error) Error() string {
	if (e.Pos == model.Position{}) {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func errAt(pos model.Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Message: fmt.Sprintf(format, args...)}
}
