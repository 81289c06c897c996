// Command kdlcat reads a KDL document (from a file argument, or stdin)
// and re-emits it through the parser/emitter pipeline, the simplest
// possible exercise of the structural round-trip invariant (spec §8.2).
package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/ATSOTECK/kdlgo/pkg/kdl"
)

const usage = `Usage: kdlcat [-1|-2] [file]

Reads a KDL document from file (or stdin if omitted) and re-emits it.

  -1   force v1-only parsing
  -2   force v2-only parsing
  -h   show this help
`

// node tracks one open node's emission state: whether its children block
// has been opened yet. The parser has no "start children" event of its
// own, only a flat StartNode/Argument/Property/EndNode stream, so kdlcat
// infers the transition the same way any consumer must: a StartNode
// arriving while the previous node is still open means the previous node
// just grew a children block.
type node struct {
	childrenStarted bool
}

func main() {
	version := kdl.DetectVersion
	var path string

	for _, arg := range os.Args[1:] {
		switch arg {
		case "-h", "--help":
			fmt.Print(usage)
			os.Exit(0)
		case "-1":
			version = kdl.ForceV1
		case "-2":
			version = kdl.ForceV2
		default:
			if path != "" {
				fmt.Fprint(os.Stderr, usage)
				os.Exit(1)
			}
			path = arg
		}
	}

	r, err := openInput(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kdlcat: %v\n", err)
		os.Exit(1)
	}
	if closer, ok := r.(io.Closer); ok {
		defer closer.Close()
	}

	popt := kdl.DefaultParserOptions()
	popt.Version = version
	p := kdl.NewParser(r, popt)

	eopt := kdl.DefaultEmitterOptions()
	if version == kdl.ForceV2 {
		eopt.Version = kdl.VersionV2
	}
	e := kdl.NewEmitter(os.Stdout, eopt)

	// Interactive terminals get a guaranteed trailing newline even if the
	// document was empty; piped output relies on Close's own framing.
	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	wroteAny := false

	var stack []*node
	for {
		ev, err := p.Next()
		if err != nil {
			fmt.Fprintf(os.Stderr, "kdlcat: %v\n", err)
			os.Exit(1)
		}

		switch ev.Kind.Kind() {
		case kdl.EventParseError:
			fmt.Fprintf(os.Stderr, "kdlcat: %s: %s\n", ev.Pos, ev.Message)
			os.Exit(1)
		case kdl.EventEOF:
			if err := e.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "kdlcat: %v\n", err)
				os.Exit(1)
			}
			if interactive && !wroteAny {
				fmt.Println()
			}
			return
		case kdl.EventStartNode:
			if len(stack) > 0 && !stack[len(stack)-1].childrenStarted {
				if err := e.StartEmittingChildren(); err != nil {
					fmt.Fprintf(os.Stderr, "kdlcat: %v\n", err)
					os.Exit(1)
				}
				stack[len(stack)-1].childrenStarted = true
			}
			if ev.Value.Type.Present {
				err = e.EmitNodeWithType(ev.Value.Type.Name, ev.Name)
			} else {
				err = e.EmitNode(ev.Name)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "kdlcat: %v\n", err)
				os.Exit(1)
			}
			wroteAny = true
			stack = append(stack, &node{})
		case kdl.EventArgument:
			if err := e.EmitArg(ev.Value); err != nil {
				fmt.Fprintf(os.Stderr, "kdlcat: %v\n", err)
				os.Exit(1)
			}
		case kdl.EventProperty:
			if err := e.EmitProperty(ev.Name, ev.Value); err != nil {
				fmt.Fprintf(os.Stderr, "kdlcat: %v\n", err)
				os.Exit(1)
			}
		case kdl.EventEndNode:
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.childrenStarted {
				if err := e.FinishEmittingChildren(); err != nil {
					fmt.Fprintf(os.Stderr, "kdlcat: %v\n", err)
					os.Exit(1)
				}
			}
		}
	}
}

func openInput(path string) (io.Reader, error) {
	if path == "" {
		return os.Stdin, nil
	}
	return os.Open(path)
}
