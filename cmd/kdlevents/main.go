// Command kdlevents prints the parser's event stream for a KDL document,
// one labeled record per line, for inspecting parser behavior (including
// version detection and slashdash suppression) directly.
package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/ATSOTECK/kdlgo/pkg/kdl"
)

const usage = `Usage: kdlevents [-1|-2|-c] [file]

Reads a KDL document from file (or stdin if omitted) and prints its
parser events, one per line, as "KIND name value".

  -1   force v1-only parsing
  -2   force v2-only parsing
  -c   emit comment/slashdash-suppressed events instead of dropping them
  -h   show this help
`

func main() {
	opt := kdl.DefaultParserOptions()
	var path string

	for _, arg := range os.Args[1:] {
		switch arg {
		case "-h", "--help":
			fmt.Print(usage)
			os.Exit(0)
		case "-1":
			opt.Version = kdl.ForceV1
		case "-2":
			opt.Version = kdl.ForceV2
		case "-c":
			opt.EmitComments = true
		default:
			if path != "" {
				fmt.Fprint(os.Stderr, usage)
				os.Exit(1)
			}
			path = arg
		}
	}

	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "kdlevents: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
	}

	p := kdl.NewParser(r, opt)
	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	exitCode := 0

	for {
		ev, err := p.Next()
		if err != nil {
			fmt.Fprintf(os.Stderr, "kdlevents: %v\n", err)
			os.Exit(1)
		}

		switch ev.Kind.Kind() {
		case kdl.EventParseError:
			fmt.Printf("%-10s %s %s\n", ev.Kind, ev.Pos, ev.Message)
			exitCode = 1
		case kdl.EventStartNode, kdl.EventProperty:
			fmt.Printf("%-10s %-16s %s\n", ev.Kind, ev.Name, ev.Value)
		case kdl.EventArgument:
			fmt.Printf("%-10s %-16s %s\n", ev.Kind, "", ev.Value)
		case kdl.EventComment:
			fmt.Printf("%-10s %s\n", ev.Kind, ev.Message)
		case kdl.EventEndNode:
			fmt.Printf("%-10s\n", ev.Kind)
		case kdl.EventEOF:
			if interactive {
				fmt.Fprintln(os.Stderr, "-- end of events --")
			}
			os.Exit(exitCode)
		}
	}
}
