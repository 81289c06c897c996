// Command kdltokenize prints the raw token stream of a KDL document, one
// labeled record per line, for inspecting tokenizer behavior directly
// without going through the parser.
package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/ATSOTECK/kdlgo/pkg/kdl"
)

const usage = `Usage: kdltokenize [-1|-2] [file]

Reads a KDL document from file (or stdin if omitted) and prints its
tokens, one per line, as "KIND line:col..line:col<TAB>text", with the
text in Go-quoted form.

  -1   force v1 character rules
  -2   force v2 character rules
  -h   show this help
`

func main() {
	version := kdl.VersionV1
	var path string

	for _, arg := range os.Args[1:] {
		switch arg {
		case "-h", "--help":
			fmt.Print(usage)
			os.Exit(0)
		case "-1":
			version = kdl.VersionV1
		case "-2":
			version = kdl.VersionV2
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
			fmt.Fprintf(os.Stderr, "kdltokenize: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
	}

	t := kdl.NewTokenizer(r, version)
	interactive := term.IsTerminal(int(os.Stdout.Fd()))

	for {
		tok, err := t.Next()
		if err != nil {
			fmt.Fprintf(os.Stderr, "kdltokenize: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%-18s %s..%s\t%q\n", tok.Kind, tok.Pos, tok.End, tok.Text)
		if tok.Kind == kdl.TokenEOF {
			break
		}
	}
	if interactive {
		fmt.Fprintln(os.Stderr, "-- end of tokens --")
	}
}
