// Package kdl provides a public API for reading and writing KDL
// documents (both the v1 and v2 dialects) in Go applications.
//
// Basic usage:
//
//	p := kdl.NewParser(strings.NewReader(`node "arg" key=1`), kdl.DefaultParserOptions())
//	for {
//	    ev, err := p.Next()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if ev.Kind == kdl.EventEOF {
//	        break
//	    }
//	    fmt.Println(ev.Kind, ev.Name)
//	}
//
// To re-emit a parsed document, pair a Parser with an Emitter:
//
//	e := kdl.NewEmitter(os.Stdout, kdl.DefaultEmitterOptions())
//	for {
//	    ev, err := p.Next()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    switch ev.Kind {
//	    case kdl.EventEOF:
//	        e.Close()
//	        return
//	    case kdl.EventStartNode:
//	        e.EmitNode(ev.Name)
//	    case kdl.EventArgument:
//	        e.EmitArg(ev.Value)
//	    // ...
//	    }
//	}
//
// A Parser turns lexical and syntactic failures into an in-band
// EventParseError event rather than a Go error from Next, matching the
// underlying C library's no-auto-recovery contract: once a parse error has
// been reported, every subsequent call to Next returns EventEOF.
//
// Parser and Emitter values are not safe for concurrent use by multiple
// goroutines; distinct instances may be used concurrently from distinct
// goroutines, one goroutine at a time per instance.
package kdl
