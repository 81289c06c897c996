package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ATSOTECK/kdlgo/internal/model"
	"github.com/ATSOTECK/kdlgo/internal/parser"
	"github.com/ATSOTECK/kdlgo/internal/tokenizer"
)

func events(t *testing.T, doc string, opt parser.Options) []model.Event {
	t.Helper()
	tk := tokenizer.NewString([]byte(doc), model.CharSetV1)
	p := parser.New(tk, opt)
	var out []model.Event
	for {
		ev, err := p.Next()
		require.NoError(t, err)
		out = append(out, ev)
		if ev.Kind == model.EventEOF {
			return out
		}
	}
}

func TestParseSimpleNode(t *testing.T) {
	evs := events(t, "node\n", parser.Options{})
	require.Equal(t, model.EventStartNode, evs[0].Kind)
	require.Equal(t, "node", evs[0].Name)
	require.Equal(t, model.EventEndNode, evs[1].Kind)
	require.Equal(t, model.EventEOF, evs[2].Kind)
}

func TestParseArguments(t *testing.T) {
	evs := events(t, `node 1 "two" 3.0`, parser.Options{})
	require.Equal(t, model.EventStartNode, evs[0].Kind)
	require.Equal(t, model.EventArgument, evs[1].Kind)
	require.Equal(t, model.NumberInt64, evs[1].Value.Number.Kind)
	require.Equal(t, int64(1), evs[1].Value.Number.Int)
	require.Equal(t, model.EventArgument, evs[2].Kind)
	require.Equal(t, "two", evs[2].Value.String)
	require.Equal(t, model.EventArgument, evs[3].Kind)
	require.Equal(t, model.NumberFloat64, evs[3].Value.Number.Kind)
	require.Equal(t, model.EventEndNode, evs[4].Kind)
}

func TestParseProperty(t *testing.T) {
	evs := events(t, `node key="value"`, parser.Options{})
	require.Equal(t, model.EventStartNode, evs[0].Kind)
	require.Equal(t, model.EventProperty, evs[1].Kind)
	require.Equal(t, "key", evs[1].Name)
	require.Equal(t, "value", evs[1].Value.String)
	require.Equal(t, model.EventEndNode, evs[2].Kind)
}

func TestParseBareWordPropertyValueCommitsV2(t *testing.T) {
	evs := events(t, `node key=value`, parser.Options{})
	require.Equal(t, model.EventStartNode, evs[0].Kind)
	require.Equal(t, model.EventProperty, evs[1].Kind)
	require.Equal(t, "value", evs[1].Value.String)
}

func TestParseChildrenBlock(t *testing.T) {
	evs := events(t, "parent {\n  child\n}", parser.Options{})
	kinds := make([]model.EventKind, 0, len(evs))
	for _, e := range evs {
		kinds = append(kinds, e.Kind)
	}
	require.Equal(t, []model.EventKind{
		model.EventStartNode, model.EventStartNode, model.EventEndNode,
		model.EventEndNode, model.EventEOF,
	}, kinds)
	require.Equal(t, "parent", evs[0].Name)
	require.Equal(t, "child", evs[1].Name)
}

func TestParseNestedChildrenBlocks(t *testing.T) {
	evs := events(t, "A { B; C { D; }; }", parser.Options{})
	kinds := make([]model.EventKind, 0, len(evs))
	names := make([]string, 0, len(evs))
	for _, e := range evs {
		kinds = append(kinds, e.Kind)
		names = append(names, e.Name)
	}
	require.Equal(t, []model.EventKind{
		model.EventStartNode, model.EventStartNode, model.EventEndNode,
		model.EventStartNode, model.EventStartNode, model.EventEndNode,
		model.EventEndNode, model.EventEndNode, model.EventEOF,
	}, kinds)
	require.Equal(t, []string{"A", "B", "", "C", "D", "", "", "", ""}, names)
}

func TestParseChildlessNodeBeforeClosingBrace(t *testing.T) {
	evs := events(t, "C { D }", parser.Options{})
	kinds := make([]model.EventKind, 0, len(evs))
	for _, e := range evs {
		kinds = append(kinds, e.Kind)
	}
	require.Equal(t, []model.EventKind{
		model.EventStartNode, model.EventStartNode, model.EventEndNode,
		model.EventEndNode, model.EventEOF,
	}, kinds)
}

func TestParseTypeAnnotation(t *testing.T) {
	evs := events(t, `(author)node (str)1`, parser.Options{})
	require.Equal(t, "author", evs[0].Value.Type.Name)
	require.Equal(t, model.EventArgument, evs[1].Kind)
	require.True(t, evs[1].Value.Type.Present)
	require.Equal(t, "str", evs[1].Value.Type.Name)
}

func TestParseNodeLevelTypeAnnotationInChildrenBlock(t *testing.T) {
	evs := events(t, "parent {\n  (t)child1; child2\n}", parser.Options{})
	require.Equal(t, model.EventStartNode, evs[0].Kind)
	require.Equal(t, "parent", evs[0].Name)
	require.Equal(t, model.EventStartNode, evs[1].Kind)
	require.Equal(t, "child1", evs[1].Name)
	require.True(t, evs[1].Value.Type.Present)
	require.Equal(t, "t", evs[1].Value.Type.Name)
	require.Equal(t, model.EventEndNode, evs[2].Kind)
	require.Equal(t, model.EventStartNode, evs[3].Kind)
	require.Equal(t, "child2", evs[3].Name)
	require.False(t, evs[3].Value.Type.Present)
	require.Equal(t, model.EventEndNode, evs[4].Kind)
	require.Equal(t, model.EventEndNode, evs[5].Kind)
	require.Equal(t, model.EventEOF, evs[6].Kind)
}

func TestParseContentAfterClosingBraceOnSameLineIsRejected(t *testing.T) {
	tk := tokenizer.NewString([]byte("parent { child; } sibling"), model.CharSetV1)
	p := parser.New(tk, parser.Options{})
	var err error
	for {
		var ev model.Event
		ev, err = p.Next()
		if err != nil || ev.Kind == model.EventEOF {
			break
		}
	}
	require.Error(t, err)
}

func TestParseSiblingOnNextLineAfterClosingBraceIsLegal(t *testing.T) {
	evs := events(t, "parent { child; }\nsibling\n", parser.Options{})
	names := make([]string, 0, len(evs))
	for _, e := range evs {
		names = append(names, e.Name)
	}
	require.Equal(t, []string{"parent", "child", "", "", "sibling", "", ""}, names)
}

func TestParseNestedChildlessNodesBeforeDoubleClosingBrace(t *testing.T) {
	evs := events(t, "a { b { c } }", parser.Options{})
	kinds := make([]model.EventKind, 0, len(evs))
	for _, e := range evs {
		kinds = append(kinds, e.Kind)
	}
	require.Equal(t, []model.EventKind{
		model.EventStartNode, model.EventStartNode, model.EventStartNode, model.EventEndNode,
		model.EventEndNode, model.EventEndNode, model.EventEOF,
	}, kinds)
}

func TestParseSlashdashSuppressesArgument(t *testing.T) {
	evs := events(t, "node /-1 2", parser.Options{})
	require.Equal(t, model.EventStartNode, evs[0].Kind)
	require.Equal(t, model.EventArgument, evs[1].Kind)
	require.Equal(t, int64(2), evs[1].Value.Number.Int)
	require.Equal(t, model.EventEndNode, evs[2].Kind)
}

func TestParseSlashdashEmitsCommentEventWhenRequested(t *testing.T) {
	evs := events(t, "node /-1 2", parser.Options{EmitComments: true})
	require.Equal(t, model.EventStartNode, evs[0].Kind)
	require.True(t, evs[1].Kind.IsCommentedOut())
	require.Equal(t, model.EventArgument, evs[1].Kind.Kind())
	require.Equal(t, model.EventArgument, evs[2].Kind)
}

func TestParseSlashdashSuppressesChildNode(t *testing.T) {
	evs := events(t, "parent {\n  /-child\n  sibling\n}", parser.Options{})
	names := make([]string, 0, len(evs))
	for _, e := range evs {
		names = append(names, e.Name)
	}
	require.Equal(t, []string{"parent", "sibling", "", "", ""}, names)
}

func TestParseLineContinuation(t *testing.T) {
	evs := events(t, "node 1 \\\n  2\n", parser.Options{})
	require.Equal(t, model.EventStartNode, evs[0].Kind)
	require.Equal(t, model.EventArgument, evs[1].Kind)
	require.Equal(t, model.EventArgument, evs[2].Kind)
	require.Equal(t, int64(2), evs[2].Value.Number.Int)
	require.Equal(t, model.EventEndNode, evs[3].Kind)
}

func TestParseForceV1RejectsV2Construct(t *testing.T) {
	tk := tokenizer.NewString([]byte("node #true"), model.CharSetV1)
	p := parser.New(tk, parser.Options{Version: parser.ForceV1})
	_, err := p.Next()
	require.NoError(t, err)
	_, err = p.Next()
	require.Error(t, err)
}

func TestParseMultiLineStringCommitsV2(t *testing.T) {
	evs := events(t, "node \"\"\"\n  hello\n  \"\"\"", parser.Options{})
	require.Equal(t, model.EventArgument, evs[1].Kind)
	require.Equal(t, "hello", evs[1].Value.String)
}

func TestParseRawStringV1Argument(t *testing.T) {
	evs := events(t, `node r"raw text"`, parser.Options{})
	require.Equal(t, model.EventArgument, evs[1].Kind)
	require.Equal(t, "raw text", evs[1].Value.String)
}
