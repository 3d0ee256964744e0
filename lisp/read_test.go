package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadString(t *testing.T) {
	tests := []struct {
		contents string
		str      string
	}{
		{`""`, ""},
		{`"abc"`, "abc"},
		{"\"a\nb\"", "a\nb"},
		{`"a\nb"`, "a\nb"},
		{`"tab\there"`, "tab\there"},
		{`"say \"hi\""`, `say "hi"`},
		{`"it\'s"`, "it's"},
		{`"back\\slash"`, `back\slash`},
		{`"\q"`, "q"},
		{`"nul\0"`, "nul\x00"},
	}
	for i, test := range tests {
		v := Read(&ParseTree{Tag: "expr|string", Contents: test.contents})
		if assert.Equal(t, LString, v.Type, "test %d: %s", i, v) {
			assert.Equal(t, test.str, v.Str, "test %d", i)
		}
	}

	v := Read(&ParseTree{Tag: "expr|string", Contents: `abc`})
	assert.Equal(t, LError, v.Type)
}

func TestReadTree(t *testing.T) {
	tree := &ParseTree{Tag: RootTag, Children: []*ParseTree{
		{Tag: "expr|sexpr", Children: []*ParseTree{
			{Tag: "char", Contents: "("},
			{Tag: "expr|symbol", Contents: "+"},
			{Tag: "expr|number", Contents: "1"},
			{Tag: "expr|double", Contents: "2.5"},
			{Tag: "expr|comment", Contents: "; note"},
			{Tag: "char", Contents: ")"},
		}},
		{Tag: "expr|qexpr", Children: []*ParseTree{
			{Tag: "char", Contents: "{"},
			{Tag: "char", Contents: "}"},
		}},
	}}
	assert.Equal(t, "((+ 1 2.5) {})", Read(tree).String())

	v := Read(&ParseTree{Tag: "bogus"})
	assert.Equal(t, LError, v.Type)
}
