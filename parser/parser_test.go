package parser

import (
	"errors"
	"testing"

	"github.com/bmatsuo/lispy/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLVal(t *testing.T) {
	tests := []struct {
		src    string
		result []string
	}{
		{"", nil},
		{"   \n\t", nil},
		{"1", []string{"1"}},
		{"-12", []string{"-12"}},
		{"3.25", []string{"3.25"}},
		{"-0.5", []string{"-0.5"}},
		{`"abc"`, []string{`"abc"`}},
		{`"a\"b\n"`, []string{`"a\"b\n"`}},
		{"x", []string{"x"}},
		{`\`, []string{`\`}},
		{"(+ 1 2)", []string{"(+ 1 2)"}},
		{"(- 5)", []string{"(- 5)"}},
		{"{1 2 {3}}", []string{"{1 2 {3}}"}},
		{"()", []string{"()"}},
		{"{}", []string{"{}"}},
		{"(def {x} 1) x", []string{"(def {x} 1)", "x"}},
		{"; comment only", nil},
		{"(+ 1 ; inline\n 2)", []string{"(+ 1 2)"}},
		{"(\\ {x & xs} {xs})", []string{`(\ {x & xs} {xs})`}},
	}
	for i, test := range tests {
		vals, err := ParseLVal("test", []byte(test.src))
		if !assert.NoError(t, err, "test %d: %q", i, test.src) {
			continue
		}
		var strs []string
		for _, v := range vals {
			strs = append(strs, v.String())
		}
		assert.Equal(t, test.result, strs, "test %d: %q", i, test.src)
	}
}

func TestParseTypes(t *testing.T) {
	vals, err := ReadString(`1 2.5 "s" sym (a) {b}`)
	require.NoError(t, err)
	types := []lisp.LType{lisp.LNumber, lisp.LDouble, lisp.LString, lisp.LSymbol, lisp.LSExpr, lisp.LQExpr}
	require.Len(t, vals, len(types))
	for i, typ := range types {
		assert.Equal(t, typ, vals[i].Type, "value %d", i)
	}
}

func TestParseTree(t *testing.T) {
	tree, err := Parse("test", []byte("(+ 1 {x}) ; done"))
	require.NoError(t, err)
	assert.Equal(t, lisp.RootTag, tree.Tag)
	require.Len(t, tree.Children, 2)

	sexpr := tree.Children[0]
	assert.Equal(t, TagSExpr, sexpr.Tag)
	var tags []string
	for _, c := range sexpr.Children {
		tags = append(tags, c.Tag)
	}
	assert.Equal(t, []string{TagChar, TagSymbol, TagNumber, TagQExpr, TagChar}, tags)
	assert.Equal(t, TagComment, tree.Children[1].Tag)
	assert.Equal(t, "; done", tree.Children[1].Contents)
}

func TestParseStringLiterals(t *testing.T) {
	vals, err := ReadString("\"line one\nline two\" \"it\\'s\" \"\\q\"")
	require.NoError(t, err)
	require.Len(t, vals, 3)
	for _, v := range vals {
		assert.Equal(t, lisp.LString, v.Type, v.String())
	}
	assert.Equal(t, "line one\nline two", vals[0].Str)
	assert.Equal(t, "it's", vals[1].Str)
	assert.Equal(t, "q", vals[2].Str)
}

func TestParseNumberOverflow(t *testing.T) {
	vals, err := ReadString("99999999999999999999")
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.Equal(t, lisp.LError, vals[0].Type)
	assert.Contains(t, vals[0].Str, "invalid number")
}

func TestParseIncomplete(t *testing.T) {
	for _, src := range []string{"(+ 1", "{1 2", `"abc`, "(def {x} (\\ {y}\n {y}"} {
		_, err := ReadString(src)
		assert.True(t, errors.Is(err, ErrIncomplete), "%q: %v", src, err)
	}
}

func TestParseError(t *testing.T) {
	_, err := ParseLVal("bad.lisp", []byte("(+ 1 2)\n(+ 1 2))"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrIncomplete))
	assert.Contains(t, err.Error(), "bad.lisp:2")
}

func TestIncomplete(t *testing.T) {
	tests := []struct {
		src        string
		incomplete bool
	}{
		{"", false},
		{"(+ 1 2)", false},
		{"(+ 1 2", true},
		{"{", true},
		{`"(("`, false},
		{`"\"`, true},
		{"; (", false},
		{"(; )\n", true},
		{"())", false},
	}
	for _, test := range tests {
		assert.Equal(t, test.incomplete, Incomplete([]byte(test.src)), "%q", test.src)
	}
}
