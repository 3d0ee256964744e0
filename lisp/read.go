package lisp

import (
	"fmt"
	"strconv"
	"strings"
)

// RootTag is the tag of the node at the root of a parse tree.
const RootTag = ">"

// ParseTree is a node in the labeled tree produced by a parser.  Tag
// classifies the node and Contents holds the source text of leaf nodes.
type ParseTree struct {
	Tag      string
	Contents string
	Children []*ParseTree
}

// Read converts t into an LVal.  Leaves become atoms and interior nodes become
// S-expressions or Q-expressions.  Delimiters and comments are dropped.
func Read(t *ParseTree) *LVal {
	switch {
	case strings.Contains(t.Tag, "double"):
		return readDouble(t)
	case strings.Contains(t.Tag, "number"):
		return readNumber(t)
	case strings.Contains(t.Tag, "string"):
		return readString(t)
	case strings.Contains(t.Tag, "symbol"):
		return Symbol(t.Contents)
	}

	var x *LVal
	switch {
	case t.Tag == RootTag, strings.Contains(t.Tag, "sexpr"):
		x = SExpr(nil)
	case strings.Contains(t.Tag, "qexpr"):
		x = QExpr(nil)
	default:
		return Error(fmt.Sprintf("unknown parse tree node: %s", t.Tag))
	}
	for _, c := range t.Children {
		if skipNode(c) {
			continue
		}
		x.Add(Read(c))
	}
	return x
}

func skipNode(t *ParseTree) bool {
	switch t.Contents {
	case "(", ")", "{", "}":
		return true
	}
	return t.Tag == "regex" || strings.Contains(t.Tag, "comment")
}

func readNumber(t *ParseTree) *LVal {
	x, err := strconv.ParseInt(t.Contents, 10, 64)
	if err != nil {
		return Error(fmt.Sprintf("invalid number: %s", t.Contents))
	}
	return Number(x)
}

func readDouble(t *ParseTree) *LVal {
	x, err := strconv.ParseFloat(t.Contents, 64)
	if err != nil {
		return Error(fmt.Sprintf("invalid number: %s", t.Contents))
	}
	return Double(x)
}

func readString(t *ParseTree) *LVal {
	s := t.Contents
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return Error(fmt.Sprintf("invalid string: %s", t.Contents))
	}
	return String(unescape(s[1 : len(s)-1]))
}

var escapes = map[byte]byte{
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'0':  0,
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
}

// unescape decodes backslash escapes in s.  An unknown escape \x is decoded
// as x.  All other characters, including newlines, are kept.
func unescape(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var buf strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			buf.WriteByte(c)
			continue
		}
		i++
		if e, ok := escapes[s[i]]; ok {
			buf.WriteByte(e)
		} else {
			buf.WriteByte(s[i])
		}
	}
	return buf.String()
}
