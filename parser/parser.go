// Package parser provides a lisp parser.
//
//	program := <expr>*
//	expr    := <double> | <number> | <string> | <symbol> | <sexpr> | <qexpr> | <comment>
//	double  := -?[0-9]+ '.' [0-9]+
//	number  := -?[0-9]+
//	string  := '"' (<escape> | <char>)* '"'
//	symbol  := [a-zA-Z0-9_+-*/\=<>!&%]+
//	sexpr   := '(' <expr>* ')'
//	qexpr   := '{' <expr>* '}'
//	comment := ';' <any character but newline>*
//
// The parser produces a lisp.ParseTree which lisp.Read converts into values.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/bmatsuo/lispy/lisp"
	parsec "github.com/prataprc/goparsec"
)

// ErrIncomplete is returned when source text ends inside an unterminated
// expression or string.  A REPL can read more input and try again.
var ErrIncomplete = errors.New("incomplete expression")

// Node tags of the parse tree.
const (
	TagNumber  = "expr|number"
	TagDouble  = "expr|double"
	TagString  = "expr|string"
	TagSymbol  = "expr|symbol"
	TagSExpr   = "expr|sexpr"
	TagQExpr   = "expr|qexpr"
	TagComment = "expr|comment"
	TagChar    = "char"
)

type reader struct{}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (*reader) Read(name string, r io.Reader) ([]*lisp.LVal, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return ParseLVal(name, text)
}

// ParseLVal parses LVal values from text and returns them.  Any number
// literal that does not fit into a lisp Number is returned as an Error value.
func ParseLVal(name string, text []byte) ([]*lisp.LVal, error) {
	tree, err := Parse(name, text)
	if err != nil {
		return nil, err
	}
	return lisp.Read(tree).Cells, nil
}

// ReadString parses the values in src.
func ReadString(src string) ([]*lisp.LVal, error) {
	return ParseLVal("<string>", []byte(src))
}

// Parse parses text and returns the root of its parse tree.  The root is
// tagged lisp.RootTag and has one child for each top level expression or
// comment.
func Parse(name string, text []byte) (*lisp.ParseTree, error) {
	text = bytes.TrimRight(text, " \t\r\n")
	root := &lisp.ParseTree{Tag: lisp.RootTag}
	s := parsec.NewScanner(text)
	parser := newParsecParser()
	node, s := parser(s)
	for node != nil {
		root.Children = append(root.Children, parseTrees(node)...)
		node, s = parser(s)
	}
	if !s.Endof() {
		if Incomplete(text) {
			return nil, fmt.Errorf("%s: %w", name, ErrIncomplete)
		}
		cursor := s.GetCursor()
		return nil, fmt.Errorf("%s:%d: unexpected input %q",
			name, lineNumber(text, cursor), snippet(text[cursor:]))
	}
	return root, nil
}

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	openB := parsec.Atom("{", "OPENB")
	closeB := parsec.Atom("}", "CLOSEB")
	comment := parsec.Token(`;[^\r\n]*`, "COMMENT")
	double := parsec.Token(`-?[0-9]+\.[0-9]+`, "DOUBLE")
	number := parsec.Token(`-?[0-9]+`, "NUMBER")
	str := parsec.Token(`"(?:\\.|[^"\\])*"`, "STRING")
	symbol := parsec.Token(`[a-zA-Z0-9_+\-*/\\=<>!&%]+`, "SYMBOL")
	term := parsec.OrdChoice(termNode,
		comment,
		double, // double precedes number which would match its integer part
		number,
		str,
		symbol, // symbol comes last because it swallows numbers
	)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	sexpr := parsec.And(listNode(TagSExpr), openP, exprList, closeP)
	qexpr := parsec.And(listNode(TagQExpr), openB, exprList, closeB)
	expr = parsec.OrdChoice(nil, term, sexpr, qexpr)
	return expr
}

func termNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes = cleanParsecNodeList(nodes)
	term := nodes[0].(*parsec.Terminal)
	var tag string
	switch term.Name {
	case "DOUBLE":
		tag = TagDouble
	case "NUMBER":
		tag = TagNumber
	case "STRING":
		tag = TagString
	case "SYMBOL":
		tag = TagSymbol
	case "COMMENT":
		tag = TagComment
	default:
		panic(fmt.Sprintf("unknown terminal: %s", term.Name))
	}
	return &lisp.ParseTree{Tag: tag, Contents: term.Value}
}

func listNode(tag string) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		t := &lisp.ParseTree{Tag: tag}
		for _, n := range cleanParsecNodeList(nodes) {
			switch n := n.(type) {
			case *lisp.ParseTree:
				t.Children = append(t.Children, n)
			case *parsec.Terminal:
				// We keep delimiters in the tree, lisp.Read skips them
				t.Children = append(t.Children, &lisp.ParseTree{Tag: TagChar, Contents: n.Value})
			}
		}
		return t
	}
}

func cleanParsecNodeList(lis []parsec.ParsecNode) []parsec.ParsecNode {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case []parsec.ParsecNode:
			nodes = append(nodes, cleanParsecNodeList(node)...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func parseTrees(root parsec.ParsecNode) []*lisp.ParseTree {
	var trees []*lisp.ParseTree
	for _, n := range cleanParsecNodeList([]parsec.ParsecNode{root}) {
		if t, ok := n.(*lisp.ParseTree); ok {
			trees = append(trees, t)
		}
	}
	return trees
}

// Incomplete returns true if text ends inside an open string or has more
// opening delimiters than closing ones.  Comments are ignored.
func Incomplete(text []byte) bool {
	depth := 0
	inString := false
	inComment := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case inComment:
			if c == '\n' {
				inComment = false
			}
		case inString:
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
		case c == ';':
			inComment = true
		case c == '"':
			inString = true
		case c == '(' || c == '{':
			depth++
		case c == ')' || c == '}':
			depth--
		}
	}
	return inString || depth > 0
}

func lineNumber(text []byte, offset int) int {
	if offset > len(text) {
		offset = len(text)
	}
	return bytes.Count(text[:offset], []byte("\n")) + 1
}

func snippet(text []byte) string {
	text = bytes.TrimLeft(text, " \t\r\n")
	if i := bytes.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	const maxLen = 20
	if len(text) > maxLen {
		return string(text[:maxLen]) + "..."
	}
	return string(text)
}
