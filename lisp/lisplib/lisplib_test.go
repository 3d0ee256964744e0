package lisplib_test

import (
	"bytes"
	"testing"

	"github.com/bmatsuo/lispy/lisp"
	"github.com/bmatsuo/lispy/lisp/lisplib"
	"github.com/bmatsuo/lispy/lisp/lisptest"
	"github.com/bmatsuo/lispy/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLibrary(t *testing.T) {
	var stderr bytes.Buffer
	env := lisp.NewEnv(nil)
	lerr := lisp.InitializeUserEnv(env,
		lisp.WithReader(parser.NewReader()),
		lisp.WithStderr(&stderr))
	require.Equal(t, lisp.LSExpr, lerr.Type, lerr.String())

	lerr = lisplib.LoadLibrary(env)
	require.NotEqual(t, lisp.LError, lerr.Type, lerr.String())
	assert.Empty(t, stderr.String())

	for _, name := range []string{"map", "filter", "foldl", "sqrt", "format", "pi"} {
		v := env.Get(lisp.Symbol(name))
		assert.NotEqual(t, lisp.LError, v.Type, name)
	}
}

func TestLoadLibraryNoReader(t *testing.T) {
	env := lisp.NewEnv(nil)
	lisp.InitializeUserEnv(env)
	lerr := lisplib.LoadLibrary(env)
	assert.Equal(t, lisp.LError, lerr.Type)
}

func TestPrelude(t *testing.T) {
	tests := lisptest.TestSuite{
		{"atoms", lisptest.TestSequence{
			{"nil", "{}", ""},
			{"true", "1", ""},
			{"false", "0", ""},
			{"(not 0)", "1", ""},
			{"(and 1 0)", "0", ""},
			{"(or 1 0)", "1", ""},
		}},
		{"fun", lisptest.TestSequence{
			{"(fun {add-three x y z} {+ x y z})", "()", ""},
			{"(add-three 1 2 3)", "6", ""},
			{"((add-three 1) 2 3)", "6", ""},
		}},
		{"pack and unpack", lisptest.TestSequence{
			{"(unpack + {1 2 3})", "6", ""},
			{"(curry + {5 6 7})", "18", ""},
			{"(pack head 1 2 3)", "{1}", ""},
			{"(uncurry head 5 6 7)", "{5}", ""},
		}},
		{"sequencing and scope", lisptest.TestSequence{
			{"(do (print 1) (print 2) 3)", "3", "1\n2\n"},
			{"(let {do (= {q} 100) (q)})", "100", ""},
			{"q", "Error: unbound symbol 'q'", ""},
		}},
		{"composition", lisptest.TestSequence{
			{"((flip -) 1 10)", "9", ""},
			{"(comp (\\ {x} {* x 2}) (\\ {x} {+ x 1}) 3)", "8", ""},
		}},
		{"list access", lisptest.TestSequence{
			{"(first {1 2 3})", "1", ""},
			{"(second {1 2 3})", "2", ""},
			{"(third {1 2 3})", "3", ""},
			{"(nth 1 {5 6 7})", "6", ""},
			{"(last {1 2 3})", "3", ""},
			{"(take 2 {1 2 3})", "{1 2}", ""},
			{"(drop 2 {1 2 3})", "{3}", ""},
			{"(split 1 {1 2 3})", "{{1} {2 3}}", ""},
			{"(elem 2 {1 2 3})", "1", ""},
			{"(elem 5 {1 2 3})", "0", ""},
		}},
		{"higher order", lisptest.TestSequence{
			{"(map (\\ {x} {* x 2}) {1 2 3})", "{2 4 6}", ""},
			{"(map (\\ {x} {* x 2}) nil)", "{}", ""},
			{"(filter (\\ {x} {> x 1}) {1 2 3})", "{2 3}", ""},
			{"(foldl + 0 {1 2 3})", "6", ""},
			{"(foldl (\\ {acc x} {cons x acc}) {} {1 2 3})", "{3 2 1}", ""},
			{"(sum {1 2 3 4})", "10", ""},
			{"(product {1 2 3 4})", "24", ""},
			{"(reverse {1 2 3})", "{3 2 1}", ""},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}

func TestMath(t *testing.T) {
	tests := lisptest.TestSuite{
		{"math", lisptest.TestSequence{
			{"(sqrt 16)", "4.0", ""},
			{"(sqrt -1)", "Error: Function 'sqrt' passed a negative number", ""},
			{"(floor 2.5)", "2.0", ""},
			{"(floor 2)", "2", ""},
			{"(ceil 2.5)", "3.0", ""},
			{"(abs -3)", "3", ""},
			{"(abs -3.5)", "3.5", ""},
			{"(pow 2 10)", "1024", ""},
			{"(pow 4 0.5)", "2.0", ""},
			{"(pow 2 -1)", "0.5", ""},
			{"(pow 2 62)", "4611686018427387904", ""},
			{"(pow 2 63)", "9.223372036854776e+18", ""},
			{"(pow 2 3000000000)", "+Inf", ""},
			{"(pow -1 3000000001)", "-1", ""},
			{"(pow 1 9223372036854775807)", "1", ""},
			{"(pow 0 0)", "1", ""},
			{"(>= (pow -1 0.5) 1)", "0", ""},
			{"(<= (pow -1 0.5) 1)", "0", ""},
			{"(min 3 1 2)", "1", ""},
			{"(max 3 1.5 2)", "3", ""},
			{"(max)", "<builtin>", ""},
			{"pi", "3.141592653589793", ""},
			{"(sqrt {})", "Error: Function 'sqrt' passed incorrect type for argument 1. Got Q-Expression, expected Number.", ""},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}

func TestString(t *testing.T) {
	tests := lisptest.TestSuite{
		{"format", lisptest.TestSequence{
			{`(format "x={} y={}" 1 "two")`, `"x=1 y=two"`, ""},
			{`(format "{{}}")`, `"{}"`, ""},
			{`(format "list {}" {1 2})`, `"list {1 2}"`, ""},
			{`(format "{}")`, "Error: too many formatting directives for supplied values", ""},
			{`(format "" 1)`, "Error: too many values for formatting directives", ""},
			{`(format "{")`, "Error: unclosed formatting directive", ""},
			{`(format 1)`, "Error: Function 'format' passed incorrect type for argument 1. Got Number, expected String.", ""},
		}},
		{"concat", lisptest.TestSequence{
			{`(concat "a" "b" "c")`, `"abc"`, ""},
			{`(concat)`, "<builtin>", ""},
			{`(concat "a" 1)`, "Error: Function 'concat' passed incorrect type for argument 2. Got Number, expected String.", ""},
		}},
		{"to-string", lisptest.TestSequence{
			{`(to-string {1 2})`, `"{1 2}"`, ""},
			{`(to-string "s")`, `"s"`, ""},
			{`(to-string 2.0)`, `"2.0"`, ""},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}

func TestPreludeFile(t *testing.T) {
	r := &lisptest.Runner{}
	r.RunTestFile(t, "testdata/prelude_test.lisp")
}
