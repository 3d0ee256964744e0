// Package lisptest runs tables of lisp expressions and lisp source files
// against fresh environments.
package lisptest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bmatsuo/lispy/lisp"
	"github.com/bmatsuo/lispy/lisp/lisplib"
	"github.com/bmatsuo/lispy/parser"
)

// Runner is a test runner.
type Runner struct {
	// Loader is the package loader used to initialize the test environment.
	// When Loader is nil lisplib.LoadLibrary is used.
	Loader lisp.Loader
}

// NewEnv returns a root environment with the default builtins, the library
// loaded by r.Loader, and an assert function.  Program output and errors
// printed by the environment are written to stdout.
func (r *Runner) NewEnv(stdout *bytes.Buffer) (*lisp.LEnv, error) {
	loader := r.Loader
	if loader == nil {
		loader = lisplib.LoadLibrary
	}
	env := lisp.NewEnv(nil)
	lerr := lisp.InitializeUserEnv(env,
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(stdout),
		lisp.WithStderr(stdout),
		lisp.WithLoader(loader),
	)
	if lerr.Type == lisp.LError {
		return nil, fmt.Errorf("failed to initialize lisp environment: %v", lerr)
	}
	if stdout.Len() > 0 {
		return nil, fmt.Errorf("failed to load package library: %s", stdout.String())
	}
	env.AddBuiltin("assert", builtinAssert)
	return env, nil
}

func builtinAssert(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	if lerr := lisp.CheckArgs("assert", args, lisp.LNumber, lisp.LString); lerr != nil {
		return lerr
	}
	if args.Cells[0].Int == 0 {
		return lisp.Error("assertion failed: " + args.Cells[1].Str)
	}
	return lisp.Nil()
}

// RunTestFile loads the lisp source file at path.  The test fails if any
// expression in the file evaluates to an error.
func (r *Runner) RunTestFile(t *testing.T, path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("Unable to read test file: %v", err)
		return
	}
	var out bytes.Buffer
	env, err := r.NewEnv(&out)
	if err != nil {
		t.Error(err)
		return
	}
	lerr := env.Load(filepath.Base(path), bytes.NewReader(source))
	if lerr.Type == lisp.LError {
		t.Error(lerr.String())
	}
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(line, "Error: ") {
			t.Errorf("%s: %s", filepath.Base(path), line)
		}
	}
}

// TestSequence is a sequence of lisp expressions which are evaluated sequentially
// by a lisp.LEnv.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the evaluated result
	Output string // output written to stdout during evaluation
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs.
func RunTestSuite(t *testing.T, tests TestSuite) {
	new(Runner).RunTestSuite(t, tests)
}

// RunTestSuite runs each TestSequence in tests on an isolated lisp.LEnv
// created by r.NewEnv.
func (r *Runner) RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		var out bytes.Buffer
		env, err := r.NewEnv(&out)
		if err != nil {
			t.Errorf("test %d %q: %v", i, test.Name, err)
			continue
		}
		for j, expr := range test.TestSequence {
			out.Reset()
			v, err := parser.ReadString(expr.Expr)
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			if len(v) == 0 {
				t.Errorf("test %d %q: expr %d: no expression parsed", i, test.Name, j)
				continue
			}
			if len(v) != 1 {
				t.Errorf("test %d %q: expr %d: more than one expression parsed (%d)", i, test.Name, j, len(v))
				continue
			}
			result := env.Eval(v[0]).String()
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			if out.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, out.String())
			}
		}
	}
}
