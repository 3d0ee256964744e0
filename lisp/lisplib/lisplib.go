// Package lisplib is used to conveniently load the standard library for the
// lispy environment
package lisplib

import (
	_ "embed" // prelude source

	"github.com/bmatsuo/lispy/lisp"
	"github.com/bmatsuo/lispy/lisp/lisplib/libmath"
	"github.com/bmatsuo/lispy/lisp/lisplib/libstring"
)

//go:embed prelude.lisp
var prelude string

// LoadLibrary loads the standard library into env.  The environment runtime
// must have a Reader because the prelude is written in lisp.
func LoadLibrary(env *lisp.LEnv) *lisp.LVal {
	e := libmath.LoadPackage(env)
	if e.Type == lisp.LError {
		return e
	}
	e = libstring.LoadPackage(env)
	if e.Type == lisp.LError {
		return e
	}
	return LoadPrelude(env)
}

// LoadPrelude defines the functions written in lisp, such as map and filter,
// in the root of env.
func LoadPrelude(env *lisp.LEnv) *lisp.LVal {
	return env.LoadString("prelude.lisp", prelude)
}
