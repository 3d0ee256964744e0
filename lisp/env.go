package lisp

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// LEnv is a lisp environment.
type LEnv struct {
	Scope   map[string]*LVal
	Parent  *LEnv
	Runtime *Runtime
}

// NewEnv returns initializes and returns a new LEnv.  An environment without
// a parent is a root environment and is given a new Runtime.
func NewEnv(parent *LEnv) *LEnv {
	var rt *Runtime
	if parent != nil {
		rt = parent.Runtime
	} else {
		rt = StandardRuntime()
	}
	return &LEnv{
		Scope:   make(map[string]*LVal),
		Parent:  parent,
		Runtime: rt,
	}
}

// InitializeUserEnv adds the default builtins to env and applies the given
// configuration.
func InitializeUserEnv(env *LEnv, config ...Config) *LVal {
	env.AddBuiltins()
	for _, fn := range config {
		lerr := fn(env)
		if lerr.Type == LError {
			return lerr
		}
	}
	return Nil()
}

// Copy returns a new LEnv with a copy of env.Scope but a shared parent and
// runtime (not quite a deep copy).
func (env *LEnv) Copy() *LEnv {
	if env == nil {
		return nil
	}
	cp := &LEnv{}
	*cp = *env
	cp.Scope = make(map[string]*LVal, len(env.Scope))
	for k, v := range env.Scope {
		cp.Scope[k] = v.Copy()
	}
	return cp
}

// Get takes an LSymbol k and returns a copy of the LVal it is bound to in env
// or the nearest ancestor that binds it.
func (env *LEnv) Get(k *LVal) *LVal {
	for e := env; e != nil; e = e.Parent {
		v, ok := e.Scope[k.Str]
		if ok {
			return v.Copy()
		}
	}
	return Error(fmt.Sprintf("unbound symbol '%s'", k.Str))
}

// Put takes an LSymbol k and binds it to a copy of v in env.  Put never
// modifies env.Parent.
func (env *LEnv) Put(k, v *LVal) {
	if v == nil {
		panic("nil value")
	}
	env.Scope[k.Str] = v.Copy()
}

// PutGlobal takes an LSymbol k and binds it to v in root environment (global
// scope).
func (env *LEnv) PutGlobal(k, v *LVal) {
	env.root().Put(k, v)
}

// GetGlobal takes LSymbol k and returns the value it is bound to in the root
// environment (global scope).
func (env *LEnv) GetGlobal(k *LVal) *LVal {
	return env.root().Get(k)
}

// newLocalEnv returns an environment for a user defined function.  It gets a
// parent and runtime when the function is applied.
func newLocalEnv() *LEnv {
	return &LEnv{Scope: make(map[string]*LVal)}
}

func (env *LEnv) root() *LEnv {
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}

// AddBuiltin binds a native function fn to name in env.
func (env *LEnv) AddBuiltin(name string, fn LBuiltin) {
	env.AddBuiltins(&langBuiltin{name: name, fun: fn})
}

// AddBuiltins binds the given funs to their names in env.  When called with no
// arguments AddBuiltins adds the DefaultBuiltins to env.
func (env *LEnv) AddBuiltins(funs ...LBuiltinDef) {
	if len(funs) == 0 {
		funs = DefaultBuiltins()
	}
	for _, f := range funs {
		env.Runtime.Logger.Printf("builtin %s", f.Name())
		env.Put(Symbol(f.Name()), Fun(f))
	}
}

// LoadString evaluates the lisp source code in exprs.  See Load.
func (env *LEnv) LoadString(name, exprs string) *LVal {
	return env.Load(name, strings.NewReader(exprs))
}

// LoadFile reads the lisp source file at path and evaluates the expressions
// it contains.  See Load.
func (env *LEnv) LoadFile(path string) *LVal {
	f, err := os.Open(path)
	if err != nil {
		return Error(fmt.Sprintf("could not load library %s: %v", path, err))
	}
	defer f.Close()
	return env.Load(path, f)
}

// Load reads LVals from r and evaluates them in order.  An error returned by an
// expression is written to env.Runtime.Stderr and evaluation continues with
// the next expression.  If the source cannot be read an error is returned and
// nothing is evaluated.  If env.Runtime.Reader has not been set then an error
// will be returned by Load.
func (env *LEnv) Load(name string, r io.Reader) *LVal {
	if env.Runtime.Reader == nil {
		return Error("no reader for environment runtime")
	}
	env.Runtime.Logger.Printf("loading %s", name)
	exprs, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		return Error(fmt.Sprintf("could not load library %s: %v", name, err))
	}
	for _, expr := range exprs {
		v := env.Eval(expr)
		if v.Type == LError {
			fmt.Fprintln(env.Runtime.Stderr, v)
		}
	}
	return Nil()
}

// Eval evaluates v in the context (scope) of env and returns the resulting
// LVal.  Symbols are resolved and S-expressions are applied.  All other values
// evaluate to themselves.
func (env *LEnv) Eval(v *LVal) *LVal {
	switch v.Type {
	case LSymbol:
		return env.Get(v)
	case LSExpr:
		return env.EvalSExpr(v)
	default:
		return v
	}
}

// EvalSExpr evaluates s and returns the resulting LVal.  The cells of s are
// evaluated in place so s must not be used after EvalSExpr returns.
func (env *LEnv) EvalSExpr(s *LVal) *LVal {
	for i := range s.Cells {
		s.Cells[i] = env.Eval(s.Cells[i])
	}
	for i := range s.Cells {
		if s.Cells[i].Type == LError {
			return s.Take(i)
		}
	}

	if len(s.Cells) == 0 {
		return s
	}
	if len(s.Cells) == 1 {
		return s.Take(0)
	}

	f := s.Pop(0)
	if f.Type != LFun {
		return Error(fmt.Sprintf("S-expression starts with incorrect type: expected %v, got %v",
			LFun, f.Type))
	}
	return env.Call(f, s)
}

// Call invokes LFun fun with the list args.  A user defined function given
// fewer arguments than it has formals returns a new function which expects the
// remaining arguments.
func (env *LEnv) Call(fun *LVal, args *LVal) *LVal {
	if fun.Builtin != nil {
		return fun.Builtin.Eval(env, args)
	}

	fun = fun.Copy()
	given := len(args.Cells)
	total := len(fun.Formals.Cells)
	for len(args.Cells) > 0 {
		if len(fun.Formals.Cells) == 0 {
			return Error(fmt.Sprintf("too many arguments: got %d, expected %d", given, total))
		}
		sym := fun.Formals.Pop(0)
		if sym.Str == VarArgSymbol {
			if len(fun.Formals.Cells) != 1 {
				return Error(errVarArgFormals)
			}
			rest := fun.Formals.Pop(0)
			fun.Env.Put(rest, QExpr(args.Cells))
			args.Cells = nil
			break
		}
		fun.Env.Put(sym, args.Pop(0))
	}

	// No variable arguments were given, so the rest symbol is bound to an
	// empty list.
	if len(fun.Formals.Cells) > 0 && fun.Formals.Cells[0].Str == VarArgSymbol {
		if len(fun.Formals.Cells) != 2 {
			return Error(errVarArgFormals)
		}
		fun.Formals.Pop(0)
		rest := fun.Formals.Pop(0)
		fun.Env.Put(rest, QExpr(nil))
	}

	if len(fun.Formals.Cells) != 0 {
		return fun
	}

	fun.Env.Parent = env
	fun.Env.Runtime = env.Runtime
	return fun.Env.Eval(SExpr(fun.Body.Cells))
}

const errVarArgFormals = "'" + VarArgSymbol + "' not followed by exactly one symbol"
