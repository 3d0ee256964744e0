package lisp

import (
	"fmt"
	"math"
	"strings"
)

// LBuiltin is a function that performs executes a lisp function.
type LBuiltin func(env *LEnv, args *LVal) *LVal

// LBuiltinDef is a built-in function.  Builtin function values are compared
// by identity so implementations should be pointer types.
type LBuiltinDef interface {
	Name() string
	Eval(env *LEnv, args *LVal) *LVal
}

type langBuiltin struct {
	name string
	fun  LBuiltin
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Eval(env *LEnv, args *LVal) *LVal {
	return fun.fun(env, args)
}

var userBuiltins []*langBuiltin
var langBuiltins = []*langBuiltin{
	{"list", builtinList},
	{"head", builtinHead},
	{"tail", builtinTail},
	{"init", builtinInit},
	{"join", builtinJoin},
	{"cons", builtinCons},
	{"len", builtinLen},
	{"eval", builtinEval},
	{"def", builtinDef},
	{"=", builtinPut},
	{`\`, builtinLambda},
	{"if", builtinIf},
	{"==", builtinEq},
	{"!=", builtinNotEq},
	{">", builtinGT},
	{"<", builtinLT},
	{">=", builtinGEq},
	{"<=", builtinLEq},
	{"+", builtinAdd},
	{"-", builtinSub},
	{"*", builtinMul},
	{"/", builtinDiv},
	{"%", builtinMod},
	{"print", builtinPrint},
	{"error", builtinError},
	{"load", builtinLoad},
}

// RegisterDefaultBuiltin adds the given function to the list returned by
// DefaultBuiltins.
func RegisterDefaultBuiltin(name string, fn LBuiltin) {
	userBuiltins = append(userBuiltins, &langBuiltin{name, fn})
}

// DefaultBuiltins returns the default set of LBuiltinDefs added to LEnv
// objects when LEnv.AddBuiltins is called without arguments.
func DefaultBuiltins() []LBuiltinDef {
	ops := make([]LBuiltinDef, len(langBuiltins)+len(userBuiltins))
	for i := range langBuiltins {
		ops[i] = langBuiltins[i]
	}
	offset := len(langBuiltins)
	for i := range userBuiltins {
		ops[offset+i] = userBuiltins[i]
	}
	return ops
}

// ErrArgCount returns an error for a call to the function name with the wrong
// number of arguments.
func ErrArgCount(name string, got, expected int) *LVal {
	return Error(fmt.Sprintf("Function '%s' passed incorrect number of arguments. Got %d, expected %d.",
		name, got, expected))
}

// ErrArgType returns an error for a call to the function name with an argument
// of the wrong type.  Argument positions start at 1.
func ErrArgType(name string, i int, got LType, expected LType) *LVal {
	return Error(fmt.Sprintf("Function '%s' passed incorrect type for argument %d. Got %v, expected %v.",
		name, i, got, expected))
}

// CheckArgs returns an error if args does not contain exactly the given
// types.  Otherwise CheckArgs returns nil.
func CheckArgs(name string, args *LVal, types ...LType) *LVal {
	if len(args.Cells) != len(types) {
		return ErrArgCount(name, len(args.Cells), len(types))
	}
	for i, t := range types {
		if args.Cells[i].Type != t {
			return ErrArgType(name, i+1, args.Cells[i].Type, t)
		}
	}
	return nil
}

func builtinList(env *LEnv, args *LVal) *LVal {
	return QExpr(args.Cells)
}

func builtinHead(env *LEnv, args *LVal) *LVal {
	if lerr := CheckArgs("head", args, LQExpr); lerr != nil {
		return lerr
	}
	v := args.Take(0)
	if len(v.Cells) == 0 {
		return Error("Function 'head' passed {}")
	}
	v.Cells = v.Cells[:1]
	return v
}

func builtinTail(env *LEnv, args *LVal) *LVal {
	if lerr := CheckArgs("tail", args, LQExpr); lerr != nil {
		return lerr
	}
	v := args.Take(0)
	if len(v.Cells) == 0 {
		return Error("Function 'tail' passed {}")
	}
	v.Pop(0)
	return v
}

func builtinInit(env *LEnv, args *LVal) *LVal {
	if lerr := CheckArgs("init", args, LQExpr); lerr != nil {
		return lerr
	}
	v := args.Take(0)
	if len(v.Cells) == 0 {
		return Error("Function 'init' passed {}")
	}
	v.Pop(len(v.Cells) - 1)
	return v
}

func builtinJoin(env *LEnv, args *LVal) *LVal {
	if len(args.Cells) == 0 {
		return ErrArgCount("join", 0, 1)
	}
	for i, c := range args.Cells {
		if c.Type != LQExpr {
			return ErrArgType("join", i+1, c.Type, LQExpr)
		}
	}
	x := args.Pop(0)
	for len(args.Cells) > 0 {
		y := args.Pop(0)
		x.Cells = append(x.Cells, y.Cells...)
	}
	return x
}

func builtinCons(env *LEnv, args *LVal) *LVal {
	if len(args.Cells) != 2 {
		return ErrArgCount("cons", len(args.Cells), 2)
	}
	if args.Cells[1].Type != LQExpr {
		return ErrArgType("cons", 2, args.Cells[1].Type, LQExpr)
	}
	x := args.Pop(0)
	q := args.Take(0)
	q.Cells = append([]*LVal{x}, q.Cells...)
	return q
}

func builtinLen(env *LEnv, args *LVal) *LVal {
	if len(args.Cells) != 1 {
		return ErrArgCount("len", len(args.Cells), 1)
	}
	switch v := args.Cells[0]; v.Type {
	case LQExpr:
		return Number(int64(len(v.Cells)))
	case LString:
		return Number(int64(len(v.Str)))
	default:
		return ErrArgType("len", 1, v.Type, LQExpr)
	}
}

func builtinEval(env *LEnv, args *LVal) *LVal {
	if lerr := CheckArgs("eval", args, LQExpr); lerr != nil {
		return lerr
	}
	x := args.Take(0)
	x.Type = LSExpr
	return env.Eval(x)
}

func builtinDef(env *LEnv, args *LVal) *LVal {
	return builtinVar(env, args, "def")
}

func builtinPut(env *LEnv, args *LVal) *LVal {
	return builtinVar(env, args, "=")
}

func builtinVar(env *LEnv, args *LVal, name string) *LVal {
	if len(args.Cells) == 0 {
		return ErrArgCount(name, 0, 1)
	}
	syms := args.Cells[0]
	if syms.Type != LQExpr {
		return ErrArgType(name, 1, syms.Type, LQExpr)
	}
	for _, sym := range syms.Cells {
		if sym.Type != LSymbol {
			return Error(fmt.Sprintf("Function '%s' cannot define non-symbol. Got %v, expected %v.",
				name, sym.Type, LSymbol))
		}
	}
	if len(syms.Cells) != len(args.Cells)-1 {
		return Error(fmt.Sprintf("Function '%s' passed too many arguments for symbols. Got %d, expected %d.",
			name, len(args.Cells)-1, len(syms.Cells)))
	}
	for i, sym := range syms.Cells {
		if name == "def" {
			env.PutGlobal(sym, args.Cells[i+1])
		} else {
			env.Put(sym, args.Cells[i+1])
		}
	}
	return Nil()
}

func builtinLambda(env *LEnv, args *LVal) *LVal {
	if lerr := CheckArgs(`\`, args, LQExpr, LQExpr); lerr != nil {
		return lerr
	}
	for _, sym := range args.Cells[0].Cells {
		if sym.Type != LSymbol {
			return Error(fmt.Sprintf("Cannot define non-symbol. Got %v, expected %v.",
				sym.Type, LSymbol))
		}
	}
	formals := args.Pop(0)
	body := args.Take(0)
	return Lambda(formals, body)
}

func builtinIf(env *LEnv, args *LVal) *LVal {
	if lerr := CheckArgs("if", args, LNumber, LQExpr, LQExpr); lerr != nil {
		return lerr
	}
	var branch *LVal
	if args.Cells[0].Int != 0 {
		branch = args.Cells[1]
	} else {
		branch = args.Cells[2]
	}
	branch.Type = LSExpr
	return env.Eval(branch)
}

func builtinEq(env *LEnv, args *LVal) *LVal {
	if len(args.Cells) != 2 {
		return ErrArgCount("==", len(args.Cells), 2)
	}
	return Bool(args.Cells[0].Equal(args.Cells[1]))
}

func builtinNotEq(env *LEnv, args *LVal) *LVal {
	if len(args.Cells) != 2 {
		return ErrArgCount("!=", len(args.Cells), 2)
	}
	return Bool(!args.Cells[0].Equal(args.Cells[1]))
}

func builtinGT(env *LEnv, args *LVal) *LVal {
	return builtinOrd(args, ">", func(cmp int) bool { return cmp > 0 })
}

func builtinLT(env *LEnv, args *LVal) *LVal {
	return builtinOrd(args, "<", func(cmp int) bool { return cmp < 0 })
}

func builtinGEq(env *LEnv, args *LVal) *LVal {
	return builtinOrd(args, ">=", func(cmp int) bool { return cmp >= 0 })
}

func builtinLEq(env *LEnv, args *LVal) *LVal {
	return builtinOrd(args, "<=", func(cmp int) bool { return cmp <= 0 })
}

func builtinOrd(args *LVal, name string, test func(cmp int) bool) *LVal {
	if len(args.Cells) != 2 {
		return ErrArgCount(name, len(args.Cells), 2)
	}
	a, b := args.Cells[0], args.Cells[1]
	if !a.IsNumeric() {
		return ErrArgType(name, 1, a.Type, LNumber)
	}
	if !b.IsNumeric() {
		return ErrArgType(name, 2, b.Type, LNumber)
	}
	if isNaN(a) || isNaN(b) {
		return Bool(false)
	}
	return Bool(test(compareNumeric(a, b)))
}

// Bool returns the Number 1 if ok is true and 0 otherwise.
func Bool(ok bool) *LVal {
	if ok {
		return Number(1)
	}
	return Number(0)
}

func builtinAdd(env *LEnv, args *LVal) *LVal {
	return builtinOp(args, "+")
}

func builtinSub(env *LEnv, args *LVal) *LVal {
	return builtinOp(args, "-")
}

func builtinMul(env *LEnv, args *LVal) *LVal {
	return builtinOp(args, "*")
}

func builtinDiv(env *LEnv, args *LVal) *LVal {
	return builtinOp(args, "/")
}

func builtinMod(env *LEnv, args *LVal) *LVal {
	if lerr := CheckArgs("%", args, LNumber, LNumber); lerr != nil {
		return lerr
	}
	a, b := args.Cells[0], args.Cells[1]
	if b.Int == 0 {
		return Error("division by zero")
	}
	return Number(a.Int % b.Int)
}

// builtinOp folds the arithmetic operator op over args.  The result is a
// Number unless one of the arguments is a Double.
func builtinOp(args *LVal, op string) *LVal {
	for i, c := range args.Cells {
		if !c.IsNumeric() {
			return ErrArgType(op, i+1, c.Type, LNumber)
		}
	}
	if len(args.Cells) == 0 {
		if op == "*" || op == "/" {
			return Number(1)
		}
		return Number(0)
	}

	x := args.Pop(0)
	if len(args.Cells) == 0 {
		switch op {
		case "-":
			x.Int = -x.Int
			x.Float = -x.Float
		case "/":
			args.Add(x)
			x = Number(1)
		}
	}
	for len(args.Cells) > 0 {
		y := args.Pop(0)
		if x.Type == LDouble || y.Type == LDouble {
			x = doubleOp(op, toFloat(x), toFloat(y))
		} else {
			x = numberOp(op, x.Int, y.Int)
		}
		if x.Type == LError {
			return x
		}
	}
	return x
}

func numberOp(op string, x, y int64) *LVal {
	switch op {
	case "+":
		return Number(x + y)
	case "-":
		return Number(x - y)
	case "*":
		return Number(x * y)
	case "/":
		if y == 0 {
			return Error("division by zero")
		}
		return Number(x / y)
	default:
		return Error(fmt.Sprintf("unknown operator: %s", op))
	}
}

func doubleOp(op string, x, y float64) *LVal {
	switch op {
	case "+":
		return Double(x + y)
	case "-":
		return Double(x - y)
	case "*":
		return Double(x * y)
	case "/":
		if y == 0 {
			return Error("division by zero")
		}
		return Double(x / y)
	default:
		return Error(fmt.Sprintf("unknown operator: %s", op))
	}
}

func isNaN(x *LVal) bool {
	return x.Type == LDouble && math.IsNaN(x.Float)
}

func compareNumeric(a, b *LVal) int {
	if a.Type == LNumber && b.Type == LNumber {
		switch {
		case a.Int < b.Int:
			return -1
		case a.Int > b.Int:
			return 1
		default:
			return 0
		}
	}
	x, y := toFloat(a), toFloat(b)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func builtinPrint(env *LEnv, args *LVal) *LVal {
	strs := make([]string, len(args.Cells))
	for i, c := range args.Cells {
		strs[i] = c.String()
	}
	fmt.Fprintln(env.Runtime.Stdout, strings.Join(strs, " "))
	return Nil()
}

func builtinError(env *LEnv, args *LVal) *LVal {
	if lerr := CheckArgs("error", args, LString); lerr != nil {
		return lerr
	}
	return Error(args.Cells[0].Str)
}

func builtinLoad(env *LEnv, args *LVal) *LVal {
	if lerr := CheckArgs("load", args, LString); lerr != nil {
		return lerr
	}
	return env.root().LoadFile(args.Cells[0].Str)
}
