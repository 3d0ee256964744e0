package libmath

import (
	"math"

	"github.com/bmatsuo/lispy/lisp"
)

// LoadPackage adds the math functions to env
func LoadPackage(env *lisp.LEnv) *lisp.LVal {
	env.PutGlobal(lisp.Symbol("pi"), lisp.Double(math.Pi))
	for _, fn := range builtins {
		env.AddBuiltin(fn.name, fn.fun)
	}
	return lisp.Nil()
}

var builtins = []struct {
	name string
	fun  lisp.LBuiltin
}{
	{"ceil", builtinCeil},
	{"floor", builtinFloor},
	{"sqrt", builtinSqrt},
	{"abs", builtinAbs},
	{"pow", builtinPow},
	{"min", builtinMin},
	{"max", builtinMax},
}

func builtinCeil(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	x, lerr := numberArg("ceil", args)
	if lerr != nil {
		return lerr
	}
	if x.Type == lisp.LNumber {
		return x
	}
	return lisp.Double(math.Ceil(x.Float))
}

func builtinFloor(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	x, lerr := numberArg("floor", args)
	if lerr != nil {
		return lerr
	}
	if x.Type == lisp.LNumber {
		return x
	}
	return lisp.Double(math.Floor(x.Float))
}

func builtinSqrt(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	x, lerr := numberArg("sqrt", args)
	if lerr != nil {
		return lerr
	}
	if toFloat(x) < 0 {
		return lisp.Error("Function 'sqrt' passed a negative number")
	}
	return lisp.Double(math.Sqrt(toFloat(x)))
}

func builtinAbs(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	x, lerr := numberArg("abs", args)
	if lerr != nil {
		return lerr
	}
	if x.Type == lisp.LNumber {
		if x.Int < 0 {
			return lisp.Number(-x.Int)
		}
		return x
	}
	return lisp.Double(math.Abs(x.Float))
}

func builtinPow(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	if len(args.Cells) != 2 {
		return lisp.ErrArgCount("pow", len(args.Cells), 2)
	}
	b, x := args.Cells[0], args.Cells[1]
	if !b.IsNumeric() {
		return lisp.ErrArgType("pow", 1, b.Type, lisp.LNumber)
	}
	if !x.IsNumeric() {
		return lisp.ErrArgType("pow", 2, x.Type, lisp.LNumber)
	}
	if b.Type == lisp.LNumber && x.Type == lisp.LNumber && x.Int >= 0 {
		n, ok := powInt(b.Int, x.Int)
		if ok {
			return lisp.Number(n)
		}
	}
	return lisp.Double(math.Pow(toFloat(b), toFloat(x)))
}

// powInt computes b**e by squaring.  It returns false if the result
// overflows an int64.
func powInt(b, e int64) (int64, bool) {
	n := int64(1)
	for e > 0 {
		var ok bool
		if e&1 == 1 {
			n, ok = mulInt(n, b)
			if !ok {
				return 0, false
			}
		}
		e >>= 1
		if e > 0 {
			b, ok = mulInt(b, b)
			if !ok {
				return 0, false
			}
		}
	}
	return n, true
}

func mulInt(x, y int64) (int64, bool) {
	if x == 0 || y == 0 {
		return 0, true
	}
	if (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return 0, false
	}
	z := x * y
	if z/y != x {
		return 0, false
	}
	return z, true
}

func builtinMin(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	return extremum("min", args, func(x, y float64) bool { return x < y })
}

func builtinMax(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	return extremum("max", args, func(x, y float64) bool { return x > y })
}

// extremum returns the first argument x for which better(x, y) holds against
// every other argument y.
func extremum(name string, args *lisp.LVal, better func(x, y float64) bool) *lisp.LVal {
	if len(args.Cells) == 0 {
		return lisp.ErrArgCount(name, 0, 1)
	}
	var best *lisp.LVal
	for i, x := range args.Cells {
		if !x.IsNumeric() {
			return lisp.ErrArgType(name, i+1, x.Type, lisp.LNumber)
		}
		if best == nil || better(toFloat(x), toFloat(best)) {
			best = x
		}
	}
	return best
}

func numberArg(name string, args *lisp.LVal) (*lisp.LVal, *lisp.LVal) {
	if len(args.Cells) != 1 {
		return nil, lisp.ErrArgCount(name, len(args.Cells), 1)
	}
	x := args.Cells[0]
	if !x.IsNumeric() {
		return nil, lisp.ErrArgType(name, 1, x.Type, lisp.LNumber)
	}
	return x, nil
}

func toFloat(x *lisp.LVal) float64 {
	if x.Type == lisp.LDouble {
		return x.Float
	}
	return float64(x.Int)
}
