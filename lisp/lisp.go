package lisp

import (
	"bytes"
	"strconv"
	"strings"
)

// LType is the type of an LVal
type LType uint

// Possible LType values
const (
	LInvalid LType = iota
	LNumber
	LDouble
	LError
	LSymbol
	LString
	LSExpr
	LQExpr
	LFun
)

var lvalTypeStrings = []string{
	LInvalid: "INVALID",
	LNumber:  "Number",
	LDouble:  "Double",
	LError:   "Error",
	LSymbol:  "Symbol",
	LString:  "String",
	LSExpr:   "S-Expression",
	LQExpr:   "Q-Expression",
	LFun:     "Function",
}

func (t LType) String() string {
	if int(t) >= len(lvalTypeStrings) {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// LVal is a lisp value
type LVal struct {
	Type  LType
	Int   int64
	Float float64
	Str   string
	Cells []*LVal

	// Variables needed for function values.  A builtin function only uses
	// Builtin.  A user defined function uses Env, Formals, and Body.
	Builtin LBuiltinDef
	Env     *LEnv
	Formals *LVal
	Body    *LVal
}

// Number returns an LVal representing the integer x.
func Number(x int64) *LVal {
	return &LVal{
		Type: LNumber,
		Int:  x,
	}
}

// Double returns an LVal representing the floating point number x.
func Double(x float64) *LVal {
	return &LVal{
		Type:  LDouble,
		Float: x,
	}
}

// String returns an LVal representing the string s.
func String(s string) *LVal {
	return &LVal{
		Type: LString,
		Str:  s,
	}
}

// Symbol returns an LVal resprenting the symbol s
func Symbol(s string) *LVal {
	return &LVal{
		Type: LSymbol,
		Str:  s,
	}
}

// Error returns an LVal representing an error with the given message.  Error
// does not format msg, callers are expected to do that.
func Error(msg string) *LVal {
	return &LVal{
		Type: LError,
		Str:  msg,
	}
}

// SExpr returns an LVal representing an S-expression, a symbolic expression.
// The returned LVal takes ownership of cells.
func SExpr(cells []*LVal) *LVal {
	return &LVal{
		Type:  LSExpr,
		Cells: cells,
	}
}

// QExpr returns an LVal representing an Q-expression, a quoted expression, a
// list.  The returned LVal takes ownership of cells.
func QExpr(cells []*LVal) *LVal {
	return &LVal{
		Type:  LQExpr,
		Cells: cells,
	}
}

// Nil returns an empty S-expression, the value returned by functions which
// have nothing to return.
func Nil() *LVal {
	return SExpr(nil)
}

// Fun returns an LVal representing the builtin function fn.
func Fun(fn LBuiltinDef) *LVal {
	return &LVal{
		Type:    LFun,
		Builtin: fn,
	}
}

// Lambda returns anonymous function that has formals as arguments and the
// given body, which may reference symbols specified in the list of formals.
// The function gets its own environment which has no parent until the
// function is applied.
func Lambda(formals *LVal, body *LVal) *LVal {
	return &LVal{
		Type:    LFun,
		Env:     newLocalEnv(),
		Formals: formals,
		Body:    body,
	}
}

// TypeName returns the name of v's type as it is displayed in error messages.
func (v *LVal) TypeName() string {
	return v.Type.String()
}

// IsNumeric returns true if v is a Number or a Double.
func (v *LVal) IsNumeric() bool {
	return v.Type == LNumber || v.Type == LDouble
}

// IsBuiltin returns true if v is a native function.
func (v *LVal) IsBuiltin() bool {
	return v.Type == LFun && v.Builtin != nil
}

// Len returns the number of cells in v.
func (v *LVal) Len() int {
	return len(v.Cells)
}

// Add appends x to the cells of v, transferring ownership of x to v.
func (v *LVal) Add(x *LVal) *LVal {
	v.Cells = append(v.Cells, x)
	return v
}

// Pop removes the i-th cell from v and returns it.  The remaining cells keep
// their order.
func (v *LVal) Pop(i int) *LVal {
	x := v.Cells[i]
	copy(v.Cells[i:], v.Cells[i+1:])
	v.Cells[len(v.Cells)-1] = nil
	v.Cells = v.Cells[:len(v.Cells)-1]
	return x
}

// Take is like Pop but v is no longer usable afterwards.
func (v *LVal) Take(i int) *LVal {
	x := v.Pop(i)
	v.Cells = nil
	return x
}

// Copy creates a deep copy of the receiver.  Builtin functions are shared.
// User defined functions get a copy of their environment which shares the
// original environment's parent.
func (v *LVal) Copy() *LVal {
	if v == nil {
		return nil
	}
	cp := &LVal{}
	*cp = *v // shallow copy of all fields
	switch v.Type {
	case LSExpr, LQExpr:
		cp.Cells = v.copyCells()
	case LFun:
		if v.Builtin != nil {
			break
		}
		cp.Env = v.Env.Copy()
		cp.Formals = v.Formals.Copy()
		cp.Body = v.Body.Copy()
	}
	return cp
}

func (v *LVal) copyCells() []*LVal {
	if len(v.Cells) == 0 {
		return nil
	}
	cells := make([]*LVal, len(v.Cells))
	for i := range cells {
		cells[i] = v.Cells[i].Copy()
	}
	return cells
}

// Equal returns true if v and other are structurally equal.  Numbers compare
// by value regardless of representation.  User defined functions are equal
// when their formals and bodies are equal, their environments are ignored.
func (v *LVal) Equal(other *LVal) bool {
	if v.IsNumeric() && other.IsNumeric() {
		if v.Type == LNumber && other.Type == LNumber {
			return v.Int == other.Int
		}
		return toFloat(v) == toFloat(other)
	}
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case LError, LSymbol, LString:
		return v.Str == other.Str
	case LSExpr, LQExpr:
		if len(v.Cells) != len(other.Cells) {
			return false
		}
		for i := range v.Cells {
			if !v.Cells[i].Equal(other.Cells[i]) {
				return false
			}
		}
		return true
	case LFun:
		if v.Builtin != nil || other.Builtin != nil {
			return v.Builtin == other.Builtin
		}
		return v.Formals.Equal(other.Formals) && v.Body.Equal(other.Body)
	default:
		return false
	}
}

func (v *LVal) String() string {
	switch v.Type {
	case LNumber:
		return strconv.FormatInt(v.Int, 10)
	case LDouble:
		return formatDouble(v.Float)
	case LString:
		return strconv.Quote(v.Str)
	case LError:
		return "Error: " + v.Str
	case LSymbol:
		return v.Str
	case LSExpr:
		return exprString(v, "(", ")")
	case LQExpr:
		return exprString(v, "{", "}")
	case LFun:
		if v.Builtin != nil {
			return "<builtin>"
		}
		return `(\ ` + v.Formals.String() + " " + v.Body.String() + ")"
	default:
		return "<invalid>"
	}
}

func formatDouble(x float64) string {
	s := strconv.FormatFloat(x, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEnI") {
		return s
	}
	return s + ".0"
}

func exprString(v *LVal, left string, right string) string {
	if len(v.Cells) == 0 {
		return left + right
	}
	var buf bytes.Buffer
	buf.WriteString(left)
	for i, c := range v.Cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(c.String())
	}
	buf.WriteString(right)
	return buf.String()
}

func toFloat(x *LVal) float64 {
	if x.Type == LNumber {
		return float64(x.Int)
	}
	return x.Float
}
