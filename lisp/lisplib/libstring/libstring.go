package libstring

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bmatsuo/lispy/lisp"
)

// LoadPackage adds the string functions to env
func LoadPackage(env *lisp.LEnv) *lisp.LVal {
	for _, fn := range builtins {
		env.AddBuiltin(fn.name, fn.fun)
	}
	return lisp.Nil()
}

var builtins = []struct {
	name string
	fun  lisp.LBuiltin
}{
	{"format", builtinFormat},
	{"concat", builtinConcat},
	{"to-string", builtinToString},
}

func builtinFormat(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	if len(args.Cells) == 0 {
		return lisp.ErrArgCount("format", 0, 1)
	}
	format := args.Cells[0]
	fvals := args.Cells[1:]
	if format.Type != lisp.LString {
		return lisp.ErrArgType("format", 1, format.Type, lisp.LString)
	}
	parts, err := parseFormatString(format.Str)
	if err != nil {
		return lisp.Error(err.Error())
	}
	var buf bytes.Buffer
	anonIndex := 0
	for _, p := range parts {
		if !p.directive {
			buf.WriteString(p.text)
			continue
		}
		// TODO:  Allow non-empty formatting directives such as positional indices
		if strings.TrimSpace(p.text) != "" {
			return lisp.Error("formatting directives must be empty")
		}
		if anonIndex >= len(fvals) {
			return lisp.Error("too many formatting directives for supplied values")
		}
		buf.WriteString(toString(fvals[anonIndex]))
		anonIndex++
	}
	if anonIndex < len(fvals) {
		return lisp.Error("too many values for formatting directives")
	}
	return lisp.String(buf.String())
}

func builtinConcat(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	var buf bytes.Buffer
	for i, c := range args.Cells {
		if c.Type != lisp.LString {
			return lisp.ErrArgType("concat", i+1, c.Type, lisp.LString)
		}
		buf.WriteString(c.Str)
	}
	return lisp.String(buf.String())
}

func builtinToString(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	if len(args.Cells) != 1 {
		return lisp.ErrArgCount("to-string", len(args.Cells), 1)
	}
	return lisp.String(toString(args.Cells[0]))
}

// toString returns the text of a String value or the printed representation
// of any other value.
func toString(v *lisp.LVal) string {
	if v.Type == lisp.LString {
		return v.Str
	}
	return v.String()
}

type formatPart struct {
	text      string
	directive bool
}

// parseFormatString splits f into literal text and the contents of {}
// directives.  Braces are escaped by doubling them.
func parseFormatString(f string) ([]formatPart, error) {
	var parts []formatPart
	var text bytes.Buffer
	for len(f) > 0 {
		i := strings.IndexAny(f, "{}")
		if i < 0 {
			text.WriteString(f)
			break
		}
		text.WriteString(f[:i])
		c := f[i]
		f = f[i+1:]
		if len(f) > 0 && f[0] == c {
			text.WriteByte(c)
			f = f[1:]
			continue
		}
		if c == '}' {
			return nil, fmt.Errorf("unexpected closing brace '}' outside of formatting directive")
		}
		end := strings.IndexAny(f, "{}")
		if end < 0 || f[end] != '}' {
			return nil, fmt.Errorf("unclosed formatting directive")
		}
		if text.Len() > 0 {
			parts = append(parts, formatPart{text: text.String()})
			text.Reset()
		}
		parts = append(parts, formatPart{text: f[:end], directive: true})
		f = f[end+1:]
	}
	if text.Len() > 0 {
		parts = append(parts, formatPart{text: text.String()})
	}
	return parts, nil
}
