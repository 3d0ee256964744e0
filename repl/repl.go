// Package repl implements an interactive read-eval-print loop.
package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bmatsuo/lispy/lisp"
	"github.com/bmatsuo/lispy/parser"
	"github.com/chzyer/readline"
)

// DefaultPrompt is the prompt used when RunRepl is given an empty prompt.
const DefaultPrompt = "lispy> "

// RunRepl runs a simple repl in env.  Input lines are appended to historyFile
// unless historyFile is empty.  RunRepl returns nil when the input ends.
func RunRepl(env *lisp.LEnv, prompt string, historyFile string) error {
	if prompt == "" {
		prompt = DefaultPrompt
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	var buf []byte
	for {
		var line []byte
		line, err = rl.ReadSlice()
		if err != nil && err != readline.ErrInterrupt {
			break
		}
		if err == readline.ErrInterrupt {
			buf = nil
			rl.SetPrompt(prompt)
			continue
		}
		if len(buf) != 0 {
			buf = append(buf, '\n')
			line = append(buf, line...)
			buf = nil
			rl.SetPrompt(prompt)
		}
		if len(line) == 0 {
			continue
		}
		complete, evalErr := EvalSource(env, env.Runtime.Stdout, line)
		if evalErr != nil {
			fmt.Fprintln(env.Runtime.Stderr, evalErr)
			continue
		}
		if !complete {
			buf = append([]byte(nil), line...)
			rl.SetPrompt(contPrompt)
		}
	}
	if err != io.EOF {
		return err
	}
	return nil
}

// EvalSource evaluates the expressions in text and writes each result to w.
// If text ends inside an unterminated expression nothing is evaluated and
// EvalSource returns false so the caller can read more input.
func EvalSource(env *lisp.LEnv, w io.Writer, text []byte) (bool, error) {
	exprs, err := parser.ParseLVal("repl", text)
	if errors.Is(err, parser.ErrIncomplete) {
		return false, nil
	}
	if err != nil {
		return true, err
	}
	for _, expr := range exprs {
		fmt.Fprintln(w, env.Eval(expr))
	}
	return true, nil
}
