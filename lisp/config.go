package lisp

import (
	"io"
	"log"
	"os"
)

// Runtime contains the state shared by a root environment and every
// environment derived from it.
type Runtime struct {
	Reader Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *log.Logger
}

// StandardRuntime returns a new Runtime which writes to the process's standard
// output streams and discards log messages.  The returned Runtime has no
// Reader.
func StandardRuntime() *Runtime {
	return &Runtime{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: log.New(io.Discard, "", 0),
	}
}

// Config is a function that configures a root environment or its runtime.
type Config func(env *LEnv) *LVal

// Loader is a function that loads lisp code or native functions into an
// environment.
type Loader func(env *LEnv) *LVal

// WithLoader returns a Config that executes fn.  WithLoader allows a Loader to
// be applied during InitializeUserEnv, after the Reader has been configured.
func WithLoader(fn Loader) Config {
	return func(env *LEnv) *LVal {
		return fn(env)
	}
}

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Reader = r
		return Nil()
	}
}

// WithStdout returns a Config that makes environments write program output to
// w instead of the default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stdout = w
		return Nil()
	}
}

// WithStderr returns a Config that makes environments write errors to w
// instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stderr = w
		return Nil()
	}
}

// WithLogger returns a Config that makes environments write debugging output
// to logger.
func WithLogger(logger *log.Logger) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Logger = logger
		return Nil()
	}
}
