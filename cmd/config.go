package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/bmatsuo/lispy/lisp"
	"github.com/bmatsuo/lispy/lisp/lisplib"
	"github.com/bmatsuo/lispy/parser"
	"github.com/bmatsuo/lispy/repl"
	"gopkg.in/yaml.v3"
)

const defaultConfigName = ".lispy.yaml"

// Config holds the settings read from a config file.
type Config struct {
	Prompt      string   `yaml:"prompt"`
	HistoryFile string   `yaml:"history_file"`
	Preload     []string `yaml:"preload"`
	NoPrelude   bool     `yaml:"no_prelude"`
	Verbose     bool     `yaml:"verbose"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Prompt: repl.DefaultPrompt,
	}
}

func defaultConfigPath(home string) string {
	return filepath.Join(home, defaultConfigName)
}

// ReadConfig reads a YAML config file at path.  Settings missing from the
// file keep their default values.  If the file does not exist and required
// is false the default configuration is returned.
func ReadConfig(path string, required bool) (*Config, error) {
	c := DefaultConfig()
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	err = dec.Decode(c)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Logger returns the logger for interpreter activity.  Messages are discarded
// unless c.Verbose is true.
func (c *Config) Logger(w io.Writer) *log.Logger {
	if !c.Verbose {
		w = io.Discard
	}
	return log.New(w, "lispy: ", log.LstdFlags)
}

// NewEnv returns a root environment configured by c.  Program output is
// written to stdout and errors are written to stderr.
func (c *Config) NewEnv(stdout, stderr io.Writer) (*lisp.LEnv, error) {
	opts := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(stdout),
		lisp.WithStderr(stderr),
		lisp.WithLogger(c.Logger(stderr)),
	}
	if !c.NoPrelude {
		opts = append(opts, lisp.WithLoader(lisplib.LoadLibrary))
	}
	env := lisp.NewEnv(nil)
	lerr := lisp.InitializeUserEnv(env, opts...)
	if err := lisp.GoError(lerr); err != nil {
		return nil, fmt.Errorf("failed to initialize lisp environment: %w", err)
	}
	for _, path := range c.Preload {
		lerr = env.LoadFile(path)
		if err := lisp.GoError(lerr); err != nil {
			return nil, fmt.Errorf("preload: %w", err)
		}
	}
	return env, nil
}
