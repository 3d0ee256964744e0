package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/bmatsuo/lispy/lisp"
	"github.com/bmatsuo/lispy/parser"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run lisp code",
	Long:  `Run lisp code provided supplied via the command line or a file.`,
	Run: func(cmd *cobra.Command, args []string) {
		names, exprs, err := runReadExpressions(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		env, err := config.NewEnv(os.Stdout, os.Stderr)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		err = runSources(env, os.Stdout, names, exprs)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

// runSources evaluates each source in order.  Evaluation stops at the first
// syntax error or expression that evaluates to an error.
func runSources(env *lisp.LEnv, w io.Writer, names []string, exprs [][]byte) error {
	for i := range exprs {
		vals, err := parser.ParseLVal(names[i], exprs[i])
		if err != nil {
			return err
		}
		for _, v := range vals {
			env.Runtime.Logger.Printf("eval %s: %v", names[i], v)
			v = env.Eval(v)
			if v.Type == lisp.LError {
				return lisp.GoError(v)
			}
			if runPrint {
				fmt.Fprintln(w, v)
			}
		}
	}
	return nil
}

func runReadExpressions(args []string) ([]string, [][]byte, error) {
	names := make([]string, len(args))
	exprs := make([][]byte, len(args))
	if runExpression {
		for i := range args {
			names[i] = fmt.Sprintf("expression %d", i+1)
			exprs[i] = []byte(args[i])
		}
		return names, exprs, nil
	}
	for i, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		names[i] = path
		exprs[i] = b
	}
	return names, exprs, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
