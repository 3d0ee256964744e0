package cmd

import (
	"os"

	"github.com/bmatsuo/lispy/repl"
	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long: `Start an interactive session.  Each complete expression is evaluated
and its value is printed.  Input spanning multiple lines is read until
all parentheses and braces are closed.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	env, err := config.NewEnv(os.Stdout, os.Stderr)
	if err != nil {
		return err
	}
	return repl.RunRepl(env, config.Prompt, config.HistoryFile)
}

func init() {
	rootCmd.AddCommand(replCmd)
}
