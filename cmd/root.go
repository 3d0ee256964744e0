package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbose   bool
	noPrelude bool

	// config is loaded before any command runs.
	config *Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lispy",
	Short: "A small lisp interpreter",
	Long: `Lispy evaluates S-expressions and Q-expressions.

Without a subcommand lispy starts an interactive session.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		config, err = loadConfig(cmd)
		return err
	},
	RunE: runRepl,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Config file (default $HOME/"+defaultConfigName+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log interpreter activity to stderr")
	rootCmd.PersistentFlags().BoolVar(&noPrelude, "no-prelude", false,
		"Do not load the standard library")
}

// loadConfig reads the config file and applies command line flags on top of
// it.
func loadConfig(cmd *cobra.Command) (*Config, error) {
	path := cfgFile
	required := path != ""
	if !required {
		home, err := os.UserHomeDir()
		if err == nil {
			path = defaultConfigPath(home)
		}
	}
	c := DefaultConfig()
	if path != "" {
		var err error
		c, err = ReadConfig(path, required)
		if err != nil {
			return nil, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		c.Verbose = verbose
	}
	if flags.Changed("no-prelude") {
		c.NoPrelude = noPrelude
	}
	return c, nil
}
