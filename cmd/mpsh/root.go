package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootFlags = struct {
	config   *string
	trace    *string
	maxDepth *int
}{}

// conf is the configuration in effect for the running command.
var conf *Config

var rootCmd = &cobra.Command{
	Use:   "mpsh",
	Short: "Parse shell command lines with a table-driven LR parser",
	Long: `mpsh provides three features:
- Parses command lines and prints them in normalized form or as a tree.
- Starts an interactive shell for experiments with the command grammar.
- Exports the parser tables of the command grammar.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootFlags.config = rootCmd.PersistentFlags().StringP("config", "c", "", "configuration file (YAML)")
	rootFlags.trace = rootCmd.PersistentFlags().StringP("trace", "t", "", "trace level [Debug|Info|Error]")
	rootFlags.maxDepth = rootCmd.PersistentFlags().Int("max-depth", 0, "maximum depth of the parse stack, 0 for no limit")
}

// setup loads the configuration, applies command line flags on top of it and
// initializes tracing.
func setup(cmd *cobra.Command, args []string) error {
	c, err := LoadConfig(*rootFlags.config)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("trace") {
		c.Trace = *rootFlags.trace
	}
	if cmd.Flags().Changed("max-depth") {
		c.MaxDepth = *rootFlags.maxDepth
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := initTracing(c); err != nil {
		return err
	}
	conf = c
	return nil
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
