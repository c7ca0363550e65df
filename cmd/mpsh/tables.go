package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lailouezzz/microparser/lr"
	"github.com/Lailouezzz/microparser/shell"
)

var tablesFlags = struct {
	html        *string
	dot         *string
	fingerprint *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Check and export the parser tables of the command grammar",
		Example: `  mpsh tables --html tables.html
  mpsh tables --dot - | dot -Tsvg > automaton.svg`,
		Args: cobra.NoArgs,
		RunE: runTables,
	}
	tablesFlags.html = cmd.Flags().String("html", "", "export ACTION and GOTO tables as HTML to a file (- for stdout)")
	tablesFlags.dot = cmd.Flags().String("dot", "", "export the automaton in Graphviz Dot format to a file (- for stdout)")
	tablesFlags.fingerprint = cmd.Flags().Bool("fingerprint", false, "print a fingerprint of the tables")
	rootCmd.AddCommand(cmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	t := shell.Tables()
	if err := t.Validate(); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d states, %d terminals, %d productions, %d states reachable\n",
		t.States(), t.Symbols(), len(t.Productions), len(t.Reachable()))
	if *tablesFlags.fingerprint {
		fp, err := t.Fingerprint()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "fingerprint %s\n", fp)
	}
	if *tablesFlags.html != "" {
		err := export(*tablesFlags.html, out, func(w io.Writer) error {
			if err := lr.ActionTableAsHTML(t, w); err != nil {
				return err
			}
			return lr.GotoTableAsHTML(t, w)
		})
		if err != nil {
			return err
		}
	}
	if *tablesFlags.dot != "" {
		err := export(*tablesFlags.dot, out, func(w io.Writer) error {
			return lr.AutomatonAsDot(t, w)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// export writes to the file at path, or to stdout if path is "-".
func export(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "-" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	tracer().Infof("tables written to %s", path)
	return f.Close()
}
