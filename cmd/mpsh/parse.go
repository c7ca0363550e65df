package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Lailouezzz/microparser/shell"
)

var parseFlags = struct {
	source *string
	tree   *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse [command line...]",
		Short: "Parse command lines",
		Long: `Parse command lines given as arguments, one per argument. Without
arguments, command lines are read from a source file or stdin, one per line.
Lines are parsed concurrently; the first failing line aborts the batch.`,
		Example: `  mpsh parse 'cat < in > out'
  cat script | mpsh parse --tree`,
		RunE: runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	parseFlags.tree = cmd.Flags().Bool("tree", false, "print commands as trees")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	lines := args
	if len(lines) == 0 {
		var err error
		if lines, err = readSource(*parseFlags.source, cmd.InOrStdin()); err != nil {
			return err
		}
	}
	arena := shell.NewArena(0)
	cmds, err := shell.ParseAll(context.Background(), arena, lines, conf.EngineOptions()...)
	if err != nil {
		return err
	}
	defer func() {
		for _, c := range cmds {
			arena.Free(c)
		}
		tracer().Debugf("%d nodes allocated, %d alive", arena.Allocated(), arena.Live())
	}()
	if *parseFlags.tree {
		for i, c := range cmds {
			pterm.Println(fmt.Sprintf("[%d] %s", i+1, lines[i]))
			printTree(c)
		}
		return nil
	}
	return writeCommands(cmd.OutOrStdout(), cmds)
}

func readSource(path string, stdin io.Reader) ([]string, error) {
	src := stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("cannot open the source file %s: %w", path, err)
		}
		defer f.Close()
		src = f
	}
	var lines []string
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error while reading source: %w", err)
	}
	return lines, nil
}

// writeCommands writes commands in normalized form, one per line.
func writeCommands(w io.Writer, cmds []*shell.Command) error {
	for _, c := range cmds {
		if _, err := fmt.Fprintln(w, c.String()); err != nil {
			return err
		}
	}
	return nil
}

// --- Tree output -----------------------------------------------------------

func printTree(c *shell.Command) {
	root := pterm.NewTreeFromLeveledList(leveledCommand(c))
	pterm.DefaultTree.WithRoot(root).Render()
}

// leveledCommand flattens a command into a leveled list, with the program
// name, arguments and redirections as top level items.
func leveledCommand(c *shell.Command) pterm.LeveledList {
	ll := pterm.LeveledList{
		{Level: 0, Text: "program " + c.Progname},
	}
	if len(c.Args) > 0 {
		ll = append(ll, pterm.LeveledListItem{Level: 0, Text: "arguments"})
		for _, arg := range c.Args {
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: fmt.Sprintf("%q", arg)})
		}
	}
	if len(c.IO) > 0 {
		ll = append(ll, pterm.LeveledListItem{Level: 0, Text: "redirections"})
		for _, redir := range c.IO {
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: redir.String()})
		}
	}
	return ll
}
