package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Lailouezzz/microparser/lr"
	"github.com/Lailouezzz/microparser/shell"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive shell for command lines",
		Long: `Start an interactive shell. Every line entered is parsed as a command
line and displayed as a tree. Lines starting with a colon are meta commands:

  :tokens <line>   display the tokens of a line
  :stats           display the node count of the arena
  :quit            leave the shell

Quit with <ctrl>D.`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	initDisplay()
	pterm.Info.Println("Welcome to mpsh")
	rl, err := readline.New(conf.Prompt)
	if err != nil {
		return err
	}
	defer rl.Close()
	intp, err := newIntp(rl)
	if err != nil {
		return err
	}
	defer intp.parser.Close()
	tracer().Infof("Quit with <ctrl>D")
	intp.REPL()
	return nil
}

// Intp is our interpreter object
type Intp struct {
	repl   *readline.Instance
	parser *shell.Parser
	arena  *shell.Arena
}

func newIntp(rl *readline.Instance) (*Intp, error) {
	arena := shell.NewArena(0)
	p, err := shell.NewParser(arena, conf.EngineOptions()...)
	if err != nil {
		return nil, err
	}
	return &Intp{repl: rl, parser: p, arena: arena}, nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Println("Good bye!")
}

// Eval parses a command line, or executes a meta command, given on a line
// by itself.
func (intp *Intp) Eval(line string) (bool, error) {
	if strings.HasPrefix(line, ":") {
		return intp.meta(line[1:])
	}
	c, err := intp.parser.Parse(line)
	if err != nil {
		if pos, ok := errorPosition(err); ok {
			pterm.Println(line)
			pterm.Println(strings.Repeat(" ", pos) + "^")
		}
		return false, err
	}
	defer intp.arena.Free(c)
	pterm.Info.Println(c.String())
	printTree(c)
	return false, nil
}

func (intp *Intp) meta(line string) (bool, error) {
	name, arg := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		name, arg = line[:i], strings.TrimSpace(line[i:])
	}
	switch name {
	case "quit", "q":
		return true, nil
	case "stats":
		pterm.Info.Println(fmt.Sprintf("%d nodes allocated, %d alive, %d invalid releases",
			intp.arena.Allocated(), intp.arena.Live(), intp.arena.InvalidReleases()))
		return false, nil
	case "tokens":
		toks, err := shell.Tokens(arg)
		if err != nil {
			return false, err
		}
		ll := pterm.LeveledList{}
		for _, tok := range toks {
			ll = append(ll, pterm.LeveledListItem{
				Level: 0,
				Text:  fmt.Sprintf("%-5s %v %v", shell.SymbolName(tok.Symbol), tok.Span, tok.Payload),
			})
		}
		pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
		return false, nil
	}
	return false, fmt.Errorf("unknown command :%s", name)
}

// errorPosition finds the input position of the token an LR error occurred
// at, if any.
func errorPosition(err error) (int, bool) {
	var lrerr *lr.Error
	if !errors.As(err, &lrerr) || lrerr.Token == nil {
		return 0, false
	}
	return int(lrerr.Token.Span.From()), true
}

func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
