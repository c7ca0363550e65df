package lr

import (
	"fmt"
	"io"
	"strings"

	"github.com/Lailouezzz/microparser"
)

// ActionTableAsHTML exports the ACTION table in HTML-format.
func ActionTableAsHTML(t *Tables, w io.Writer) error {
	if t.Actions == nil {
		tracer().Errorf("ACTION table missing, cannot export to HTML")
		return Errorf(InternalError, "ACTION table missing")
	}
	header := make([]string, t.Actions.N())
	for j := range header {
		header[j] = t.SymbolName(microparser.TokType(j))
	}
	return parserTableAsHTML("ACTION", header, t.Actions.M(), func(i, j int) string {
		a, _ := t.Actions.Value(StateID(i), microparser.TokType(j))
		if a.IsError() {
			return ""
		}
		return a.String()
	}, w)
}

// GotoTableAsHTML exports the GOTO table in HTML-format.
func GotoTableAsHTML(t *Tables, w io.Writer) error {
	if t.Gotos == nil {
		tracer().Errorf("GOTO table missing, cannot export to HTML")
		return Errorf(InternalError, "GOTO table missing")
	}
	header := make([]string, t.Gotos.N())
	for j := range header {
		header[j] = fmt.Sprintf("P%d", j)
		if j < len(t.Productions) && t.Productions[j].Name != "" {
			header[j] = t.Productions[j].Name
		}
	}
	return parserTableAsHTML("GOTO", header, t.Gotos.M(), func(i, j int) string {
		g, _ := t.Gotos.Value(StateID(i), ProdID(j))
		if g == NoState {
			return ""
		}
		return fmt.Sprintf("%d", g)
	}, w)
}

func parserTableAsHTML(tname string, header []string, rows int, cell func(i, j int) string, w io.Writer) error {
	var b strings.Builder
	b.WriteString("<html><body>\n")
	fmt.Fprintf(&b, "%s table of size = %d x %d<p>", tname, rows, len(header))
	b.WriteString("<table border=1 cellspacing=0 cellpadding=5>\n")
	b.WriteString("<tr bgcolor=#cccccc><td></td>\n")
	for _, h := range header {
		fmt.Fprintf(&b, "<td>%s</td>", htmlEscape(h))
	}
	b.WriteString("</tr>\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "<tr><td>state %d</td>\n", i)
		for j := range header {
			td := cell(i, j)
			if td == "" {
				td = "&nbsp;"
			}
			b.WriteString("<td>")
			b.WriteString(td)
			b.WriteString("</td>\n")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table></body></html>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

var htmlReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func htmlEscape(s string) string {
	return htmlReplacer.Replace(s)
}

// AutomatonAsDot exports the automaton described by the tables to the Graphviz
// Dot format. Shift transitions are drawn solid and labelled with the terminal,
// GOTO transitions are drawn dashed and labelled with the production.
func AutomatonAsDot(t *Tables, w io.Writer) error {
	if t.Actions == nil || t.Gotos == nil {
		return Errorf(InternalError, "tables %q incomplete: ACTION or GOTO table missing", t.Name)
	}
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for s := 0; s < t.Actions.M(); s++ {
		fmt.Fprintf(&b, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s, nodecolor(t, StateID(s)), s, reductionsForGraphviz(t, StateID(s)))
	}
	for s := 0; s < t.Actions.M(); s++ {
		for sym := 0; sym < t.Actions.N(); sym++ {
			a, _ := t.Actions.Value(StateID(s), microparser.TokType(sym))
			if a.Type == ShiftAction {
				fmt.Fprintf(&b, "s%03d -> s%03d [label=\"%s\"]\n", s, a.Target,
					dotEscape(t.SymbolName(microparser.TokType(sym))))
			}
		}
		for p := 0; p < t.Gotos.N(); p++ {
			if g, _ := t.Gotos.Value(StateID(s), ProdID(p)); g != NoState {
				fmt.Fprintf(&b, "s%03d -> s%03d [style=dashed label=\"P%d\"]\n", s, g, p)
			}
		}
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodecolor(t *Tables, state StateID) string {
	for sym := 0; sym < t.Actions.N(); sym++ {
		if a, _ := t.Actions.Value(state, microparser.TokType(sym)); a.Type == AcceptAction {
			return "lightgray"
		}
	}
	return "white"
}

// reductionsForGraphviz lists the productions reduced in a state, one per line.
func reductionsForGraphviz(t *Tables, state StateID) string {
	var seen []int
	for sym := 0; sym < t.Actions.N(); sym++ {
		a, _ := t.Actions.Value(state, microparser.TokType(sym))
		if a.Type != ReduceAction || containsInt(seen, a.Target) {
			continue
		}
		seen = append(seen, a.Target)
	}
	lines := make([]string, 0, len(seen))
	for _, p := range seen {
		name := fmt.Sprintf("P%d", p)
		if p < len(t.Productions) && t.Productions[p].Name != "" {
			name = fmt.Sprintf("P%d: %s", p, t.Productions[p].Name)
		}
		lines = append(lines, dotEscape(name))
	}
	if len(lines) == 0 {
		return "-"
	}
	return strings.Join(lines, "\\l") + "\\l"
}

func containsInt(x []int, n int) bool {
	for _, y := range x {
		if y == n {
			return true
		}
	}
	return false
}

var dotReplacer = strings.NewReplacer(`"`, `\"`, "{", `\{`, "}", `\}`, "|", `\|`, "<", `\<`, ">", `\>`)

func dotEscape(s string) string {
	return dotReplacer.Replace(s)
}
