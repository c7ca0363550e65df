/*
Command mpsh is a command line tool for shell command lines parsed by the
table-driven LR engine of microparser. It parses command lines given as
arguments or read from a file, offers an interactive shell (mpsh repl)
displaying the command trees, and exports the parser tables of the
command grammar as HTML or Graphviz Dot.

	mpsh parse 'cat < in > out' 'ls -l'
	mpsh repl --trace Debug
	mpsh tables --dot grammar.dot

Configuration is read from a YAML file (flag --config), with command line
flags taking precedence:

	trace: Info
	trace-destination: file://mpsh.log
	prompt: "mpsh> "
	max-depth: 64
	panic-on-internal-error: false


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 ale-boud <ale-boud@student.42.fr>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'microparser.shell'
func tracer() tracing.Trace {
	return tracing.Select("microparser.shell")
}
