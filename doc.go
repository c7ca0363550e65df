/*
Package microparser is a small LR parsing engine.

It is focussed on running precomputed LR automata. Building parse tables
from a grammar is not part of this module: tables are handed to the engine
as dense matrices, together with callbacks which turn recognized productions
into values of the client's choice. Package structure is as follows:

■ lr: Package lr defines the parser tables, tokens, stack slots and the
error taxonomy shared by all other packages.

■ lr/stack: Package stack implements the parse stack, which owns every
value pushed onto it.

■ lr/engine: Package engine implements the shift-reduce automaton.

■ lr/scanner: Package scanner defines tokenizers producing input for the engine.

■ shell: Package shell is a complete grammar plugin for simple shell commands.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 ale-boud <ale-boud@student.42.fr>

*/
package microparser
