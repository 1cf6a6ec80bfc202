/*
Command epp is a command line tool for experiments with epp parsers.

	epp repl                                  # evaluate calculator expressions
	epp repl --grammar g.ebnf --start Expr    # match lines against a grammar
	epp match --grammar g.ebnf --start Expr "1 + 2"
	epp check --start Expr g.ebnf             # parse and verify a grammar

Flag --trace sets the trace level [Debug|Info|Error] for all commands.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'epp.cli'
func tracer() tracing.Trace {
	return tracing.Select("epp.cli")
}
