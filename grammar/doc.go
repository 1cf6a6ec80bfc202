/*
Package grammar compiles EBNF grammars into epp parsers.

Grammars are written in the EBNF dialect of package golang.org/x/exp/ebnf,
the one used for the Go language specification:

	Expr   = Term { ( "+" | "-" ) Term } .
	Term   = Factor { ( "*" | "/" ) Factor } .
	Factor = number | "(" Expr ")" .
	number = digit { digit } .
	digit  = "0" … "9" .

Compile maps every production to a combinator. Alternatives are ordered,
i.e., the first matching alternative wins, and repetitions consume as many
iterations as possible. Productions may be tagged to perform lookahead
(see GreedyProduction and ReluctantProduction), which lets chains backtrack
into them.

Productions with a lower-case name are lexical. Option SkipWith installs a
parser for input to ignore (usually white space) in front of the tokens of
non-lexical productions.

	g, err := grammar.Read("expr", strings.NewReader(src))
	p, err := grammar.Compile(g, "Expr", grammar.SkipWith(epp.Whitespace()))
	ok, state, err := grammar.Match(p, "1 + 2*(3-4)")

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'epp.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("epp.grammar")
}
