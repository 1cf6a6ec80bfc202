/*
Package calc implements a small calculator language on top of epp.

Expressions consist of decimal numbers, the operators + - * /, unary minus
and parentheses, separated by optional white space:

	v, err := calc.Eval("-(1 + 2) * 3.5")   // v == -10.5

Package calc serves as an example of how to use effects: parsers do not
compute anything themselves, they register effects operating on an
immutable stack of values. Parenthesized groups are evaluated by a
separate sub-parse (see epp.Subparse), whose result is pushed onto the
stack of the enclosing expression.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package calc

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'epp.calc'.
func tracer() tracing.Trace {
	return tracing.Select("epp.calc")
}
