/*
Package epp implements effectful parser combinators.

Parsers are values which receive a State and return a new State. A State
provides two windows over an input string: 'left', the portion of input not
yet consumed, and 'parsed', the portion consumed by the most recent parser.
States are immutable; every parser returns a fresh one.

Parsers do not build results directly. Instead, a parser may attach an
Effect to the State it returns. Chains collect effects in order and combine
them into a single effect, which is applied to a seed value once the whole
parse has succeeded:

    digits := epp.Chain([]epp.Parser{
        epp.Digits(),
        epp.Effect(func(v interface{}, st epp.State) interface{} {
            return v.(int) + len(st.Parsed())
        }),
    })
    value, final, err := epp.Parse(0, "123abc", digits)
    // value == 3, final.Left() == "abc"

Control Flow

A parser signals failure by returning a *Failure error. Branches and chains
react to failures by trying alternatives. A parser may end parsing early, but
successfully, by returning an *End error carrying the final State (see Stop).
Any other error is passed through unchanged, unless intercepted by Catch.

Lookahead

Parsers may be tagged as Greedy or Reluctant. Inside a chain, a failure
after a tagged parser causes the chain to backtrack: it restricts the input
window visible to the tagged parser, one byte at a time, and re-runs the
rest of the chain, similar to the way a regular expression engine handles
greedy and reluctant quantifiers:

    p := epp.Chain([]epp.Parser{epp.Greedy(epp.Digits()), epp.Literal("9")})
    _, final, _ := epp.Parse(nil, "9999", p)
    // final.Left() == ""

The unit of input is a byte. Parsers dealing with UTF-8 have to cope with
windows ending inside a multi-byte sequence during backtracking.

Tracing and Configuration

Package epp traces to key 'epp'. Backtracking is traced with level Debug.
If configuration key 'epp.audit-restrictions' is set, chains check that no
restriction configuration is tried twice during backtracking.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package epp

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'epp'.
func tracer() tracing.Trace {
	return tracing.Select("epp")
}
