/*
Package lexmach provides an adapter to use the lexmachine scanner generator with
the parser combinators of epp.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Lexmachine has to be initialized by providing keywords and regular expressions.
Please refer to the lexmachine documentation on how to instruct lexmachine.
Package lexmach is very opinionated on how to do the setup of lexmachine.

	var literals []string       // The tokens representing literal strings
	var keywords []string       // The keyword tokens
	var tokenIds map[string]int // A map from the token names to their int IDs

	init := func(lexer *lexmachine.Lexer) {
		// initialize lexmachine with all the necessary regular expressions
		//
		// lexmach.Skip      is a pre-defined action which ignores the scanned match
		// lexmach.MakeToken is a pre-defined action which wraps a scanned match into a
		//                   lexmachine.Token
	}

Having that, clients use `NewLMAdapter` to compile the DFA.
NewLMAdapter will return an error if compiling the DFA failed.

	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		// do error handling
	}

The adapter hands out parsers. Each of them scans a single token at the start of
the 'left' window of its State, ignoring skipped input in front of it:

	assign := epp.Sequence(LM.Token(ID), LM.Token(tokenIds["="]), LM.Token(NUM), LM.End())

Token parsers see the 'left' window only, therefore they work with
restrictions (see epp.Greedy) as well.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
