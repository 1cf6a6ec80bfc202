package epp

// Lookahead is the lookahead mode of a parser.
type Lookahead int8

// Lookahead modes. Parsers created by this package report NoLookahead,
// unless wrapped by Greedy or Reluctant.
const (
	NoLookahead Lookahead = iota
	GreedyLookahead
	ReluctantLookahead
)

func (l Lookahead) String() string {
	switch l {
	case GreedyLookahead:
		return "greedy"
	case ReluctantLookahead:
		return "reluctant"
	}
	return "none"
}

// Parser is the interface all parsers implement.
//
// Parse receives a State and returns the State after parsing. A parser
// which cannot continue returns a *Failure, a parser which ends parsing
// early but successfully returns an *End. Other errors are passed through
// the combinators unchanged.
//
// Lookahead tells chains if and how they may restrict the input visible to
// the parser during backtracking.
type Parser interface {
	Parse(State) (State, error)
	Lookahead() Lookahead
}

// ParserFunc adapts a function to the Parser interface. ParserFuncs perform
// no lookahead.
type ParserFunc func(State) (State, error)

// Parse calls f(st).
func (f ParserFunc) Parse(st State) (State, error) {
	return f(st)
}

// Lookahead is part of interface Parser.
func (f ParserFunc) Lookahead() Lookahead {
	return NoLookahead
}

var _ Parser = ParserFunc(nil)

// --- Lookahead tagging -----------------------------------------------------

type lookaheadParser struct {
	Parser
	mode Lookahead
}

func (lp lookaheadParser) Lookahead() Lookahead {
	return lp.mode
}

func withLookahead(p Parser, mode Lookahead) Parser {
	if p.Lookahead() == mode {
		return p
	}
	if lp, ok := p.(lookaheadParser); ok {
		p = lp.Parser
	}
	if mode == NoLookahead {
		return p
	}
	return lookaheadParser{Parser: p, mode: mode}
}

// Greedy returns a greedy version of p. Inside a chain, a greedy parser
// initially sees all of the input left. When backtracking, the chain hides
// input from the end of the greedy parser's window, one byte at a time.
func Greedy(p Parser) Parser {
	return withLookahead(p, GreedyLookahead)
}

// Reluctant returns a reluctant version of p. Inside a chain, a reluctant
// parser initially sees no input at all. When backtracking, the chain reveals
// input to it, one byte at a time.
func Reluctant(p Parser) Parser {
	return withLookahead(p, ReluctantLookahead)
}

// LookaheadOf returns the lookahead mode of p. It is NoLookahead for nil.
func LookaheadOf(p Parser) Lookahead {
	if p == nil {
		return NoLookahead
	}
	return p.Lookahead()
}

// CopyLookahead returns a version of 'to' with the lookahead mode of 'from'.
func CopyLookahead(from, to Parser) Parser {
	return withLookahead(to, LookaheadOf(from))
}
