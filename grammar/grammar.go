package grammar

import (
	"fmt"
	"io"
	"os"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/epp"
	"golang.org/x/exp/ebnf"
)

// Load reads an EBNF grammar from a file.
func Load(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()
	return Read(filename, f)
}

// Read parses an EBNF grammar from r. name is used for error positions.
func Read(name string, r io.Reader) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// Option configures the compilation of a grammar.
type Option func(*compiler)

// Action attaches an effect to production name. The effect receives the State
// after the production, i.e., its 'parsed' window covers the production's input.
func Action(name string, fn epp.EffectFunc) Option {
	return func(c *compiler) {
		c.actions[name] = fn
	}
}

// GreedyProduction tags productions to perform greedy lookahead.
func GreedyProduction(names ...string) Option {
	return func(c *compiler) {
		for _, name := range names {
			c.modes[name] = epp.GreedyLookahead
		}
	}
}

// ReluctantProduction tags productions to perform reluctant lookahead.
func ReluctantProduction(names ...string) Option {
	return func(c *compiler) {
		for _, name := range names {
			c.modes[name] = epp.ReluctantLookahead
		}
	}
}

// SkipWith sets a parser for input to ignore in front of the tokens of
// non-lexical productions and at the end of input.
func SkipWith(p epp.Parser) Option {
	return func(c *compiler) {
		c.skip = p
	}
}

type compiler struct {
	grammar ebnf.Grammar
	parsers map[string]epp.Parser // complete before any parser runs
	actions map[string]epp.EffectFunc
	modes   map[string]epp.Lookahead
	skip    epp.Parser
}

// Compile verifies grammar g for start production start and creates a parser
// for it.
func Compile(g ebnf.Grammar, start string, opts ...Option) (epp.Parser, error) {
	if err := ebnf.Verify(g, start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	c := &compiler{
		grammar: g,
		parsers: make(map[string]epp.Parser, len(g)),
		actions: make(map[string]epp.EffectFunc),
		modes:   make(map[string]epp.Lookahead),
	}
	for _, opt := range opts {
		opt(c)
	}
	for name, prod := range g {
		p, err := c.expression(prod.Expr, isLexical(name))
		if err != nil {
			return nil, fmt.Errorf("production %s: %w", name, err)
		}
		if fn, ok := c.actions[name]; ok {
			p = epp.Sequence(p, epp.Effect(fn))
		}
		c.parsers[name] = p
		tracer().Debugf("compiled production %s", name)
	}
	p := c.reference(start)
	if c.skip != nil {
		p = epp.Sequence(p, c.skip)
	}
	return p, nil
}

// reference creates a parser calling production name. References are lazy,
// as productions may be recursive.
func (c *compiler) reference(name string) epp.Parser {
	ref := epp.Lazy(func() epp.Parser {
		return c.parsers[name]
	})
	switch c.modes[name] {
	case epp.GreedyLookahead:
		return epp.Greedy(ref)
	case epp.ReluctantLookahead:
		return epp.Reluctant(ref)
	}
	return ref
}

func (c *compiler) expression(expr ebnf.Expression, lexical bool) (epp.Parser, error) {
	switch x := expr.(type) {
	case nil:
		return epp.Identity(), nil
	case *ebnf.Name:
		ref := c.reference(x.String)
		if !lexical && isLexical(x.String) {
			return c.skipped(ref), nil
		}
		return ref, nil
	case *ebnf.Token:
		lit := epp.Literal(x.String)
		if !lexical {
			return c.skipped(lit), nil
		}
		return lit, nil
	case *ebnf.Range:
		lo, _ := utf8.DecodeRuneInString(x.Begin.String)
		hi, _ := utf8.DecodeRuneInString(x.End.String)
		return runeRange(lo, hi), nil
	case ebnf.Alternative:
		ps, err := c.expressions(x, lexical)
		if err != nil {
			return nil, err
		}
		return epp.Branch(ps...), nil
	case ebnf.Sequence:
		ps, err := c.expressions(x, lexical)
		if err != nil {
			return nil, err
		}
		return epp.Chain(ps), nil
	case *ebnf.Group:
		return c.expression(x.Body, lexical)
	case *ebnf.Option:
		body, err := c.expression(x.Body, lexical)
		if err != nil {
			return nil, err
		}
		return epp.Maybe(body), nil
	case *ebnf.Repetition:
		body, err := c.expression(x.Body, lexical)
		if err != nil {
			return nil, err
		}
		return epp.Many(body), nil
	}
	return nil, fmt.Errorf("unsupported expression at %v", expr.Pos())
}

func (c *compiler) expressions(exprs []ebnf.Expression, lexical bool) ([]epp.Parser, error) {
	ps := make([]epp.Parser, len(exprs))
	for i, x := range exprs {
		p, err := c.expression(x, lexical)
		if err != nil {
			return nil, err
		}
		ps[i] = p
	}
	return ps, nil
}

// skipped prepends the skip parser to p, keeping the lookahead mode of p.
func (c *compiler) skipped(p epp.Parser) epp.Parser {
	if c.skip == nil {
		return p
	}
	return epp.CopyLookahead(p, epp.Sequence(c.skip, p))
}

func runeRange(lo, hi rune) epp.Parser {
	return epp.ParserFunc(func(st epp.State) (epp.State, error) {
		r, size := utf8.DecodeRuneInString(st.Left())
		if size == 0 || r == utf8.RuneError && size == 1 || r < lo || r > hi {
			return epp.State{}, epp.Failf("expected %q … %q at %d", lo, hi, st.LeftSpan().From())
		}
		return st.Consume(size), nil
	})
}

// Match runs p on input and reports whether it consumes all of it. The
// final State of a successful parse is returned even for a partial match.
// A failing parse is not an error.
func Match(p epp.Parser, input string) (bool, epp.State, error) {
	_, st, err := epp.Parse(nil, input, p)
	if err == epp.ErrNoParse {
		return false, epp.State{}, nil
	}
	if err != nil {
		return false, epp.State{}, err
	}
	return st.LeftLen() == 0, st, nil
}

func isLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}
