package calc

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/npillmayer/epp"
)

// ErrDivisionByZero is reported by Eval for divisions by zero.
var ErrDivisionByZero = errors.New("calc: division by zero")

// stack is the value effects operate on. Stacks are never modified in place.
type stack struct {
	values []float64
	err    error
}

func (s stack) push(x float64) stack {
	values := make([]float64, len(s.values), len(s.values)+1)
	copy(values, s.values)
	return stack{values: append(values, x), err: s.err}
}

func (s stack) pop() (float64, stack) {
	n := len(s.values)
	return s.values[n-1], stack{values: s.values[:n-1:n-1], err: s.err}
}

func (s stack) top() float64 {
	return s.values[len(s.values)-1]
}

func (s stack) fail(err error) stack {
	if s.err != nil {
		return s
	}
	return stack{values: s.values, err: err}
}

// Calculator evaluates expressions. A Calculator is safe for concurrent use.
type Calculator struct {
	parser epp.Parser
}

// New creates a calculator.
func New() *Calculator {
	var expr epp.Parser
	ws := epp.Whitespace()
	token := func(s string) epp.Parser {
		return epp.Sequence(ws, epp.Literal(s))
	}
	number := epp.Sequence(
		ws,
		epp.Chain([]epp.Parser{
			epp.Digits(),
			epp.Maybe(epp.Sequence(epp.Literal("."), epp.Digits())),
		}),
		epp.Effect(pushNumber),
	)
	group := epp.Sequence(
		token("("),
		epp.Subparse(stack{}, epp.Lazy(func() epp.Parser { return expr }), absorb),
		token(")"),
	)
	var factor epp.Parser
	factor = epp.Lazy(func() epp.Parser {
		return epp.Branch(
			number,
			group,
			epp.Sequence(token("-"), factor, epp.Effect(unary(func(x float64) float64 { return -x }))),
		)
	})
	term := epp.Sequence(factor, epp.Many(epp.Branch(
		epp.Sequence(token("*"), factor, epp.Effect(binary(mul))),
		epp.Sequence(token("/"), factor, epp.Effect(binary(div))),
	)))
	expr = epp.Sequence(term, epp.Many(epp.Branch(
		epp.Sequence(token("+"), term, epp.Effect(binary(add))),
		epp.Sequence(token("-"), term, epp.Effect(binary(sub))),
	)))
	return &Calculator{
		parser: epp.Sequence(expr, ws, epp.EndOfInput()),
	}
}

// Eval evaluates an expression.
func (c *Calculator) Eval(input string) (float64, error) {
	v, _, err := epp.Parse(stack{}, input, c.parser, epp.Verbose(true))
	if err != nil {
		return 0, fmt.Errorf("calc: cannot evaluate %q: %w", input, err)
	}
	s := v.(stack)
	if s.err != nil {
		return 0, s.err
	}
	tracer().Debugf("%s = %g", input, s.top())
	return s.top(), nil
}

var defaultCalculator *Calculator
var createDefault sync.Once

// Eval evaluates an expression with a default calculator.
func Eval(input string) (float64, error) {
	createDefault.Do(func() {
		defaultCalculator = New()
	})
	return defaultCalculator.Eval(input)
}

// --- Effects ---------------------------------------------------------------

func pushNumber(v interface{}, st epp.State) interface{} {
	s := v.(stack)
	x, err := strconv.ParseFloat(st.Parsed(), 64)
	if err != nil {
		return s.fail(err)
	}
	return s.push(x)
}

// absorb pushes the result of a sub-parse onto the outer stack.
func absorb(outer interface{}, _ epp.State, inner interface{}, _ epp.State) interface{} {
	s, sub := outer.(stack), inner.(stack)
	if sub.err != nil {
		s = s.fail(sub.err)
	}
	return s.push(sub.top())
}

func unary(op func(float64) float64) epp.EffectFunc {
	return func(v interface{}, _ epp.State) interface{} {
		x, s := v.(stack).pop()
		return s.push(op(x))
	}
}

func binary(op func(float64, float64) (float64, error)) epp.EffectFunc {
	return func(v interface{}, _ epp.State) interface{} {
		y, s := v.(stack).pop()
		x, s := s.pop()
		z, err := op(x, y)
		if err != nil {
			s = s.fail(err)
		}
		return s.push(z)
	}
}

func add(x, y float64) (float64, error) { return x + y, nil }
func sub(x, y float64) (float64, error) { return x - y, nil }
func mul(x, y float64) (float64, error) { return x * y, nil }

func div(x, y float64) (float64, error) {
	if y == 0 {
		return 0, ErrDivisionByZero
	}
	return x / y, nil
}
