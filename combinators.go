package epp

import (
	"errors"
	"reflect"
	"runtime"
	"sync"
)

// Fail returns a parser that always fails.
func Fail() Parser {
	return ParserFunc(func(st State) (State, error) {
		return State{}, Failf("'fail' parser has been reached")
	})
}

// Identity returns a parser which passes its State on unchanged.
func Identity() Parser {
	return ParserFunc(func(st State) (State, error) {
		return st.plain(), nil
	})
}

// Predicate is a function type for testing States.
type Predicate func(State) bool

// Test returns a parser that succeeds without consuming input if pred
// holds for its State, and fails otherwise. The 'parsed' window is truncated.
func Test(pred Predicate) Parser {
	return ParserFunc(func(st State) (State, error) {
		if pred(st) {
			return st.plain().collapse(), nil
		}
		return State{}, Failf("predicate %s returned false on '%s'", funcName(pred), st.preview(20))
	})
}

// NoConsume returns a version of p that doesn't consume input. Effect and
// 'parsed' window of p are preserved.
func NoConsume(p Parser) Parser {
	return ParserFunc(func(st State) (State, error) {
		after, err := p.Parse(st)
		if err != nil {
			return State{}, err
		}
		after.leftStart = st.leftStart
		return after, nil
	})
}

// Stop returns a parser that ends parsing immediately, but successfully.
// If discard is true, the 'parsed' window is truncated, otherwise it is
// inherited from the previous parser.
func Stop(discard bool) Parser {
	return ParserFunc(func(st State) (State, error) {
		if discard {
			st = st.collapse()
		}
		return State{}, &End{State: st.plain()}
	})
}

// Lazy defers the creation of a parser until it is needed for parsing.
// factory is called at most once, on the first invocation of the returned
// parser. Lazy is the way to define recursive parsers:
//
//     var expr epp.Parser
//     expr = epp.Lazy(func() epp.Parser {
//         return epp.Branch(number, epp.Sequence(open, expr, close))
//     })
//
func Lazy(factory func() Parser) Parser {
	var once sync.Once
	var p Parser
	return ParserFunc(func(st State) (State, error) {
		once.Do(func() {
			p = factory()
		})
		return p.Parse(st)
	})
}

// Branch returns a parser which tries the given parsers in order and returns
// the State of the first successful one. An *End signal from a branch ends
// the search and is propagated, as are errors other than *Failure.
// Branch fails if all the parsers fail.
func Branch(parsers ...Parser) Parser {
	return ParserFunc(func(st State) (State, error) {
		for _, p := range parsers {
			after, err := p.Parse(st)
			if err == nil {
				return after, nil
			}
			if !IsFailure(err) {
				return State{}, err
			}
		}
		return State{}, Failf("all %d parsers in a branching point have failed", len(parsers))
	})
}

// Effect returns a parser which registers an effect. It passes its State
// on unchanged, except for attaching fn. The State fn will receive is the
// State of the chain at the moment of registration, i.e., its 'parsed' window
// is the input consumed by the previous parser.
func Effect(fn EffectFunc) Parser {
	return ParserFunc(func(st State) (State, error) {
		return st.WithEffect(fn), nil
	})
}

// Catch returns a parser that runs p and intercepts errors matching one of
// kinds (as reported by errors.Is). *Failure and *End signals are never
// intercepted.
//
// If an error has been caught and onCaught is non-nil, onCaught is called
// with the State before p and the error, and its return value replaces the
// result of p. If onCaught is nil, the State before p (without its effect) is
// returned.
//
// If p succeeds and onNotCaught is non-nil, onNotCaught is called with p's
// result and its return value replaces it.
//
// Errors not matching any of the kinds are propagated.
func Catch(p Parser, kinds []error, onCaught func(State, error) State, onNotCaught func(State) State) Parser {
	return ParserFunc(func(st State) (State, error) {
		after, err := p.Parse(st)
		if err == nil {
			if onNotCaught != nil {
				return onNotCaught(after), nil
			}
			return after, nil
		}
		if isSignal(err) || !matchesAny(err, kinds) {
			return State{}, err
		}
		tracer().Debugf("catch: intercepted error %v", err)
		if onCaught != nil {
			return onCaught(st, err), nil
		}
		return st.plain(), nil
	})
}

func matchesAny(err error, kinds []error) bool {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// Absorber is a function type to integrate the result of a sub-parse into the
// value of an outer parse. See Subparse.
type Absorber func(outer interface{}, outerState State, inner interface{}, innerState State) interface{}

// Subparse returns a parser which runs p as a separate parse (see ParseState)
// on the current State, starting with value seed. On success, Subparse adopts
// the final State of p and attaches an effect which calls absorber to
// incorporate the value of the sub-parse into the value of the outer chain.
//
// If p fails, so does Subparse.
func Subparse(seed interface{}, p Parser, absorber Absorber) Parser {
	return ParserFunc(func(st State) (State, error) {
		value, after, err := ParseState(seed, st, p)
		if err != nil {
			if errors.Is(err, ErrNoParse) {
				return State{}, Failf("sub-parsing failed at %s", st.LeftSpan())
			}
			return State{}, err
		}
		inner := after
		return after.WithEffect(func(v interface{}, _ State) interface{} {
			return absorber(v, st, value, inner)
		}), nil
	})
}

// funcName returns the name of a predicate function, for error messages.
func funcName(fn interface{}) string {
	if f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()); f != nil {
		return f.Name()
	}
	return "<func>"
}
