package epp

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Literal returns a parser which consumes s.
func Literal(s string) Parser {
	return ParserFunc(func(st State) (State, error) {
		if !strings.HasPrefix(st.Left(), s) {
			return State{}, Failf("expected %q, found '%s'", s, st.preview(len(s)+10))
		}
		return st.Consume(len(s)), nil
	})
}

// Take returns a parser which consumes exactly n bytes.
func Take(n int) Parser {
	return ParserFunc(func(st State) (State, error) {
		if n < 0 || n > st.LeftLen() {
			return State{}, Failf("cannot consume %d bytes, %d left", n, st.LeftLen())
		}
		return st.Consume(n), nil
	})
}

// While returns a parser which consumes runes as long as pred holds.
// It fails if fewer than min runes match. A rune cut off by the end of the
// 'left' window ends the match.
func While(pred func(rune) bool, min int) Parser {
	return ParserFunc(func(st State) (State, error) {
		left := st.Left()
		n, count := 0, 0
		for n < len(left) {
			r, size := utf8.DecodeRuneInString(left[n:])
			if r == utf8.RuneError && size <= 1 || !pred(r) {
				break
			}
			n += size
			count++
		}
		if count < min {
			return State{}, Failf("expected at least %d matching runes, found %d in '%s'",
				min, count, st.preview(20))
		}
		return st.Consume(n), nil
	})
}

// OneOf returns a parser which consumes a single rune contained in set.
func OneOf(set string) Parser {
	return ParserFunc(func(st State) (State, error) {
		r, size := utf8.DecodeRuneInString(st.Left())
		if size == 0 || r == utf8.RuneError && size == 1 || !strings.ContainsRune(set, r) {
			return State{}, Failf("expected one of %q, found '%s'", set, st.preview(1))
		}
		return st.Consume(size), nil
	})
}

// Digits returns a parser which consumes one or more decimal digits.
func Digits() Parser {
	return While(func(r rune) bool { return r >= '0' && r <= '9' }, 1)
}

// Whitespace returns a parser which consumes white space, if any.
func Whitespace() Parser {
	return While(unicode.IsSpace, 0)
}

// EndOfInput returns a parser which succeeds at the end of the 'left' window.
func EndOfInput() Parser {
	return Test(atEnd)
}

func atEnd(st State) bool {
	return st.LeftLen() == 0
}

// Maybe returns a parser which tries p and succeeds without consuming input
// if p fails.
func Maybe(p Parser) Parser {
	return Branch(p, Identity())
}

// Many returns a parser which applies p as often as possible, including zero
// times.
func Many(p Parser) Parser {
	return Repeat(p, 0, -1)
}

// Many1 returns a parser which applies p as often as possible, at least once.
func Many1(p Parser) Parser {
	return Repeat(p, 1, -1)
}

// Repeat returns a parser which applies p repeatedly, at least min times and
// at most max times. A negative max means no upper limit. Repetition stops
// after an iteration which did not consume any input.
//
// The 'parsed' window covers all the iterations, effects of all iterations
// are combined, as with Chain.
func Repeat(p Parser, min, max int) Parser {
	return ParserFunc(func(st State) (State, error) {
		state := st.plain().collapse()
		var points []effectPoint
		count := 0
		for max < 0 || count < max {
			after, err := p.Parse(state)
			if err != nil {
				if IsFailure(err) {
					break
				}
				return State{}, err
			}
			count++
			if after.effect != nil {
				points = append(points, effectPoint{state: after, pos: noPosition})
			}
			progress := after.leftStart != state.leftStart
			state = after
			if !progress {
				break
			}
		}
		if count < min {
			return State{}, Failf("expected at least %d repetitions, found %d", min, count)
		}
		state.parsedStart = st.leftStart
		if state.parsedEnd < state.parsedStart {
			state.parsedEnd = state.parsedStart
		}
		state.effect = chainEffects(points)
		return state, nil
	})
}
