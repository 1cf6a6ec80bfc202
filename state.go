package epp

import "fmt"

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a window of input. A span denotes a
// start position and the position just behind the end, both byte offsets
// into the input.
type Span [2]int // (x…y)

// From returns the start value of a span.
func (s Span) From() int {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() int {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() int {
	return s[1] - s[0]
}

// IsNull is true for the zero span.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering both s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// --- Effects ----------------------------------------------------------

// EffectFunc is a transformation registered by a parser. If the parse succeeds,
// effects are called in sequence, each receiving the value produced by its
// predecessor (or the seed value) and the State which has been current when
// the effect was registered. The return value is handed to the next effect.
type EffectFunc func(value interface{}, st State) interface{}

// --- States -----------------------------------------------------------

// State represents the current state of a parser chain or of an individual
// parser. States are immutable.
//
// A State provides two views over the input string: 'left', the input not
// yet consumed, and 'parsed', the input consumed by the last parser. Windows
// may overlap. Usually the end of 'parsed' is the start of 'left', but not
// always.
type State struct {
	input       string
	effect      EffectFunc
	leftStart   int
	leftEnd     int
	parsedStart int
	parsedEnd   int
}

// StateOption configures a new State.
type StateOption func(*State)

// WithWindow restricts the 'left' window of a new State to input[start:end].
func WithWindow(start, end int) StateOption {
	return func(st *State) {
		st.leftStart, st.leftEnd = start, end
	}
}

// WithInitialEffect sets the effect of a new State.
func WithInitialEffect(e EffectFunc) StateOption {
	return func(st *State) {
		st.effect = e
	}
}

// NewState creates a State over input. Without options, 'left' spans the
// whole input. 'parsed' is empty and located at the start of 'left'.
//
// NewState panics if a window option is out of the bounds of the input.
func NewState(input string, opts ...StateOption) State {
	st := State{input: input, leftEnd: len(input)}
	for _, opt := range opts {
		opt(&st)
	}
	if st.leftStart < 0 || st.leftStart > st.leftEnd || st.leftEnd > len(input) {
		panic(fmt.Errorf("epp: invalid window %s for input of length %d",
			Span{st.leftStart, st.leftEnd}, len(input)))
	}
	st.parsedStart, st.parsedEnd = st.leftStart, st.leftStart
	return st
}

// Input returns the complete input string.
func (st State) Input() string {
	return st.input
}

// Effect returns the effect attached to st, or nil.
func (st State) Effect() EffectFunc {
	return st.effect
}

// WithEffect returns a copy of st with effect e attached. An effect already
// attached to st is replaced.
func (st State) WithEffect(e EffectFunc) State {
	st.effect = e
	return st
}

// Left returns the portion of input not consumed by the last parser.
func (st State) Left() string {
	return st.input[st.leftStart:st.leftEnd]
}

// LeftLen returns the length of Left without slicing the input.
func (st State) LeftLen() int {
	return st.leftEnd - st.leftStart
}

// LeftSpan returns the bounds of the 'left' window.
func (st State) LeftSpan() Span {
	return Span{st.leftStart, st.leftEnd}
}

// Parsed returns the portion of input consumed by the last parser.
func (st State) Parsed() string {
	return st.input[st.parsedStart:st.parsedEnd]
}

// ParsedLen returns the length of Parsed without slicing the input.
func (st State) ParsedLen() int {
	return st.parsedEnd - st.parsedStart
}

// ParsedSpan returns the bounds of the 'parsed' window.
func (st State) ParsedSpan() Span {
	return Span{st.parsedStart, st.parsedEnd}
}

// Consume moves n bytes from the 'left' window into the 'parsed' window.
// The returned State carries no effect.
//
// Consume panics if n is negative or exceeds the length of 'left'. This is a
// programming error, not a parse failure.
func (st State) Consume(n int) State {
	if n < 0 {
		panic(fmt.Errorf("epp: negative number of consumed bytes: %d", n))
	}
	if n > st.LeftLen() {
		panic(fmt.Errorf("epp: consumed %d bytes, but only %d left", n, st.LeftLen()))
	}
	next := st.plain()
	next.parsedStart = st.leftStart
	next.parsedEnd = st.leftStart + n
	next.leftStart = st.leftStart + n
	return next
}

// Split splits st in two at offset 'at', relative to the start of 'left'.
// The first State keeps the input up to, but not including, 'at' as its
// 'left' window, the second one gets the rest. Both have their 'parsed'
// windows collapsed to the start of their 'left' windows. The first State
// keeps the effect of st, the second one has none.
//
// Split panics if 'at' is not within [0, LeftLen()].
func (st State) Split(at int) (State, State) {
	if at < 0 || at > st.LeftLen() {
		panic(fmt.Errorf("epp: split point %d out of range %s", at, st.LeftSpan()))
	}
	point := st.leftStart + at
	first := st
	first.leftEnd = point
	first.parsedStart, first.parsedEnd = st.leftStart, st.leftStart
	second := st.plain()
	second.leftStart = point
	second.parsedStart, second.parsedEnd = point, point
	return first, second
}

func (st State) String() string {
	return fmt.Sprintf("<state left=%s parsed=%s>", st.LeftSpan(), st.ParsedSpan())
}

// plain returns a copy of st without an effect. Most parsers derive their
// output from plain copies, because the input's effect has already been
// registered by the chain which called them.
func (st State) plain() State {
	st.effect = nil
	return st
}

// collapse returns a copy of st with an empty 'parsed' window at the start
// of 'left'.
func (st State) collapse() State {
	st.parsedStart, st.parsedEnd = st.leftStart, st.leftStart
	return st
}

// preview returns up to n bytes of 'left', for error messages.
func (st State) preview(n int) string {
	if st.LeftLen() <= n {
		return st.Left()
	}
	return st.input[st.leftStart:st.leftStart+n] + "…"
}
