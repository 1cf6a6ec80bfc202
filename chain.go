package epp

import (
	"github.com/npillmayer/epp/appender"
)

// ChainOption configures a chain.
type ChainOption func(*chainConfig)

type chainConfig struct {
	combine       bool
	stopOnFailure bool
	allOrNothing  bool
}

// Combine sets or clears option Combine (default true). With Combine, the
// 'parsed' window of a chain covers the input between the start of the
// first parser and the end of the last one. Note that this may differ from
// the concatenation of the individual 'parsed' windows, e.g., if some of the
// parsers do not consume input (see NoConsume).
// Without Combine, the 'parsed' window of the last parser is passed on.
func Combine(b bool) ChainOption {
	return func(c *chainConfig) {
		c.combine = b
	}
}

// StopOnFailure sets or clears option StopOnFailure (default false). With
// StopOnFailure, a failing parser ends the chain successfully instead of
// failing it, returning the State of the last successful parser.
// This disables lookahead for the chain.
func StopOnFailure(b bool) ChainOption {
	return func(c *chainConfig) {
		c.stopOnFailure = b
	}
}

// AllOrNothing sets or clears option AllOrNothing (default true). With
// AllOrNothing, a chain ending early (see Stop) passes on its starting State,
// dropping all effects and consumed input. Without AllOrNothing, the results
// up to the end are kept. AllOrNothing is suppressed by StopOnFailure.
func AllOrNothing(b bool) ChainOption {
	return func(c *chainConfig) {
		c.allOrNothing = b
	}
}

type chain struct {
	parsers []Parser
	conf    chainConfig
}

// Chain creates a parser which runs the given parsers in sequence, each one
// receiving the State of its predecessor. The effects registered by the
// parsers are combined into a single effect, attached to the resulting State.
//
// If a parser in the chain fails and a parser to its left has a lookahead
// mode (see Greedy and Reluctant), the chain backtracks: it restricts the
// input window of the nearest lookahead parser by one byte and re-runs the
// chain from there. Every combination of restrictions is tried at most once
// before the chain gives up.
func Chain(parsers []Parser, opts ...ChainOption) Parser {
	c := &chain{
		parsers: make([]Parser, len(parsers)),
		conf:    chainConfig{combine: true, allOrNothing: true},
	}
	copy(c.parsers, parsers)
	for _, opt := range opts {
		opt(&c.conf)
	}
	return c
}

// Sequence is a shortcut for Chain with default options.
func Sequence(parsers ...Parser) Parser {
	return Chain(parsers)
}

// Lookahead is part of interface Parser. Chains perform no lookahead.
func (c *chain) Lookahead() Lookahead {
	return NoLookahead
}

// Parse is part of interface Parser. Every call starts a fresh chain run;
// chains are safe for concurrent and recursive use.
func (c *chain) Parse(st State) (State, error) {
	r := &chainRun{
		chain:   c,
		first:   st,
		effects: appender.New[effectPoint](),
	}
	return r.parse()
}

// --- Chain runs ------------------------------------------------------------

const noPosition = -1

// effectPoint is an entry in the ledger of effects. pos is the position of the
// registering parser in the lookahead chain, or noPosition if the parser ran
// before lookahead started.
type effectPoint struct {
	state State
	pos   int
}

type chainRun struct {
	*chain
	first     State
	effects   *appender.Appender[effectPoint]
	lookahead *appender.Appender[*restricted] // nil until a lookahead parser shows up
	next      int                             // next parser to run forward
	audit     *restrictionAudit
}

func (r *chainRun) parse() (State, error) {
	state, err := r.forward(r.first)
	if IsFailure(err) && !r.conf.stopOnFailure && r.lookahead != nil {
		state, err = r.backtrack()
	}
	if err == nil {
		return r.output(state), nil
	}
	if end, ok := asEnd(err); ok {
		return State{}, r.ended(end)
	}
	if IsFailure(err) && r.conf.stopOnFailure {
		tracer().Debugf("chain: stopping on failure at %s", state.LeftSpan())
		return r.output(state), nil
	}
	return State{}, err
}

// forward runs the parsers not yet run, starting with state. It returns the
// State of the last successful parser.
func (r *chainRun) forward(state State) (State, error) {
	for r.next < len(r.parsers) {
		p := r.parsers[r.next]
		r.next++
		after, err := r.parseOne(state, p)
		if err != nil {
			return state, err
		}
		state = after
	}
	return state, nil
}

func (r *chainRun) parseOne(state State, p Parser) (State, error) {
	pos := noPosition
	if r.lookahead == nil && p.Lookahead() != NoLookahead {
		r.lookahead = appender.New[*restricted]()
	}
	var after State
	var err error
	if r.lookahead != nil {
		rp := restrict(p, state)
		pos = r.lookahead.Len()
		r.lookahead.Append(rp)
		after, err = rp.parse(state)
	} else {
		after, err = p.Parse(state)
	}
	if err != nil {
		return State{}, err
	}
	if after.effect != nil {
		r.effects.Append(effectPoint{state: after, pos: pos})
	}
	return after, nil
}

// backtrack searches for a combination of restrictions on lookahead parsers
// which lets the chain succeed. It is called after the last parser of the
// lookahead chain has failed.
func (r *chainRun) backtrack() (State, error) {
	if r.audit == nil && auditEnabled() {
		r.audit = newRestrictionAudit()
	}
	from := r.lookahead.Len() - 1
	for {
		pos := r.shift(from)
		if pos < 0 {
			return State{}, Failf("no combination of inputs allows successful parsing")
		}
		r.resetRightOf(pos)
		if r.audit != nil {
			if err := r.audit.check(r.deltas()); err != nil {
				return State{}, err
			}
		}
		state, failed, err := r.retry(pos)
		if err != nil {
			return state, err
		}
		if failed != noPosition {
			from = failed
			continue
		}
		state, err = r.forward(state)
		if err == nil || !IsFailure(err) {
			return state, err
		}
		from = r.lookahead.Len() - 1
	}
}

// shift restricts the parser at position from. If it is overrestricted, shift
// moves on to the left, restricting the next parser. It returns the position
// of the parser which may be re-run, or -1 if all combinations of restrictions
// have been tried.
func (r *chainRun) shift(from int) int {
	for ; from >= 0; from-- {
		rp := r.lookahead.At(from)
		rp.restrictMore()
		if !rp.overrestricted() {
			tracer().Debugf("chain: restricting %s parser #%d by %d", rp.mode, from, rp.delta)
			return from
		}
	}
	return -1
}

func (r *chainRun) resetRightOf(pos int) {
	for i := pos + 1; i < r.lookahead.Len(); i++ {
		r.lookahead.At(i).reset()
	}
}

// retry re-runs the lookahead chain from position pos, starting with the
// State the parser at pos received before. It returns the resulting State and
// noPosition, or the position of the first parser to fail.
//
// Effects registered at positions >= pos are replaced by the ones of the
// re-run, even if the re-run fails: parsers left of the failing one keep their
// new results for the next attempt. Effects registered before lookahead
// started are never dropped.
func (r *chainRun) retry(pos int) (State, int, error) {
	state := r.lookahead.At(pos).before
	drop := r.effects.Find(func(e effectPoint) bool {
		return e.pos != noPosition && e.pos >= pos
	})
	var fresh []effectPoint
	commit := func() {
		if drop >= 0 {
			r.effects.Drop(r.effects.Len() - drop)
		}
		r.effects.Extend(fresh...)
	}
	for i := pos; i < r.lookahead.Len(); i++ {
		after, err := r.lookahead.At(i).parse(state)
		if err != nil {
			commit()
			if IsFailure(err) {
				return State{}, i, nil
			}
			return state, i, err
		}
		state = after
		if after.effect != nil {
			fresh = append(fresh, effectPoint{state: after, pos: i})
		}
	}
	commit()
	return state, noPosition, nil
}

func (r *chainRun) deltas() []int {
	d := make([]int, r.lookahead.Len())
	for i := range d {
		d[i] = r.lookahead.At(i).delta
	}
	return d
}

// ended prepares the *End signal a chain passes on if one of its parsers ended
// parsing.
func (r *chainRun) ended(end *End) error {
	if r.conf.allOrNothing && !r.conf.stopOnFailure {
		tracer().Debugf("chain: ended early, discarding results")
		return &End{State: r.first.plain()}
	}
	final := end.State
	if final.effect != nil {
		r.effects.Append(effectPoint{state: final, pos: noPosition})
	}
	return &End{State: r.output(final)}
}

// output prepares the resulting State of a chain: combine 'parsed' windows
// and effects.
func (r *chainRun) output(state State) State {
	if r.conf.combine {
		state.parsedStart = r.first.leftStart
		if state.parsedEnd < state.parsedStart {
			state.parsedEnd = state.parsedStart
		}
	}
	state.effect = chainEffects(r.effects.Values())
	return state
}

// chainEffects combines the effects of a ledger into a single effect. Every
// effect receives the State it has been registered with.
func chainEffects(points []effectPoint) EffectFunc {
	if len(points) == 0 {
		return nil
	}
	return func(value interface{}, _ State) interface{} {
		for _, p := range points {
			value = p.state.effect(value, p.state)
		}
		return value
	}
}
