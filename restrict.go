package epp

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/npillmayer/schuko/gconf"
)

// restricted wraps a parser tracked by a chain's lookahead machinery. For
// parsers with a lookahead mode, it limits the input visible to the parser.
// Parsers without lookahead mode are called unrestricted.
type restricted struct {
	parser Parser
	mode   Lookahead
	delta  int   // number of bytes ceded
	before State // State the parser received on its last invocation
}

func restrict(p Parser, st State) *restricted {
	return &restricted{
		parser: p,
		mode:   p.Lookahead(),
		before: st,
	}
}

// parse calls the wrapped parser on a window of st. Greedy parsers see
// 'left' minus delta bytes at the end, reluctant ones see the first delta
// bytes of 'left'.
func (rp *restricted) parse(st State) (State, error) {
	rp.before = st
	switch rp.mode {
	case GreedyLookahead:
		return partialParse(st, rp.parser, st.LeftLen()-rp.delta)
	case ReluctantLookahead:
		return partialParse(st, rp.parser, rp.delta)
	}
	return rp.parser.Parse(st)
}

// overrestricted is true if ceding another byte is impossible, i.e., if the
// visible window would either shrink below empty or grow beyond 'left'.
// Parsers without lookahead cannot be restricted at all.
func (rp *restricted) overrestricted() bool {
	if rp.mode == NoLookahead {
		return true
	}
	return rp.delta > rp.before.LeftLen()
}

func (rp *restricted) restrictMore() {
	if rp.mode != NoLookahead {
		rp.delta++
	}
}

func (rp *restricted) reset() {
	rp.delta = 0
}

// partialParse runs p on the first 'at' bytes of 'left' only. The resulting
// State gets the 'left' window end of st back.
func partialParse(st State, p Parser, at int) (State, error) {
	if at < 0 || at > st.LeftLen() {
		return State{}, Failf("restricted window %d out of range %s", at, st.LeftSpan())
	}
	use, rest := st.Split(at)
	after, err := p.Parse(use)
	if err != nil {
		if end, ok := asEnd(err); ok {
			final := end.State
			final.leftEnd = rest.leftEnd
			return State{}, &End{State: final}
		}
		return State{}, err
	}
	after.leftEnd = rest.leftEnd
	return after, nil
}

// --- Auditing restriction configurations -----------------------------------

// auditRestrictions forces auditing, regardless of configuration.
var auditRestrictions = false

func auditEnabled() bool {
	return auditRestrictions || gconf.GetBool("epp.audit-restrictions")
}

// restrictionAudit remembers every configuration of restrictions a chain has
// tried. Backtracking works like an odometer over the deltas of the lookahead
// chain, therefore a configuration must never come up twice.
type restrictionAudit struct {
	seen map[string]struct{}
}

type restrictionKey struct {
	Deltas []int
}

func newRestrictionAudit() *restrictionAudit {
	return &restrictionAudit{seen: make(map[string]struct{})}
}

// check records the deltas of a lookahead chain. Trailing zeros are not
// significant, as the chain may grow while parsing proceeds.
func (a *restrictionAudit) check(deltas []int) error {
	n := len(deltas)
	for n > 0 && deltas[n-1] == 0 {
		n--
	}
	h, err := structhash.Hash(restrictionKey{Deltas: deltas[:n]}, 1)
	if err != nil {
		return fmt.Errorf("epp: cannot fingerprint restrictions: %w", err)
	}
	if _, found := a.seen[h]; found {
		tracer().Errorf("restriction configuration %v tried twice", deltas[:n])
		return fmt.Errorf("epp: restriction configuration %v tried twice", deltas[:n])
	}
	a.seen[h] = struct{}{}
	return nil
}
