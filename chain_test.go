package epp

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// record appends the 'parsed' window of the registering State to a []string.
func record() Parser {
	return Effect(func(v interface{}, st State) interface{} {
		return append(append([]string{}, v.([]string)...), st.Parsed())
	})
}

// mark appends a constant to a []string.
func mark(s string) Parser {
	return Effect(func(v interface{}, _ State) interface{} {
		return append(append([]string{}, v.([]string)...), s)
	})
}

func counting(p Parser, count *int) Parser {
	return ParserFunc(func(st State) (State, error) {
		*count++
		return p.Parse(st)
	})
}

func anyRune(rune) bool { return true }

func TestChainSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	//
	p := Sequence(Literal("a"), record(), Literal("b"), record(), mark("!"))
	v, st, err := Parse([]string{}, "abc", p)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(v, []string{"a", "b", "!"}) {
		t.Errorf("Expected effects to be applied in order, value is %v", v)
	}
	if st.Left() != "c" || st.Parsed() != "ab" {
		t.Errorf("Expected chain to parse 'ab', is %s", st)
	}
}

func TestChainCombine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	//
	st, err := Chain([]Parser{Literal("a"), Literal("b")}, Combine(false)).Parse(NewState("abc"))
	if err != nil || st.Parsed() != "b" {
		t.Errorf("Expected chain without combine to pass on 'parsed' of last parser, is %s", st)
	}
	st, err = Chain([]Parser{Literal("a"), NoConsume(Literal("b"))}).Parse(NewState("abc"))
	if err != nil || st.Parsed() != "ab" || st.Left() != "bc" {
		t.Errorf("Expected combined 'parsed' to reach beyond 'left', is %s", st)
	}
	st, err = Sequence().Parse(NewState("abc"))
	if err != nil || st.Left() != "abc" || st.ParsedLen() != 0 {
		t.Errorf("Expected empty chain to consume nothing, is %s", st)
	}
}

func TestChainAllOrNothing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	//
	start := NewState("abc")
	_, err := Sequence(Literal("a"), record(), Stop(false), Literal("b")).Parse(start)
	end, ok := asEnd(err)
	if !ok {
		t.Fatalf("Expected chain to end early, error is %v", err)
	}
	if end.State.LeftSpan() != start.LeftSpan() || end.State.Effect() != nil {
		t.Errorf("Expected chain to end with its starting state, is %s", end.State)
	}
	v, st, err := Parse([]string{}, "abc", Sequence(Literal("a"), record(), Stop(false)))
	if err != nil {
		t.Fatal(err)
	}
	if len(v.([]string)) != 0 || st.Left() != "abc" {
		t.Errorf("Expected parse to succeed without results, value is %v, state %s", v, st)
	}
}

func TestChainNotAllOrNothing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	//
	p := Chain([]Parser{Literal("a"), record(), Stop(false), Literal("b")}, AllOrNothing(false))
	v, st, err := Parse([]string{}, "abc", p)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(v, []string{"a"}) {
		t.Errorf("Expected effects up to the end to be kept, value is %v", v)
	}
	if st.Left() != "bc" || st.Parsed() != "a" {
		t.Errorf("Expected input up to the end to be consumed, is %s", st)
	}
}

func TestChainStopOnFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	//
	p := Chain([]Parser{Literal("a"), record(), Literal("x"), mark("?")}, StopOnFailure(true))
	v, st, err := Parse([]string{}, "abc", p)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(v, []string{"a"}) || st.Left() != "bc" {
		t.Errorf("Expected chain to stop after 'a', value is %v, state %s", v, st)
	}
	attempts := 0
	p = Chain([]Parser{Greedy(counting(Digits(), &attempts)), Literal("9")}, StopOnFailure(true))
	if _, st, err = Parse(nil, "99", p); err != nil || st.Left() != "" {
		t.Errorf("Expected chain to stop after digits, is %s, %v", st, err)
	}
	if attempts != 1 {
		t.Errorf("Expected no backtracking with StopOnFailure, digits tried %d times", attempts)
	}
}

func TestChainFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	//
	_, _, err := Parse(nil, "abc", Sequence(Literal("a"), Literal("x")))
	if err != ErrNoParse {
		t.Errorf("Expected ErrNoParse, is %v", err)
	}
	_, _, err = Parse(nil, "abc", Sequence(Literal("a"), raising(errUser)))
	if !errors.Is(err, errUser) {
		t.Errorf("Expected user error to propagate, is %v", err)
	}
}

func TestGreedyBacktracking(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	//
	attempts := 0
	digits := Greedy(counting(Digits(), &attempts))
	v, st, err := Parse([]string{}, "9999", Sequence(digits, record(), Literal("9")))
	if err != nil {
		t.Fatal(err)
	}
	if attempts != 2 {
		t.Errorf("Expected digits to be tried 2 times, were tried %d times", attempts)
	}
	if !reflect.DeepEqual(v, []string{"999"}) {
		t.Errorf("Expected digits to parse '999' only, value is %v", v)
	}
	if st.Left() != "" || st.Parsed() != "9999" {
		t.Errorf("Expected all input to be consumed, is %s", st)
	}
}

func TestGreedyExhaustion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	//
	attempts := 0
	digits := Greedy(counting(Digits(), &attempts))
	_, _, err := Parse(nil, "9999", Sequence(digits, Literal("x")), Verbose(true))
	if !IsFailure(err) || !strings.Contains(err.Error(), "no combination") {
		t.Errorf("Expected chain to run out of combinations, error is %v", err)
	}
	if attempts != 5 {
		t.Errorf("Expected digits to be tried 5 times, were tried %d times", attempts)
	}
}

func TestReluctantBacktracking(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	//
	_, st, err := Parse(nil, "axbx", Sequence(Reluctant(While(anyRune, 0)), Literal("x")))
	if err != nil {
		t.Fatal(err)
	}
	if st.Left() != "bx" {
		t.Errorf("Expected reluctant parser to stop at first 'x', left is '%s'", st.Left())
	}
	_, st, err = Parse(nil, "axbx", Sequence(Greedy(While(anyRune, 0)), Literal("x")))
	if err != nil {
		t.Fatal(err)
	}
	if st.Left() != "" {
		t.Errorf("Expected greedy parser to stop at last 'x', left is '%s'", st.Left())
	}
}

func TestBacktrackingTwoParsers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	auditRestrictions = true
	defer func() { auditRestrictions = false }()
	//
	p := Sequence(Greedy(Digits()), record(), Greedy(Digits()), record(), Literal("9"))
	v, st, err := Parse([]string{}, "12349", p, Verbose(true))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(v, []string{"123", "4"}) {
		t.Errorf("Expected digits to be split into '123' and '4', value is %v", v)
	}
	if st.Left() != "" {
		t.Errorf("Expected all input to be consumed, left is '%s'", st.Left())
	}
}

func TestEffectsBeforeLookaheadKept(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	//
	p := Sequence(mark("pre"), Greedy(Digits()), Literal("9"))
	v, _, err := Parse([]string{}, "99", p)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(v, []string{"pre"}) {
		t.Errorf("Expected effect before lookahead to be applied once, value is %v", v)
	}
}

func TestLookaheadUTF8(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	//
	// restricting by a byte may cut a rune, which While treats as end of match
	_, st, err := Parse(nil, "äöü", Sequence(Greedy(While(anyRune, 1)), Literal("ü")))
	if err != nil {
		t.Fatal(err)
	}
	if st.Left() != "" || !utf8.ValidString(st.Parsed()) {
		t.Errorf("Expected input to be consumed, is %s", st)
	}
}

func TestChainConcurrentUse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	//
	p := Sequence(Greedy(Digits()), record(), Literal("9"))
	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, _, err := Parse([]string{}, "1299", p)
			if err == nil && !reflect.DeepEqual(v, []string{"129"}) {
				err = errors.New("unexpected value")
			}
			errs[i] = err
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Errorf("Expected run #%d to succeed, error is %v", i, err)
		}
	}
}

func TestRestrictionAudit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	//
	a := newRestrictionAudit()
	if err := a.check([]int{1, 0}); err != nil {
		t.Fatal(err)
	}
	if err := a.check([]int{1, 1}); err != nil {
		t.Fatal(err)
	}
	if err := a.check([]int{1}); err == nil {
		t.Errorf("Expected configuration [1] to be detected as duplicate of [1 0]")
	}
}
