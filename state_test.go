package epp

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestNewState(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	//
	st := NewState("Hello World")
	if st.Left() != "Hello World" || st.Parsed() != "" {
		t.Errorf("Expected new state to have all input left and nothing parsed, is %s", st)
	}
	st = NewState("Hello World", WithWindow(6, 11))
	if st.Left() != "World" {
		t.Errorf("Expected window to be 'World', is '%s'", st.Left())
	}
	if st.ParsedSpan() != (Span{6, 6}) {
		t.Errorf("Expected 'parsed' to be empty at 6, is %s", st.ParsedSpan())
	}
}

func TestNewStateInvalidWindow(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected invalid window to panic, didn't")
		}
	}()
	NewState("abc", WithWindow(2, 1))
}

func TestConsume(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	//
	for _, st := range []State{NewState("abcdef"), NewState("xxabcdefyy", WithWindow(2, 8))} {
		left := st.Left()
		for n := 0; n <= st.LeftLen(); n++ {
			after := st.Consume(n)
			if after.Parsed() != left[:n] {
				t.Errorf("Expected Consume(%d) to parse '%s', parsed '%s'", n, left[:n], after.Parsed())
			}
			if after.Left() != left[n:] {
				t.Errorf("Expected Consume(%d) to leave '%s', left '%s'", n, left[n:], after.Left())
			}
			if after.LeftSpan().From() != st.LeftSpan().From()+n {
				t.Errorf("Expected left to start %d bytes further, starts at %d", n, after.LeftSpan().From())
			}
		}
	}
}

func TestConsumeClearsEffect(t *testing.T) {
	st := NewState("abc", WithInitialEffect(func(v interface{}, _ State) interface{} { return v }))
	if st.Consume(1).Effect() != nil {
		t.Errorf("Expected Consume to clear the effect")
	}
}

func TestConsumePanics(t *testing.T) {
	for _, n := range []int{-1, 4} {
		func() {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("Expected Consume(%d) to panic on input of length 3", n)
				}
			}()
			NewState("abc").Consume(n)
		}()
	}
}

func TestSplit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	//
	eff := func(v interface{}, _ State) interface{} { return v }
	st := NewState("__split me__", WithWindow(2, 10), WithInitialEffect(eff))
	for at := 0; at <= st.LeftLen(); at++ {
		first, second := st.Split(at)
		if first.Left()+second.Left() != st.Left() {
			t.Errorf("Expected Split(%d) to partition '%s', is '%s'+'%s'",
				at, st.Left(), first.Left(), second.Left())
		}
		if first.Effect() == nil || second.Effect() != nil {
			t.Errorf("Expected only first part of Split(%d) to keep the effect", at)
		}
		if first.ParsedLen() != 0 || second.ParsedLen() != 0 {
			t.Errorf("Expected Split(%d) to truncate 'parsed' windows", at)
		}
		if second.ParsedSpan().From() != 2+at {
			t.Errorf("Expected 'parsed' of second part to be at %d, is at %d", 2+at, second.ParsedSpan().From())
		}
	}
}

func TestSpan(t *testing.T) {
	s := Span{3, 5}.Extend(Span{1, 4})
	if s != (Span{1, 5}) || s.Len() != 4 {
		t.Errorf("Expected extended span to be (1…5), is %s", s)
	}
	if !(Span{}).IsNull() || s.IsNull() {
		t.Errorf("Expected only the zero span to be null")
	}
}
