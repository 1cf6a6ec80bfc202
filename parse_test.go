package epp

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseAppliesEffects(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	//
	startsWithA := Test(func(st State) bool { return strings.HasPrefix(st.Left(), "a") })
	inc := Effect(func(v interface{}, _ State) interface{} { return v.(int) + 1 })
	v, st, err := Parse(0, "ab", Sequence(startsWithA, inc))
	if err != nil {
		t.Fatal(err)
	}
	if v != 1 {
		t.Errorf("Expected value to be 1, is %v", v)
	}
	if st.Left() != "ab" {
		t.Errorf("Expected 'left' to be 'ab', is '%s'", st.Left())
	}
}

func TestParseWithoutEffects(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	//
	v, _, err := Parse("seed", "abc", Literal("ab"))
	if err != nil || v != "seed" {
		t.Errorf("Expected seed to be returned unchanged, is %v, %v", v, err)
	}
}

func TestParseFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	//
	_, _, err := Parse(nil, "b", Literal("a"))
	if err != ErrNoParse {
		t.Errorf("Expected ErrNoParse, is %v", err)
	}
	_, _, err = Parse(nil, "b", Literal("a"), Verbose(true))
	var f *Failure
	if !errors.As(err, &f) || !strings.Contains(f.Msg, `"a"`) {
		t.Errorf("Expected detailed failure, is %v", err)
	}
	if !errors.Is(err, ErrNoParse) {
		t.Errorf("Expected detailed failure to match ErrNoParse")
	}
}

func TestParseEndIsSuccess(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	//
	_, st, err := Parse(nil, "abc", Stop(true))
	if err != nil || st.Left() != "abc" {
		t.Errorf("Expected early end to be successful, is %s, %v", st, err)
	}
}

func TestParseForeignError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	//
	_, _, err := Parse(nil, "abc", raising(errUser), Verbose(true))
	if err != errUser {
		t.Errorf("Expected user error unchanged, is %v", err)
	}
}

func TestParseState(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	//
	st := NewState("[abc]", WithWindow(1, 4))
	_, after, err := ParseState(nil, st, Sequence(Literal("abc"), EndOfInput()))
	if err != nil {
		t.Fatal(err)
	}
	if after.Parsed() != "abc" || after.LeftSpan() != (Span{4, 4}) {
		t.Errorf("Expected window to be parsed completely, is %s", after)
	}
}

func TestParseAuditFromConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epp")
	defer teardown()
	gconf.Initialize(testconfig.Conf{"epp.audit-restrictions": "true"})
	defer gconf.Initialize(testconfig.Conf{})
	//
	if !auditEnabled() {
		t.Errorf("Expected auditing to be enabled by configuration")
	}
	_, _, err := Parse(nil, "123", Sequence(Greedy(Digits()), Greedy(Digits()), Literal("x")), Verbose(true))
	if !IsFailure(err) {
		t.Errorf("Expected exhaustive search without duplicate configurations, error is %v", err)
	}
}
