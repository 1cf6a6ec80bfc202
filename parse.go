package epp

// ParseOption configures a call to Parse.
type ParseOption func(*parseConfig)

type parseConfig struct {
	verbose bool
}

// Verbose sets or clears option Verbose (default false). Without Verbose,
// Parse reports a failing parse as ErrNoParse. With Verbose, it returns the
// *Failure which terminated the parse.
func Verbose(b bool) ParseOption {
	return func(c *parseConfig) {
		c.verbose = b
	}
}

// Parse runs parser p on input. On success, it applies the combined effect
// of the parse to seed and returns the resulting value, together with the
// final State. If p ends parsing early (see Stop), this counts as success.
//
// If parsing fails, Parse returns ErrNoParse or, with option Verbose, the
// *Failure which caused it. Other errors are returned unchanged.
func Parse(seed interface{}, input string, p Parser, opts ...ParseOption) (interface{}, State, error) {
	return ParseState(seed, NewState(input), p, opts...)
}

// ParseState is like Parse, but starts with an existing State.
func ParseState(seed interface{}, st State, p Parser, opts ...ParseOption) (interface{}, State, error) {
	conf := parseConfig{}
	for _, opt := range opts {
		opt(&conf)
	}
	after, err := p.Parse(st)
	if err != nil {
		if end, ok := asEnd(err); ok {
			tracer().Debugf("parse ended early at %s", end.State.LeftSpan())
			return apply(seed, end.State), end.State, nil
		}
		if IsFailure(err) {
			tracer().Debugf("parse failed: %v", err)
			if conf.verbose {
				return nil, State{}, err
			}
			return nil, State{}, ErrNoParse
		}
		tracer().Errorf("parse aborted: %v", err)
		return nil, State{}, err
	}
	return apply(seed, after), after, nil
}

func apply(seed interface{}, st State) interface{} {
	if st.effect != nil {
		return st.effect(seed, st)
	}
	return seed
}
