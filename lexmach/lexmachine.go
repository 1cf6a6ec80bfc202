package lexmach

import (
	"errors"
	"strings"

	"github.com/npillmayer/epp"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'epp.lexmach'.
func tracer() tracing.Trace {
	return tracing.Select("epp.lexmach")
}

// AnyType is a wildcard for the token type expected by a parser.
const AnyType = -1

// LMAdapter is a lexmachine adapter to use lexmachine DFAs for parsing tokens.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token strings to their values. Keywords and literals
// take precedence over the patterns init adds.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	// lexmachine prefers earlier patterns for matches of equal length
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	init(adapter.Lexer)
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Next scans the first token of the 'left' window of st. It returns the token
// and a State in which the token (together with any skipped input in front of
// it) is consumed. The 'parsed' window of the State covers the lexeme.
//
// If no token can be recognized, including at the end of input, Next returns
// an *epp.Failure. Use End to test for the end of input.
func (lm *LMAdapter) Next(st epp.State) (*lexmachine.Token, epp.State, error) {
	s, err := lm.Lexer.Scanner([]byte(st.Left()))
	if err != nil {
		return nil, epp.State{}, err
	}
	tok, err, eos := s.Next()
	if err != nil {
		var ui *machines.UnconsumedInput
		if errors.As(err, &ui) {
			return nil, epp.State{}, epp.Failf("no token recognized at %d", st.LeftSpan().From()+ui.FailTC)
		}
		return nil, epp.State{}, epp.Failf("scanner error: %v", err)
	}
	if eos {
		return nil, epp.State{}, epp.Failf("expected token, found end of input")
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("token %d '%s' at %d", token.Type, token.Lexeme, st.LeftSpan().From()+token.TC)
	after := st.Consume(token.TC).Consume(len(token.Lexeme))
	return token, after, nil
}

// Token returns a parser which consumes a token of type id.
// Use AnyType to accept tokens of any type.
func (lm *LMAdapter) Token(id int) epp.Parser {
	return epp.ParserFunc(func(st epp.State) (epp.State, error) {
		_, after, err := lm.expect(st, id)
		return after, err
	})
}

// AnyToken returns a parser which consumes a token of any type.
func (lm *LMAdapter) AnyToken() epp.Parser {
	return lm.Token(AnyType)
}

// TokenValue returns a parser which consumes a token of type id, like Token.
// In addition, it registers an effect which calls fn with the token.
func (lm *LMAdapter) TokenValue(id int, fn func(value interface{}, token *lexmachine.Token) interface{}) epp.Parser {
	return epp.ParserFunc(func(st epp.State) (epp.State, error) {
		token, after, err := lm.expect(st, id)
		if err != nil {
			return epp.State{}, err
		}
		return after.WithEffect(func(v interface{}, _ epp.State) interface{} {
			return fn(v, token)
		}), nil
	})
}

// End returns a parser which succeeds if nothing but skipped input is left.
// The skipped input is consumed.
func (lm *LMAdapter) End() epp.Parser {
	return epp.ParserFunc(func(st epp.State) (epp.State, error) {
		s, err := lm.Lexer.Scanner([]byte(st.Left()))
		if err != nil {
			return epp.State{}, err
		}
		tok, err, eos := s.Next()
		if err != nil || !eos {
			if token, ok := tok.(*lexmachine.Token); ok {
				return epp.State{}, epp.Failf("expected end of input, found '%s'", token.Lexeme)
			}
			return epp.State{}, epp.Failf("expected end of input")
		}
		return st.Consume(st.LeftLen()), nil
	})
}

func (lm *LMAdapter) expect(st epp.State, id int) (*lexmachine.Token, epp.State, error) {
	token, after, err := lm.Next(st)
	if err != nil {
		return nil, epp.State{}, err
	}
	if id != AnyType && token.Type != id {
		return nil, epp.State{}, epp.Failf("expected token type %d, found '%s' of type %d",
			id, token.Lexeme, token.Type)
	}
	return token, after, nil
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
