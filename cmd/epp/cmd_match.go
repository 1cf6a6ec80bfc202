package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/epp"
	"github.com/npillmayer/epp/grammar"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var errNoMatch = errors.New("input does not match")

// grammarFlags are shared by commands working with a grammar.
type grammarFlags struct {
	filename string
	start    string
	greedy   []string
}

func (gf *grammarFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&gf.filename, "grammar", "", "EBNF grammar file")
	cmd.Flags().StringVar(&gf.start, "start", "", "start production")
	cmd.Flags().StringSliceVar(&gf.greedy, "greedy", nil, "productions to perform greedy lookahead")
}

// parser loads and compiles the grammar. Non-lexical productions skip white space.
func (gf *grammarFlags) parser() (epp.Parser, error) {
	if gf.filename == "" || gf.start == "" {
		return nil, fmt.Errorf("flags --grammar and --start are required")
	}
	g, err := grammar.Load(gf.filename)
	if err != nil {
		return nil, err
	}
	return grammar.Compile(g, gf.start,
		grammar.SkipWith(epp.Whitespace()),
		grammar.GreedyProduction(gf.greedy...),
	)
}

func newMatchCmd() *cobra.Command {
	var gf grammarFlags

	cmd := &cobra.Command{
		Use:           "match [input]",
		Short:         "Match input against a grammar",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := gf.parser()
			if err != nil {
				pterm.Error.Println(err.Error())
				return err
			}
			input := strings.Join(args, " ")
			tracer().Infof("Input argument is \"%s\"", input)
			return match(p, input)
		},
	}
	gf.register(cmd)

	return cmd
}

// match runs p on input and displays the result.
func match(p epp.Parser, input string) error {
	ok, st, err := grammar.Match(p, input)
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	if !ok {
		if st.Input() != "" {
			printWindows(st)
		}
		pterm.Error.Println("no match")
		return errNoMatch
	}
	gtrace.SyntaxTracer.Debugf("matched %q", input)
	printWindows(st)
	pterm.Info.Println("match")
	return nil
}

func printWindows(st epp.State) {
	ll := pterm.LeveledList{
		pterm.LeveledListItem{Level: 0, Text: "input"},
		pterm.LeveledListItem{Level: 1, Text: fmt.Sprintf("parsed %s %q", st.ParsedSpan(), st.Parsed())},
		pterm.LeveledListItem{Level: 1, Text: fmt.Sprintf("left   %s %q", st.LeftSpan(), st.Left())},
	}
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}
