package main

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/epp"
	"github.com/npillmayer/epp/calc"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newReplCmd() *cobra.Command {
	var gf grammarFlags

	cmd := &cobra.Command{
		Use:           "repl",
		Short:         "Evaluate expressions interactively",
		Long:          "Evaluate calculator expressions, or match lines against a grammar if --grammar is given.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			intp := &Intp{calc: calc.New()}
			if gf.filename != "" {
				p, err := gf.parser()
				if err != nil {
					pterm.Error.Println(err.Error())
					return err
				}
				intp.matcher = p
			}
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				intp.Lines(os.Stdin)
				return nil
			}
			repl, err := readline.New("epp> ")
			if err != nil {
				tracer().Errorf(err.Error())
				return err
			}
			defer repl.Close()
			intp.repl = repl
			pterm.Info.Println("Welcome to epp")
			tracer().Infof("Quit with <ctrl>D")
			intp.REPL()
			return nil
		},
	}
	gf.register(cmd)

	return cmd
}

// Intp is our interpreter object.
type Intp struct {
	repl    *readline.Instance
	calc    *calc.Calculator
	matcher epp.Parser // if set, lines are matched instead of evaluated
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Lines evaluates lines read from r, for non-interactive use.
func (intp *Intp) Lines(r io.Reader) {
	scanner := bufio.NewScanner(r)
	lineno := 1
	for scanner.Scan() {
		line := scanner.Text()
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			tracer().Errorf("Error line %d: %v", lineno, err)
		}
		if quit {
			return
		}
		lineno++
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading input: " + err.Error())
	}
}

// Eval evaluates a line. It returns true if the user wants to quit.
func (intp *Intp) Eval(line string) (bool, error) {
	if line == ":quit" {
		return true, nil
	}
	if intp.matcher != nil {
		return false, match(intp.matcher, line)
	}
	v, err := intp.calc.Eval(line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return false, err
	}
	pterm.Info.Println(v)
	return false, nil
}
