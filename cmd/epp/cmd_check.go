package main

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/npillmayer/epp/grammar"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check <file>",
		Short:         "Parse and verify an EBNF grammar file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammar.Load(args[0])
			if err != nil {
				printErrors(err)
				return err
			}
			if startProduction == "" {
				return nil
			}
			if _, err := grammar.Compile(g, startProduction); err != nil {
				printErrors(err)
				return err
			}
			tracer().Infof("grammar %s is valid for start production %s", args[0], startProduction)
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")

	return cmd
}

// printErrors prints every error of an error list on a line by itself.
func printErrors(err error) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		v := reflect.ValueOf(e)
		if v.Kind() == reflect.Slice {
			for i := 0; i < v.Len(); i++ {
				fmt.Println(v.Index(i).Interface())
			}
			return
		}
	}
	fmt.Println(err)
}
