package main

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/wervc-lang/wervc"
)

func (a *app) checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Check that programs compile to valid assembly",
		Long: `Parse, compile and validate programs without writing any output.
Every input is checked and, within an input, every construct that cannot be
compiled is reported.`,
		RunE: a.runCheck,
	}
	addInputFlags(cmd)
	return cmd
}

func (a *app) runCheck(cmd *cobra.Command, args []string) error {
	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}
	var result *multierror.Error
	for _, in := range inputs {
		if err := wervc.Check(cmd.Context(), in.source, a.compileOpts(in.name, false)...); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", in.displayName())
	}
	return collapse(result)
}
