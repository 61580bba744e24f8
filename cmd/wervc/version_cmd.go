package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			switch output {
			case "", "text":
				fmt.Fprintf(cmd.OutOrStdout(), "wervc %s (commit %s, built %s)\n", version, commit, date)
				return nil
			case "json":
				data, err := a.marshalJSON(map[string]string{
					"version": version,
					"commit":  commit,
					"date":    date,
				}, a.useColor(cmd.OutOrStdout()))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			default:
				return fmt.Errorf("unknown output format: %s", output)
			}
		},
	}
	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
	return cmd
}
