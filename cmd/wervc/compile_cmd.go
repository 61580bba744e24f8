package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/wervc-lang/wervc"
)

func (a *app) compileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [files...]",
		Short: "Compile programs to assembly",
		Long: `Compile programs to x86-64 assembly in Intel syntax.

Each file is written next to its source with a .s extension unless --out is
given. Code passed with --code or --stdin is written to stdout. When several
files are given, all of them are compiled and every failure is reported.`,
		Example: `  wervc compile main.wv
  wervc compile -c "let x = 10; x = x + 1; x"
  wervc compile main.wv -o - | cc -x assembler - -o main`,
		RunE: a.runCompile,
	}
	addInputFlags(cmd)
	cmd.Flags().StringP("out", "o", "", `Output file for a single input ("-" for stdout)`)
	cmd.Flags().Bool("validate", false, "Check the generated assembly")
	return cmd
}

func (a *app) runCompile(cmd *cobra.Command, args []string) error {
	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")
	validate, _ := cmd.Flags().GetBool("validate")
	if out != "" && len(inputs) > 1 {
		return errors.New("--out requires a single input")
	}

	var result *multierror.Error
	for _, in := range inputs {
		text, err := wervc.Compile(cmd.Context(), in.source, a.compileOpts(in.name, validate)...)
		if err != nil {
			log.Debug().Err(err).Str("input", in.displayName()).Msg("compile failed")
			result = multierror.Append(result, err)
			continue
		}
		if err := writeAssembly(cmd, in, text, out); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		log.Info().Str("input", in.displayName()).Int("bytes", len(text)).Msg("compiled")
	}
	return collapse(result)
}

func writeAssembly(cmd *cobra.Command, in input, text, out string) error {
	path := out
	if path == "" && in.name != "" {
		path = in.outputPath()
	}
	if path == "" || path == "-" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	if in.name != "" && filepath.Clean(path) == filepath.Clean(in.name) {
		return fmt.Errorf("refusing to overwrite input %s with its assembly", in.name)
	}
	return os.WriteFile(path, []byte(text), 0o644)
}
