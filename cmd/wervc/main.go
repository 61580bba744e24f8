package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wervc-lang/wervc/compiler"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI with the given arguments and streams and returns the
// process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := newApp()
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprint(stderr, a.renderError(err, a.useColor(stderr)))
		return 1
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "wervc",
		Short:         "Compile wervc programs to x86-64 assembly",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initConfig(); err != nil {
				return err
			}
			a.processGlobalFlags()
			return a.setupLogger(cmd.ErrOrStderr())
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.wervc.yaml)")
	pf.Bool("no-color", false, "Disable colored output")
	pf.String("log-level", "warn", "Log level: "+strings.Join(logLevels, ", "))
	pf.String("log-format", "", "Log format: console or json (default depends on the terminal)")
	pf.String("entry", compiler.DefaultEntry, "Name of the global entry symbol")
	a.cfg.BindPFlags(pf)
	a.cfg.BindEnv("no-color", "NO_COLOR")

	cmd.AddCommand(
		a.compileCmd(),
		a.astCmd(),
		a.checkCmd(),
		a.serveCmd(),
		a.versionCmd(),
	)
	return cmd
}
