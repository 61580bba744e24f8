package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wervc-lang/wervc"
)

// app holds the state shared by all commands of one invocation.
type app struct {
	cfg     *viper.Viper
	cfgFile string
}

func newApp() *app {
	return &app{cfg: viper.New()}
}

// initConfig reads the config file and environment variables. A missing
// default config file is not an error.
func (a *app) initConfig() error {
	if a.cfgFile != "" {
		path, err := homedir.Expand(a.cfgFile)
		if err != nil {
			return err
		}
		a.cfg.SetConfigFile(path)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return err
		}
		a.cfg.AddConfigPath(home)
		a.cfg.SetConfigName(".wervc")
		a.cfg.SetConfigType("yaml")
	}
	a.cfg.SetEnvPrefix("wervc")
	a.cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.cfg.AutomaticEnv()

	if err := a.cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	log.Debug().Str("file", a.cfg.ConfigFileUsed()).Msg("loaded config")
	return nil
}

// compileOpts returns the options for compiling one input.
func (a *app) compileOpts(filename string, validate bool) []wervc.Option {
	opts := []wervc.Option{
		wervc.WithLogger(log.Logger),
		wervc.WithEntry(a.cfg.GetString("entry")),
	}
	if filename != "" {
		opts = append(opts, wervc.WithFilename(filename))
	}
	if validate {
		opts = append(opts, wervc.WithValidation())
	}
	return opts
}

// input is one program to process.
type input struct {
	// name is the file path, or "" for code given by flag or stdin
	name   string
	source string
}

// displayName names the input in messages.
func (in input) displayName() string {
	if in.name == "" {
		return "<input>"
	}
	return in.name
}

// outputPath returns the assembly file written next to a source file. The
// extension is replaced by .s, unless the source already ends in .s.
func (in input) outputPath() string {
	ext := filepath.Ext(in.name)
	if ext == ".s" {
		return in.name + ".s"
	}
	return strings.TrimSuffix(in.name, ext) + ".s"
}

// readInputs determines what code is to be processed. There are three
// possibilities:
//  1. --code <code>
//  2. --stdin (read code from stdin)
//  3. paths as arguments
func readInputs(cmd *cobra.Command, args []string) ([]input, error) {
	var codeFlagSet bool
	if f := cmd.Flags().Lookup("code"); f != nil && f.Changed {
		codeFlagSet = true
	}
	var stdinFlagSet bool
	if f := cmd.Flags().Lookup("stdin"); f != nil && f.Changed {
		stdinFlagSet = true
	}
	pathSupplied := len(args) > 0
	if pathSupplied && (codeFlagSet || stdinFlagSet) {
		return nil, errors.New("multiple input sources specified")
	} else if codeFlagSet && stdinFlagSet {
		return nil, errors.New("multiple input sources specified")
	}
	switch {
	case stdinFlagSet:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		return []input{{source: string(data)}}, nil
	case codeFlagSet:
		code, _ := cmd.Flags().GetString("code")
		return []input{{source: code}}, nil
	case pathSupplied:
		inputs := make([]input, 0, len(args))
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, input{name: path, source: string(data)})
		}
		return inputs, nil
	}
	return nil, errors.New("no input: pass a file, --code or --stdin")
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("code", "c", "", "Code to process")
	cmd.Flags().Bool("stdin", false, "Read code from stdin")
}
