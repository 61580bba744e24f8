package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/wervc-lang/wervc"
)

var logLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// useColor reports whether output written to w should be colored.
func (a *app) useColor(w io.Writer) bool {
	if a.cfg.GetBool("no-color") {
		return false
	}
	return isTerminal(w)
}

// Reads global flags and adjusts the environment accordingly.
func (a *app) processGlobalFlags() {
	if a.cfg.GetBool("no-color") {
		color.NoColor = true
	}
}

// setupLogger configures the global logger from the log flags. Logs go to w.
func (a *app) setupLogger(w io.Writer) error {
	level, err := zerolog.ParseLevel(a.cfg.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level %q (expected one of %s)",
			a.cfg.GetString("log-level"), strings.Join(logLevels, ", "))
	}
	format := a.cfg.GetString("log-format")
	if format == "" {
		format = "json"
		if isTerminal(w) {
			format = "console"
		}
	}
	var out io.Writer
	switch format {
	case "console":
		out = zerolog.ConsoleWriter{Out: w, NoColor: !a.useColor(w), TimeFormat: time.Kitchen}
	case "json":
		out = w
	default:
		return fmt.Errorf("unknown log format: %s", format)
	}
	log.Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	return nil
}

// renderError formats err for display. Every error aggregated in a
// multierror is rendered on its own.
func (a *app) renderError(err error, useColor bool) string {
	if merr, ok := err.(*multierror.Error); ok {
		parts := make([]string, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			parts = append(parts, wervc.FriendlyError(e, useColor))
		}
		return strings.Join(parts, "\n")
	}
	return wervc.FriendlyError(err, useColor)
}

// collapse returns nil, the only aggregated error, or the aggregate itself.
func collapse(result *multierror.Error) error {
	if result == nil {
		return nil
	}
	if len(result.Errors) == 1 {
		return result.Errors[0]
	}
	return result
}

// marshalJSON encodes v as indented JSON, colorized unless colors are off.
func (a *app) marshalJSON(v any, useColor bool) ([]byte, error) {
	if !useColor {
		return json.MarshalIndent(v, "", "  ")
	}
	return prettyjson.Marshal(v)
}

// painter applies a color only when enabled.
type painter struct {
	enabled bool
}

func (p painter) paint(c *color.Color, format string, args ...any) string {
	s := fmt.Sprintf(format, args...)
	if !p.enabled {
		return s
	}
	return c.Sprint(s)
}

// forced returns a color that is applied regardless of terminal detection.
func forced(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}
