package wervc

import (
	"github.com/rs/zerolog"
	"github.com/wervc-lang/wervc/compiler"
	"github.com/wervc-lang/wervc/parser"
)

// Option configures parsing and compilation.
type Option func(*options)

type options struct {
	filename string
	entry    string
	maxDepth int
	logger   zerolog.Logger
	validate bool
}

func collectOptions(opts ...Option) *options {
	o := &options{logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) parserOpts() []parser.Option {
	var opts []parser.Option
	if o.filename != "" {
		opts = append(opts, parser.WithFilename(o.filename))
	}
	if o.maxDepth > 0 {
		opts = append(opts, parser.WithMaxDepth(o.maxDepth))
	}
	return opts
}

func (o *options) compilerOpts(source string) []compiler.Option {
	opts := []compiler.Option{
		compiler.WithLogger(o.logger),
		compiler.WithSource(source),
	}
	if o.filename != "" {
		opts = append(opts, compiler.WithFilename(o.filename))
	}
	if o.entry != "" {
		opts = append(opts, compiler.WithEntry(o.entry))
	}
	return opts
}

// WithFilename sets the filename of the source code. It is used in error
// messages.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithEntry sets the name of the global symbol the program is emitted as.
// The default is "main".
func WithEntry(name string) Option {
	return func(o *options) {
		o.entry = name
	}
}

// WithMaxDepth limits how deeply expressions may nest.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithLogger sets the logger that receives compilation events.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithValidation enables checking the generated assembly with asm.Validate.
func WithValidation() Option {
	return func(o *options) {
		o.validate = true
	}
}
