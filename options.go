package extsearch

import (
	"io"
	"log/slog"
	"os"

	"github.com/cqkv/extsearch/codec"
)

type options struct {
	verbosity   int
	diagnostics io.Writer
	logger      *slog.Logger
	codec       codec.Codec

	// probe cache, only used by File
	cacheLevels int
	cacheDegree int
}

type Option func(*options)

func defaultOptions() options {
	return options{
		diagnostics: os.Stderr,
		codec:       codec.NewCodecImpl(),
	}
}

// WithVerbosity set the initial trace level,
// 0 is silent, 1 traces every probe, 2 also traces the probed keys
func WithVerbosity(level int) Option {
	return func(o *options) {
		o.verbosity = level
	}
}

// WithDiagnostics set the sink receiving trace lines
func WithDiagnostics(w io.Writer) Option {
	return func(o *options) {
		o.diagnostics = w
	}
}

// WithLogger replace the trace logger, it wins over WithDiagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithCodec(codec codec.Codec) Option {
	return func(o *options) {
		o.codec = codec
	}
}

// WithProbeCache cache the records probed in the first levels iterations of
// every search on a File. degree is the btree degree, <= 0 means the default
func WithProbeCache(levels, degree int) Option {
	return func(o *options) {
		o.cacheLevels = levels
		o.cacheDegree = degree
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.codec == nil {
		o.codec = codec.NewCodecImpl()
	}
	if o.diagnostics == nil {
		o.diagnostics = io.Discard
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(o.diagnostics, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return o
}
