// SPDX-License-Identifier: MIT
// Package: lvcuts/separator
//
// options.go: functional options for the separator.
//
// Contract:
//   - Option constructors validate and panic on meaningless inputs.
//   - New applies options in order; later options override earlier ones.

package separator

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/lvcuts/cuts"
)

// Defaults of the aggregation heuristic.
const (
	DefaultMaxAggrs    = 5
	DefaultMaxSlack    = 0.1
	DefaultMaxRowFac   = 1e4
	DefaultMinRowFac   = -1e4
	DefaultMaxCont     = 10
	DefaultMaxCuts     = 25
	DefaultMinEfficacy = 1e-4
)

// Options configures a Separator.
type Options struct {
	// MaxAggrs is the number of row additions per start row.
	MaxAggrs int

	// MaxSlack is the largest slack of a start row.
	MaxSlack float64

	// MinRowFac and MaxRowFac bound the factor of an added row.
	MinRowFac, MaxRowFac float64

	// MaxCont stops an aggregation with more continuous variables.
	MaxCont int

	// MaxCuts bounds the number of cuts returned by Run.
	MaxCuts int

	// MaxAggrLen stops an aggregation with more non-zeros.
	MaxAggrLen int

	// MinEfficacy is the efficacy a cut must exceed to be kept.
	MinEfficacy float64

	// Generators lists the enabled generators by name.
	Generators []string

	MIR       cuts.MIRParams
	CMIR      cuts.CMIRParams
	FlowCover cuts.FlowCoverParams
	StrongCG  cuts.StrongCGParams

	Logger   *slog.Logger
	Observer cuts.Observer

	// Pool additionally receives every kept cut when set.
	Pool *Pool
}

// Option mutates Options.
type Option func(*Options)

// Panic messages for invalid option values.
const (
	panicMaxAggrs    = "separator: WithMaxAggrs(n) requires n >= 0"
	panicMaxSlack    = "separator: WithMaxSlack(s) requires s >= 0"
	panicRowFac      = "separator: WithRowFactorRange(min, max) requires min <= 0 <= max"
	panicMaxCont     = "separator: WithMaxCont(n) requires n >= 0"
	panicMaxCuts     = "separator: WithMaxCuts(n) requires n > 0"
	panicMaxAggrLen  = "separator: WithMaxAggrLen(n) requires n > 0"
	panicMinEfficacy = "separator: WithMinEfficacy(e) requires finite e"
	panicGenerators  = "separator: WithGenerators(%q): %v"
	panicNilLogger   = "separator: WithLogger(nil)"
	panicNilObserver = "separator: WithObserver(nil)"
	panicNilPool     = "separator: WithPool(nil)"
)

// DefaultOptions enables all four generators with their default
// parameters.
func DefaultOptions() Options {
	return Options{
		MaxAggrs:    DefaultMaxAggrs,
		MaxSlack:    DefaultMaxSlack,
		MinRowFac:   DefaultMinRowFac,
		MaxRowFac:   DefaultMaxRowFac,
		MaxCont:     DefaultMaxCont,
		MaxCuts:     DefaultMaxCuts,
		MaxAggrLen:  math.MaxInt,
		MinEfficacy: DefaultMinEfficacy,
		Generators:  []string{cuts.GenMIR, cuts.GenCMIR, cuts.GenFlowCover, cuts.GenStrongCG},
		MIR:         cuts.DefaultMIRParams(),
		CMIR:        cuts.DefaultCMIRParams(),
		FlowCover:   cuts.DefaultFlowCoverParams(),
		StrongCG:    cuts.DefaultStrongCGParams(),
	}
}

// KnownGenerator reports whether name is a generator Run can call.
func KnownGenerator(name string) bool {
	switch name {
	case cuts.GenMIR, cuts.GenCMIR, cuts.GenFlowCover, cuts.GenStrongCG:
		return true
	default:
		return false
	}
}

// CheckGenerators returns ErrUnknownGenerator for the first unknown name.
func CheckGenerators(names []string) error {
	for _, n := range names {
		if !KnownGenerator(n) {
			return fmt.Errorf("generator %q: %w", n, ErrUnknownGenerator)
		}
	}

	return nil
}

func WithMaxAggrs(n int) Option {
	if n < 0 {
		panic(panicMaxAggrs)
	}
	return func(o *Options) { o.MaxAggrs = n }
}

func WithMaxSlack(s float64) Option {
	if math.IsNaN(s) || s < 0 {
		panic(panicMaxSlack)
	}
	return func(o *Options) { o.MaxSlack = s }
}

// WithRowFactorRange sets [MinRowFac, MaxRowFac].
func WithRowFactorRange(minfac, maxfac float64) Option {
	if math.IsNaN(minfac) || math.IsNaN(maxfac) || minfac > 0 || maxfac < 0 {
		panic(panicRowFac)
	}
	return func(o *Options) { o.MinRowFac, o.MaxRowFac = minfac, maxfac }
}

func WithMaxCont(n int) Option {
	if n < 0 {
		panic(panicMaxCont)
	}
	return func(o *Options) { o.MaxCont = n }
}

func WithMaxCuts(n int) Option {
	if n <= 0 {
		panic(panicMaxCuts)
	}
	return func(o *Options) { o.MaxCuts = n }
}

func WithMaxAggrLen(n int) Option {
	if n <= 0 {
		panic(panicMaxAggrLen)
	}
	return func(o *Options) { o.MaxAggrLen = n }
}

func WithMinEfficacy(e float64) Option {
	if math.IsNaN(e) || math.IsInf(e, 0) {
		panic(panicMinEfficacy)
	}
	return func(o *Options) { o.MinEfficacy = e }
}

// WithGenerators enables exactly the named generators, in that order.
func WithGenerators(names ...string) Option {
	if err := CheckGenerators(names); err != nil {
		panic(fmt.Sprintf(panicGenerators, names, err))
	}
	names = append([]string(nil), names...)
	return func(o *Options) { o.Generators = names }
}

func WithMIRParams(p cuts.MIRParams) Option { return func(o *Options) { o.MIR = p } }

func WithCMIRParams(p cuts.CMIRParams) Option { return func(o *Options) { o.CMIR = p } }

func WithFlowCoverParams(p cuts.FlowCoverParams) Option {
	return func(o *Options) { o.FlowCover = p }
}

func WithStrongCGParams(p cuts.StrongCGParams) Option {
	return func(o *Options) { o.StrongCG = p }
}

// WithLogger sets the logger of the separator and of every generator call.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}
	return func(o *Options) { o.Logger = l }
}

// WithObserver sets the observer of every generator call, typically a
// *metrics.Collector.
func WithObserver(obs cuts.Observer) Option {
	if obs == nil {
		panic(panicNilObserver)
	}
	return func(o *Options) { o.Observer = obs }
}

// WithPool shares p across runs or separators.
func WithPool(p *Pool) Option {
	if p == nil {
		panic(panicNilPool)
	}
	return func(o *Options) { o.Pool = p }
}
