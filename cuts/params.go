// SPDX-License-Identifier: MIT
// Package: lvcuts/cuts

package cuts

import (
	"fmt"
	"io"
	"log/slog"
)

const (
	// MaxCMIRScale is the largest admissible |scale|/(1-f0).
	MaxCMIRScale = 1e6

	// MaxDynProgSpace bounds capacity·items of the exact cover knapsack.
	MaxDynProgSpace = 1e6
)

// BoundKind selects how the bound of a variable is chosen.
type BoundKind int

const (
	// BoundAuto lets the transformation pick the closest bound.
	BoundAuto BoundKind = iota
	// BoundGlobal forces the global bound.
	BoundGlobal
	// BoundLocal forces the local bound.
	BoundLocal
	// BoundVariable forces the variable bound VB (a continuous variable
	// only).
	BoundVariable
)

// BoundChoice forces the bound used to transform one variable.
type BoundChoice struct {
	Kind BoundKind

	// VB is the position in Var.VLBs (or VUBs when Upper) for
	// BoundVariable.
	VB int

	// Upper selects the upper side instead of the lower side.
	Upper bool
}

// Observer receives one notification per generator call. The metrics
// package's Collector satisfies it.
type Observer interface {
	Observe(generator string, reason error, efficacy float64)
}

// Hooks carries the logging and observation sinks of a call. Zero values
// disable them.
type Hooks struct {
	Logger   *slog.Logger
	Observer Observer
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func (h Hooks) logger() *slog.Logger {
	if h.Logger == nil {
		return discard
	}

	return h.Logger
}

func (h Hooks) observe(generator string, res Result) {
	eff := 0.0
	if res.Success {
		eff = res.Cut.Efficacy
	}
	if h.Observer != nil {
		h.Observer.Observe(generator, res.Reason, eff)
	}
	h.logger().Debug("cut generator finished",
		slog.String("generator", generator),
		slog.String("outcome", ReasonLabel(res.Reason)),
		slog.Float64("efficacy", eff))
}

// MIRParams configures CalcMIR.
type MIRParams struct {
	Hooks

	// BoundSwitch in [0,1]: the lower bound is used when the solution
	// value is below (1-BoundSwitch)·lb + BoundSwitch·ub.
	BoundSwitch float64

	// UseVBDs allows variable bounds for continuous variables.
	UseVBDs bool

	// AllowLocal allows local bounds.
	AllowLocal bool

	// FixIntegralRHS complements one more variable when f0 leaves the
	// fractionality window.
	FixIntegralRHS bool

	// IgnoreSol selects bounds structurally (e.g. for dual rays).
	IgnoreSol bool

	// BoundsForTrans optionally forces bounds; nil or one entry per
	// problem variable.
	BoundsForTrans []BoundChoice

	MinFrac, MaxFrac float64

	// Scale multiplies the aggregation before rounding.
	Scale float64
}

// DefaultMIRParams returns the usual separation settings.
func DefaultMIRParams() MIRParams {
	return MIRParams{
		BoundSwitch:    0.5,
		UseVBDs:        true,
		AllowLocal:     true,
		FixIntegralRHS: true,
		MinFrac:        0.05,
		MaxFrac:        0.999,
		Scale:          1.0,
	}
}

func (p MIRParams) validate(nvars int) error {
	if p.FixIntegralRHS && p.IgnoreSol {
		return fmt.Errorf("FixIntegralRHS with IgnoreSol: %w", ErrInvalidCombination)
	}
	if p.BoundsForTrans != nil && len(p.BoundsForTrans) != nvars {
		return fmt.Errorf("%d bound choices for %d vars: %w", len(p.BoundsForTrans), nvars, ErrDimensionMismatch)
	}
	if p.MinFrac < 0 || p.MaxFrac > 1 || p.MinFrac > p.MaxFrac || p.Scale == 0 {
		return fmt.Errorf("window [%g,%g] scale %g: %w", p.MinFrac, p.MaxFrac, p.Scale, ErrInvalidCombination)
	}

	return nil
}

// CMIRParams configures CutGenerationHeuristicCMIR.
type CMIRParams struct {
	Hooks

	BoundSwitch float64
	UseVBDs     bool
	AllowLocal  bool

	MinFrac, MaxFrac float64

	// MaxTestDelta caps the number of candidate deltas; 0 means no cap.
	MaxTestDelta int

	// TryNegScaling also tries every candidate delta with negative sign
	// when the row aggregates equations only.
	TryNegScaling bool

	// MinEfficacy is the efficacy a cut must exceed to be returned.
	MinEfficacy float64
}

// DefaultCMIRParams returns the usual separation settings.
func DefaultCMIRParams() CMIRParams {
	return CMIRParams{
		BoundSwitch: 0.5,
		UseVBDs:     true,
		AllowLocal:  true,
		MinFrac:     0.05,
		MaxFrac:     0.999,
		MinEfficacy: 1e-4,
	}
}

func (p CMIRParams) validate() error {
	if p.MinFrac < 0 || p.MaxFrac > 1 || p.MinFrac > p.MaxFrac || p.MaxTestDelta < 0 {
		return fmt.Errorf("window [%g,%g] maxtestdelta %d: %w", p.MinFrac, p.MaxFrac, p.MaxTestDelta, ErrInvalidCombination)
	}

	return nil
}

// FlowCoverParams configures CalcFlowCover.
type FlowCoverParams struct {
	Hooks

	BoundSwitch float64
	AllowLocal  bool
}

// DefaultFlowCoverParams returns the usual separation settings.
func DefaultFlowCoverParams() FlowCoverParams {
	return FlowCoverParams{BoundSwitch: 0.5, AllowLocal: true}
}

// StrongCGParams configures CalcStrongCG.
type StrongCGParams struct {
	Hooks

	BoundSwitch float64
	UseVBDs     bool
	AllowLocal  bool

	MinFrac, MaxFrac float64
	Scale            float64
}

// DefaultStrongCGParams returns the usual separation settings.
func DefaultStrongCGParams() StrongCGParams {
	return StrongCGParams{
		BoundSwitch: 0.5,
		UseVBDs:     true,
		AllowLocal:  true,
		MinFrac:     0.05,
		MaxFrac:     0.999,
		Scale:       1.0,
	}
}

func (p StrongCGParams) validate() error {
	if p.MinFrac <= 0 || p.MaxFrac > 1 || p.MinFrac > p.MaxFrac || p.Scale == 0 {
		return fmt.Errorf("window [%g,%g] scale %g: %w", p.MinFrac, p.MaxFrac, p.Scale, ErrInvalidCombination)
	}

	return nil
}
