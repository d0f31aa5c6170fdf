// SPDX-License-Identifier: MIT
// Package: lvcuts/config

package config

import (
	"log/slog"

	"github.com/katalvlaran/lvcuts/cuts"
	"github.com/katalvlaran/lvcuts/numerics"
	"github.com/katalvlaran/lvcuts/separator"
)

// NewTolerances builds the numeric tolerances. c must be valid.
func (c Config) NewTolerances() *numerics.Tolerances {
	t := c.Tolerances
	return numerics.New(
		numerics.WithEpsilon(t.Epsilon),
		numerics.WithSumEpsilon(t.SumEpsilon),
		numerics.WithFeasTol(t.FeasTol),
		numerics.WithInfinity(t.Infinity),
	)
}

func (c Config) MIRParams() cuts.MIRParams {
	p := cuts.DefaultMIRParams()
	p.BoundSwitch = c.MIR.BoundSwitch
	p.UseVBDs = c.MIR.UseVBDs
	p.AllowLocal = c.MIR.AllowLocal
	p.FixIntegralRHS = c.MIR.FixIntegralRHS
	p.MinFrac, p.MaxFrac = c.MIR.MinFrac, c.MIR.MaxFrac
	p.Scale = c.MIR.Scale
	return p
}

func (c Config) CMIRParams() cuts.CMIRParams {
	p := cuts.DefaultCMIRParams()
	p.BoundSwitch = c.CMIR.BoundSwitch
	p.UseVBDs = c.CMIR.UseVBDs
	p.AllowLocal = c.CMIR.AllowLocal
	p.MinFrac, p.MaxFrac = c.CMIR.MinFrac, c.CMIR.MaxFrac
	p.MaxTestDelta = c.CMIR.MaxTestDelta
	p.TryNegScaling = c.CMIR.TryNegScaling
	p.MinEfficacy = c.CMIR.MinEfficacy
	return p
}

func (c Config) FlowCoverParams() cuts.FlowCoverParams {
	p := cuts.DefaultFlowCoverParams()
	p.BoundSwitch = c.FlowCover.BoundSwitch
	p.AllowLocal = c.FlowCover.AllowLocal
	return p
}

func (c Config) StrongCGParams() cuts.StrongCGParams {
	p := cuts.DefaultStrongCGParams()
	p.BoundSwitch = c.StrongCG.BoundSwitch
	p.UseVBDs = c.StrongCG.UseVBDs
	p.AllowLocal = c.StrongCG.AllowLocal
	p.MinFrac, p.MaxFrac = c.StrongCG.MinFrac, c.StrongCG.MaxFrac
	p.Scale = c.StrongCG.Scale
	return p
}

// SeparatorOptions returns the separator options of c, generator
// parameters included. log and obs are optional.
func (c Config) SeparatorOptions(log *slog.Logger, obs cuts.Observer) []separator.Option {
	s := c.Separator
	opts := []separator.Option{
		separator.WithMaxAggrs(s.MaxAggrs),
		separator.WithMaxSlack(s.MaxSlack),
		separator.WithRowFactorRange(s.MinRowFac, s.MaxRowFac),
		separator.WithMaxCont(s.MaxCont),
		separator.WithMaxCuts(s.MaxCuts),
		separator.WithMaxAggrLen(s.maxAggrLen()),
		separator.WithMinEfficacy(s.MinEfficacy),
		separator.WithGenerators(s.Generators...),
		separator.WithMIRParams(c.MIRParams()),
		separator.WithCMIRParams(c.CMIRParams()),
		separator.WithFlowCoverParams(c.FlowCoverParams()),
		separator.WithStrongCGParams(c.StrongCGParams()),
	}
	if log != nil {
		opts = append(opts, separator.WithLogger(log))
	}
	if obs != nil {
		opts = append(opts, separator.WithObserver(obs))
	}

	return opts
}
