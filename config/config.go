// SPDX-License-Identifier: MIT
// Package: lvcuts/config
//
// config.go: the YAML schema and its defaults.

package config

import (
	"math"

	"github.com/katalvlaran/lvcuts/cuts"
	"github.com/katalvlaran/lvcuts/numerics"
	"github.com/katalvlaran/lvcuts/separator"
)

// Config is the top-level document.
type Config struct {
	Tolerances Tolerances `yaml:"tolerances"`
	MIR        MIR        `yaml:"mir"`
	CMIR       CMIR       `yaml:"cmir"`
	FlowCover  FlowCover  `yaml:"flowcover"`
	StrongCG   StrongCG   `yaml:"strongcg"`
	Separator  Separator  `yaml:"separator"`
}

// Tolerances configures numerics.New.
type Tolerances struct {
	Epsilon    float64 `yaml:"epsilon"`
	SumEpsilon float64 `yaml:"sumepsilon"`
	FeasTol    float64 `yaml:"feastol"`
	Infinity   float64 `yaml:"infinity"`
}

// MIR mirrors cuts.MIRParams without its hooks.
type MIR struct {
	BoundSwitch    float64 `yaml:"boundswitch"`
	UseVBDs        bool    `yaml:"usevbds"`
	AllowLocal     bool    `yaml:"allowlocal"`
	FixIntegralRHS bool    `yaml:"fixintegralrhs"`
	MinFrac        float64 `yaml:"minfrac"`
	MaxFrac        float64 `yaml:"maxfrac"`
	Scale          float64 `yaml:"scale"`
}

// CMIR mirrors cuts.CMIRParams without its hooks.
type CMIR struct {
	BoundSwitch   float64 `yaml:"boundswitch"`
	UseVBDs       bool    `yaml:"usevbds"`
	AllowLocal    bool    `yaml:"allowlocal"`
	MinFrac       float64 `yaml:"minfrac"`
	MaxFrac       float64 `yaml:"maxfrac"`
	MaxTestDelta  int     `yaml:"maxtestdelta"`
	TryNegScaling bool    `yaml:"trynegscaling"`
	MinEfficacy   float64 `yaml:"minefficacy"`
}

// FlowCover mirrors cuts.FlowCoverParams without its hooks.
type FlowCover struct {
	BoundSwitch float64 `yaml:"boundswitch"`
	AllowLocal  bool    `yaml:"allowlocal"`
}

// StrongCG mirrors cuts.StrongCGParams without its hooks.
type StrongCG struct {
	BoundSwitch float64 `yaml:"boundswitch"`
	UseVBDs     bool    `yaml:"usevbds"`
	AllowLocal  bool    `yaml:"allowlocal"`
	MinFrac     float64 `yaml:"minfrac"`
	MaxFrac     float64 `yaml:"maxfrac"`
	Scale       float64 `yaml:"scale"`
}

// Separator mirrors separator.Options. MaxAggrLen 0 means unlimited.
type Separator struct {
	MaxAggrs    int      `yaml:"maxaggrs"`
	MaxSlack    float64  `yaml:"maxslack"`
	MinRowFac   float64  `yaml:"minrowfac"`
	MaxRowFac   float64  `yaml:"maxrowfac"`
	MaxCont     int      `yaml:"maxcont"`
	MaxCuts     int      `yaml:"maxcuts"`
	MaxAggrLen  int      `yaml:"maxaggrlen"`
	MinEfficacy float64  `yaml:"minefficacy"`
	Generators  []string `yaml:"generators"`
}

// Default returns the settings every package uses when built without
// options.
func Default() Config {
	mir := cuts.DefaultMIRParams()
	cmir := cuts.DefaultCMIRParams()
	fc := cuts.DefaultFlowCoverParams()
	scg := cuts.DefaultStrongCGParams()
	sep := separator.DefaultOptions()

	return Config{
		Tolerances: Tolerances{
			Epsilon:    numerics.DefaultEpsilon,
			SumEpsilon: numerics.DefaultSumEpsilon,
			FeasTol:    numerics.DefaultFeasTol,
			Infinity:   numerics.DefaultInfinity,
		},
		MIR: MIR{
			BoundSwitch:    mir.BoundSwitch,
			UseVBDs:        mir.UseVBDs,
			AllowLocal:     mir.AllowLocal,
			FixIntegralRHS: mir.FixIntegralRHS,
			MinFrac:        mir.MinFrac,
			MaxFrac:        mir.MaxFrac,
			Scale:          mir.Scale,
		},
		CMIR: CMIR{
			BoundSwitch:   cmir.BoundSwitch,
			UseVBDs:       cmir.UseVBDs,
			AllowLocal:    cmir.AllowLocal,
			MinFrac:       cmir.MinFrac,
			MaxFrac:       cmir.MaxFrac,
			MaxTestDelta:  cmir.MaxTestDelta,
			TryNegScaling: cmir.TryNegScaling,
			MinEfficacy:   cmir.MinEfficacy,
		},
		FlowCover: FlowCover{BoundSwitch: fc.BoundSwitch, AllowLocal: fc.AllowLocal},
		StrongCG: StrongCG{
			BoundSwitch: scg.BoundSwitch,
			UseVBDs:     scg.UseVBDs,
			AllowLocal:  scg.AllowLocal,
			MinFrac:     scg.MinFrac,
			MaxFrac:     scg.MaxFrac,
			Scale:       scg.Scale,
		},
		Separator: Separator{
			MaxAggrs:    sep.MaxAggrs,
			MaxSlack:    sep.MaxSlack,
			MinRowFac:   sep.MinRowFac,
			MaxRowFac:   sep.MaxRowFac,
			MaxCont:     sep.MaxCont,
			MaxCuts:     sep.MaxCuts,
			MinEfficacy: sep.MinEfficacy,
			Generators:  append([]string(nil), sep.Generators...),
		},
	}
}

// maxAggrLen maps the file value to separator's convention.
func (s Separator) maxAggrLen() int {
	if s.MaxAggrLen == 0 {
		return math.MaxInt
	}

	return s.MaxAggrLen
}
