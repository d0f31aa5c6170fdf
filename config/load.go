// SPDX-License-Identifier: MIT
// Package: lvcuts/config

package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvcuts/separator"
)

// Load reads the YAML file at path over Default and validates the result.
// An empty path returns Default.
//
// Errors: file errors from os.Open, ErrDecode, ErrInvalid.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("Load: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("Load %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes one YAML document from r over Default and validates it.
// An empty document returns Default.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every range the consuming packages would reject,
// including the ones their option constructors panic on.
func (c Config) Validate() error {
	t := c.Tolerances
	switch {
	case !nonNegative(t.Epsilon):
		return invalid("tolerances.epsilon", t.Epsilon)
	case !nonNegative(t.SumEpsilon):
		return invalid("tolerances.sumepsilon", t.SumEpsilon)
	case !nonNegative(t.FeasTol):
		return invalid("tolerances.feastol", t.FeasTol)
	case !finite(t.Infinity) || t.Infinity < 1:
		return invalid("tolerances.infinity", t.Infinity)
	}

	if err := checkWindow("mir", c.MIR.BoundSwitch, c.MIR.MinFrac, c.MIR.MaxFrac); err != nil {
		return err
	}
	if !finite(c.MIR.Scale) || c.MIR.Scale == 0 {
		return invalid("mir.scale", c.MIR.Scale)
	}

	if err := checkWindow("cmir", c.CMIR.BoundSwitch, c.CMIR.MinFrac, c.CMIR.MaxFrac); err != nil {
		return err
	}
	if c.CMIR.MaxTestDelta < 0 {
		return invalid("cmir.maxtestdelta", c.CMIR.MaxTestDelta)
	}
	if !finite(c.CMIR.MinEfficacy) {
		return invalid("cmir.minefficacy", c.CMIR.MinEfficacy)
	}

	if !unit(c.FlowCover.BoundSwitch) {
		return invalid("flowcover.boundswitch", c.FlowCover.BoundSwitch)
	}

	if err := checkWindow("strongcg", c.StrongCG.BoundSwitch, c.StrongCG.MinFrac, c.StrongCG.MaxFrac); err != nil {
		return err
	}
	if c.StrongCG.MinFrac == 0 {
		return invalid("strongcg.minfrac", c.StrongCG.MinFrac)
	}
	if !finite(c.StrongCG.Scale) || c.StrongCG.Scale == 0 {
		return invalid("strongcg.scale", c.StrongCG.Scale)
	}

	s := c.Separator
	switch {
	case s.MaxAggrs < 0:
		return invalid("separator.maxaggrs", s.MaxAggrs)
	case !nonNegative(s.MaxSlack):
		return invalid("separator.maxslack", s.MaxSlack)
	case !finite(s.MinRowFac) || s.MinRowFac > 0:
		return invalid("separator.minrowfac", s.MinRowFac)
	case !finite(s.MaxRowFac) || s.MaxRowFac < 0:
		return invalid("separator.maxrowfac", s.MaxRowFac)
	case s.MaxCont < 0:
		return invalid("separator.maxcont", s.MaxCont)
	case s.MaxCuts <= 0:
		return invalid("separator.maxcuts", s.MaxCuts)
	case s.MaxAggrLen < 0:
		return invalid("separator.maxaggrlen", s.MaxAggrLen)
	case !finite(s.MinEfficacy):
		return invalid("separator.minefficacy", s.MinEfficacy)
	}
	if err := separator.CheckGenerators(s.Generators); err != nil {
		return fmt.Errorf("separator.generators: %w: %v", ErrInvalid, err)
	}

	return nil
}

func checkWindow(section string, boundswitch, minfrac, maxfrac float64) error {
	if !unit(boundswitch) {
		return invalid(section+".boundswitch", boundswitch)
	}
	if !unit(minfrac) || !unit(maxfrac) || minfrac > maxfrac {
		return fmt.Errorf("%s: fractionality window [%g,%g]: %w", section, minfrac, maxfrac, ErrInvalid)
	}

	return nil
}

func invalid(key string, v any) error {
	return fmt.Errorf("%s = %v: %w", key, v, ErrInvalid)
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

func nonNegative(x float64) bool { return finite(x) && x >= 0 }

func unit(x float64) bool { return finite(x) && x >= 0 && x <= 1 }
