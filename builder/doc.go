// Package builder produces small deterministic MIP fixtures for tests,
// benchmarks and examples of the cut generators.
//
// Every factory returns a *mip.Problem whose LP solution is already set:
// either the one supplied with WithSolution, or the optimum of the LP
// relaxation computed with mip.SolveRelaxation.
//
//   - Knapsack(n):            max Σ p_i x_i, Σ w_i x_i ≤ c, x binary.
//   - FixedCharge(n):         min Σ f_i x_i + c_i y_i, Σ y_i ≥ d,
//     y_i ≤ u_i x_i (as rows and as variable upper bounds), x binary.
//   - MixedKnapsack(ni, nc):  max Σ p_i x_i - Σ s_j, Σ a_i x_i - Σ s_j ≤ b,
//     x general integer, s continuous.
//
// Configuration primitives:
//
//   - BuilderOption mutates builderConfig before construction.
//   - WithSeed / WithRand draw coefficients from a seeded RNG; without an
//     RNG the coefficients follow a fixed pattern.
//   - WithWeightRange, WithCapacityRatio, WithTolerances, WithSolution.
//
// Option constructors panic on meaningless values; factories return
// sentinel errors (ErrTooFewVars, ErrInfeasibleFixture, ...) wrapped with
// the factory name.
package builder
