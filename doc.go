// Package lvcuts generates cutting planes for mixed-integer programs from
// aggregated LP rows.
//
// 🚀 What is in the box?
//
//	• Aggregation rows: weighted sums of LP rows with rank/local tracking
//	• Bound transformation: simple, variable and local bounds, complementation
//	• MIR rounding and the c-MIR delta search
//	• Lifted flow-cover cuts on a single-node flow relaxation
//	• Strong Chvátal–Gomory cuts
//	• A separator running the aggregation heuristic over a whole problem
//
// Under the hood:
//
//	numerics/ : tolerance oracle and double-double arithmetic
//	scratch/  : position index with a must-be-clean release
//	mip/      : variables, rows, variable bounds, LP relaxation solve
//	aggrrow/  : the aggregation row
//	knapsack/ : exact and approximate 0/1 knapsack, integral scalars
//	cuts/     : MIR, c-MIR, flow cover, Strong CG, efficacy, cleanup
//	separator/: aggregation heuristic and efficacy-ordered cut pool
//	metrics/  : Prometheus collector for generator outcomes
//	config/   : YAML settings
//	builder/  : deterministic MIP fixtures
//
// Quick example (x0 + x1 ≤ 1.5 over binaries at x = (0.75, 0.75)):
//
//	row := aggrrow.New(p)
//	_ = row.AddRow(p.Row(0), 1, aggrrow.SideRHS)
//	res, _ := cuts.CalcMIR(sol, row, cuts.DefaultMIRParams())
//	// res.Cut: x0 + x1 ≤ 1, efficacy 0.3536
//
//	go get github.com/katalvlaran/lvcuts
package lvcuts
