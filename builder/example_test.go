package builder_test

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvcuts/builder"
)

// ExampleKnapsack prints the seedless four-item fixture and its LP optimum.
func ExampleKnapsack() {
	p, err := builder.Knapsack(4)
	if err != nil {
		fmt.Println(err)
		return
	}
	r := p.Row(0)
	fmt.Printf("%v <= %g\n", r.Vals, r.RHS)
	for _, x := range p.LPSolution() {
		fmt.Printf("%.1f ", math.Round(x*10)/10+0)
	}
	fmt.Println()
	// Output:
	// [6 3 10 7] <= 13
	// 1.0 1.0 0.4 0.0
}
