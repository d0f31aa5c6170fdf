// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus counters and a histogram for the cut
// generators.
//
// A Collector satisfies cuts.Observer: plug it into the Hooks of any
// generator's parameters, or into a separator, and every call is counted
// by generator and outcome. Outcomes are the labels of cuts.ReasonLabel.
//
//	reg := prometheus.NewRegistry()
//	col := metrics.New(reg)
//	params := cuts.DefaultMIRParams()
//	params.Observer = col
//
// A nil *Collector is a valid no-op observer.
package metrics
