// SPDX-License-Identifier: MIT

// Package config loads lvcuts settings from YAML.
//
// A file only needs the keys it changes; everything else keeps the value of
// Default. Unknown keys are rejected. Example:
//
//	tolerances:
//	  feastol: 1e-7
//	cmir:
//	  maxtestdelta: 10
//	  trynegscaling: true
//	separator:
//	  maxaggrs: 3
//	  generators: [cmir, flowcover]
//
// A loaded Config converts into numerics options (Tolerances), parameter
// structs of package cuts, and separator options.
package config
