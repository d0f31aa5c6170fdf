// SPDX-License-Identifier: MIT
// Package: lvcuts/config

package config

import "errors"

var (
	// ErrInvalid indicates a value outside its documented range.
	ErrInvalid = errors.New("config: invalid value")

	// ErrDecode indicates a YAML syntax error or an unknown key.
	ErrDecode = errors.New("config: decode failed")
)
