//go:build tools
// +build tools

// Package tools pins build-time tool dependencies so `go mod tidy` keeps
// them in go.sum without any non-test code importing them directly.
package tools

import (
	_ "github.com/client9/misspell/cmd/misspell"
)
