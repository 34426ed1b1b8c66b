//go:build tools

// Package tools declares tool dependencies for this module.
//
// These imports are not used at runtime. They keep mockgen, invoked through
// go generate, tracked in go.mod.
package healthyliving

import (
	_ "go.uber.org/mock/mockgen"
)
