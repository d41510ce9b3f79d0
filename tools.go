//go:build tools

package tools

// Pins the mockgen binary used by the //go:generate directives.
import (
	_ "go.uber.org/mock/mockgen"
)
