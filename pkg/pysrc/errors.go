package pysrc

import (
	"fmt"
)

// Common outline errors.
var (
	// ErrSyntax is returned when a source file does not parse as Python.
	ErrSyntax = fmt.Errorf("python syntax error")
)
