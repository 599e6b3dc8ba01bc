// Package assert panics on broken programmer invariants. It is never used to validate input coming
// from outside the module: input is degraded to safe defaults instead.
package assert

import "github.com/oomph-ac/charsim/oerror"

// IsTrue panics with a formatted *oerror.Error if ok is false.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}

// Unreachable panics unconditionally. It marks switch arms that a closed set of types cannot reach.
func Unreachable(message string, args ...any) {
	panic(oerror.New("unreachable: "+message, args...))
}
