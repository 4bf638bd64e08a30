package assert

import "github.com/oomph-ac/grip/oerror"

// IsTrue panics with a *oerror.GripError built from message and args if ok is false. It is only
// used for invariants that cannot be broken by callers, so a panic always points at a bug in grip.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
