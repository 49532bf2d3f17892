package builtin

import "context"

func unset(_ context.Context, inv *Invocation) Result {
	// Unsetting an unknown name is not an error.
	for _, name := range inv.Args {
		inv.Env.Unset(name)
	}
	return code(0)
}
