package builtin

import (
	"context"
	"fmt"
	"strings"
)

func export(_ context.Context, inv *Invocation) Result {
	if len(inv.Args) == 0 {
		for _, name := range inv.Env.Exported() {
			val, _ := inv.Env.Get(name)
			fmt.Fprintf(inv.Stdout, "export %s=%s\n", name, val)
		}
		return code(0)
	}

	for _, arg := range inv.Args {
		name, value, hasValue := strings.Cut(arg, "=")
		if name == "" {
			inv.errorf("invalid name ‘%s’", arg)
			return code(1)
		}
		if hasValue {
			inv.Env.Set(name, value, true)
		} else {
			// Exporting an unset name is not an error.
			inv.Env.Export(name, "")
		}
	}
	return code(0)
}
