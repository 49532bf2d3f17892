package builtin

import (
	"context"
	"fmt"
)

func pwd(_ context.Context, inv *Invocation) Result {
	fmt.Fprintln(inv.Stdout, inv.Env.Cwd())
	return code(0)
}
