package builtin

import "context"

func true_(_ context.Context, _ *Invocation) Result {
	return code(0)
}
