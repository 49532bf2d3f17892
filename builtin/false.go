package builtin

import "context"

func false_(_ context.Context, _ *Invocation) Result {
	return code(1)
}
