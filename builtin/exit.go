package builtin

import (
	"context"
	"strconv"
)

func exit(_ context.Context, inv *Invocation) Result {
	switch len(inv.Args) {
	case 0:
		return Result{Code: inv.LastStatus, Exit: true}
	case 1:
		n, err := strconv.Atoi(inv.Args[0])
		if err != nil {
			inv.errorf("numeric argument required: ‘%s’", inv.Args[0])
			return Result{Code: 2, Exit: true}
		}
		// Exit codes follow the 0–255 process convention.
		return Result{Code: n & 0xff, Exit: true}
	default:
		inv.errorf("too many arguments")
		return code(1)
	}
}
