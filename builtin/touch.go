package builtin

import (
	"context"
	"os"
	"time"
)

func touch(_ context.Context, inv *Invocation) Result {
	if len(inv.Args) == 0 {
		inv.errorf("missing operand")
		return code(1)
	}

	status := 0
	now := time.Now()
	for _, arg := range inv.Args {
		dst := inv.Env.Abs(arg)

		if _, err := inv.Fsys.Stat(dst); err == nil {
			if err := inv.Fsys.Chtimes(dst, now, now); err != nil {
				inv.errorf("cannot touch ‘%s’: %s", arg, err)
				status = 1
			}
			continue
		}

		fd, err := inv.Fsys.OpenFile(dst, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			inv.errorf("cannot touch ‘%s’: %s", arg, err)
			status = 1
			continue
		}
		fd.Close()
	}
	return code(status)
}
