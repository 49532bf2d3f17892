package builtin

import "context"

func cat(ctx context.Context, inv *Invocation) Result {
	if len(inv.Args) == 0 {
		if err := copyAll(ctx, inv.Stdout, inv.Stdin); err != nil {
			inv.errorf("%s", err)
			return code(1)
		}
		return code(0)
	}

	status := 0
	for _, arg := range inv.Args {
		if arg == "-" {
			if err := copyAll(ctx, inv.Stdout, inv.Stdin); err != nil {
				inv.errorf("%s", err)
				status = 1
			}
			continue
		}

		fd, err := inv.Fsys.Open(inv.Env.Abs(arg))
		if err != nil {
			inv.errorf("%s: no such file or directory", arg)
			status = 1
			continue
		}
		err = copyAll(ctx, inv.Stdout, fd)
		fd.Close()
		if err != nil {
			inv.errorf("%s", err)
			status = 1
		}
	}
	return code(status)
}
