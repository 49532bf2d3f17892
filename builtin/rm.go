package builtin

import (
	"context"
	"os"
)

func rm(_ context.Context, inv *Invocation) Result {
	opts := inv.flags()
	recursive := opts.Bool('r', "remove directories and their contents recursively")
	force := opts.Bool('f', "ignore nonexistent files, never prompt")
	if !inv.parse(opts) {
		return code(2)
	}

	if len(opts.Args()) == 0 {
		if *force {
			return code(0)
		}
		inv.errorf("missing operand")
		return code(1)
	}

	status := 0
	for _, arg := range opts.Args() {
		dst := inv.Env.Abs(arg)

		info, err := inv.Fsys.Stat(dst)
		if err != nil {
			if !*force {
				inv.errorf("cannot remove ‘%s’: no such file or directory", arg)
				status = 1
			}
			continue
		}
		if info.IsDir() && !*recursive {
			inv.errorf("cannot remove ‘%s’: is a directory", arg)
			status = 1
			continue
		}

		if *recursive {
			err = inv.Fsys.RemoveAll(dst)
		} else {
			err = inv.Fsys.Remove(dst)
		}
		if err != nil && !(*force && os.IsNotExist(err)) {
			inv.errorf("cannot remove ‘%s’: %s", arg, err)
			status = 1
		}
	}
	return code(status)
}
