package builtin

import "context"

func mkdir(_ context.Context, inv *Invocation) Result {
	opts := inv.flags()
	parents := opts.Bool('p', "make parent directories as needed")
	if !inv.parse(opts) {
		return code(2)
	}

	if len(opts.Args()) == 0 {
		inv.errorf("missing operand")
		return code(1)
	}

	status := 0
	for _, arg := range opts.Args() {
		dst := inv.Env.Abs(arg)
		var err error
		if *parents {
			err = inv.Fsys.MkdirAll(dst, 0o755)
		} else {
			err = inv.Fsys.Mkdir(dst, 0o755)
		}
		if err != nil {
			inv.errorf("cannot create directory ‘%s’: %s", arg, err)
			status = 1
		}
	}
	return code(status)
}
