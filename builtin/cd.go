package builtin

import "context"

func cd(_ context.Context, inv *Invocation) Result {
	var dst string
	back := len(inv.Args) == 1 && inv.Args[0] == "-"

	switch {
	case len(inv.Args) == 0:
		home, ok := inv.Env.Get("HOME")
		if !ok || home == "" {
			inv.errorf("HOME not set")
			return code(1)
		}
		dst = home
	case back:
		prev, ok := inv.Dirs.Pop()
		if !ok {
			inv.errorf("no previous directory")
			return code(1)
		}
		dst = prev
	case len(inv.Args) == 1:
		dst = inv.Args[0]
	default:
		inv.errorf("too many arguments")
		return code(1)
	}

	prev := inv.Env.Cwd()
	if err := inv.Env.Chdir(dst); err != nil {
		inv.errorf("%s", err)
		return code(1)
	}

	if !back {
		inv.Dirs.Push(prev)
	}
	inv.Env.Assign("OLDPWD", prev)
	inv.Env.Assign("PWD", inv.Env.Cwd())
	return code(0)
}
