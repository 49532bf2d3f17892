package builtin

import (
	"context"
	"fmt"
	"strings"
)

func echo(_ context.Context, inv *Invocation) Result {
	opts := inv.flags()
	noNewline := opts.Bool('n', "do not output the trailing newline")
	if !inv.parse(opts) {
		return code(2)
	}

	out := strings.Join(opts.Args(), " ")
	if !*noNewline {
		out += "\n"
	}
	fmt.Fprint(inv.Stdout, out)
	return code(0)
}
