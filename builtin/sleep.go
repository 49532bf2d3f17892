package builtin

import (
	"context"
	"strconv"
	"time"
)

func sleep(ctx context.Context, inv *Invocation) Result {
	if len(inv.Args) == 0 {
		inv.errorf("missing operand")
		return code(1)
	}

	var total time.Duration
	for _, arg := range inv.Args {
		d, err := parseDuration(arg)
		if err != nil {
			inv.errorf("invalid interval ‘%s’", arg)
			return code(1)
		}
		total += d
	}

	timer := time.NewTimer(total)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return code(130)
	case <-timer.C:
		return code(0)
	}
}

// parseDuration accepts plain (possibly fractional) seconds like coreutils
// sleep, or any Go duration string such as ‘500ms’.
func parseDuration(s string) (time.Duration, error) {
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		if secs < 0 {
			return 0, strconv.ErrRange
		}
		return time.Duration(secs * float64(time.Second)), nil
	}
	return time.ParseDuration(s)
}
