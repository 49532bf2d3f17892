package vm

// commandResult is the outcome of executing any node.  Most results are plain
// exit codes; the remaining variants carry control flow the ‘&&’/‘||’/‘;’
// operators must never swallow.
type commandResult interface {
	ExitCode() int
}

// errExitCode is an ordinary exit status.
type errExitCode int

func (e errExitCode) ExitCode() int {
	return int(e)
}

// errExit is a request from the ‘exit’ builtin to terminate the whole script
// with this status.
type errExit int

func (e errExit) ExitCode() int {
	return int(e)
}

// errCancelled marks a scope torn down by cooperative cancellation.  It is
// distinguishable from every exit code and propagates through all open
// scopes.
type errCancelled struct{}

func (errCancelled) ExitCode() int {
	return 130
}

// errInternal wraps an interpreter-level failure such as pipe allocation.
type errInternal struct {
	err error
}

func (errInternal) ExitCode() int {
	return 1
}

func (e errInternal) Error() string {
	return e.err.Error()
}

// isFatal reports whether res must stop sequential execution immediately
// instead of flowing through exit-code logic.
func isFatal(res commandResult) bool {
	switch res.(type) {
	case errExit, errCancelled:
		return true
	}
	return false
}
