package parser

import (
	"fmt"

	"github.com/portsh/portsh/lexer"
)

// SyntaxError is a positioned grammar or structure error.  Parsing is
// all-or-nothing: a script that produces a SyntaxError has executed nothing.
type SyntaxError struct {
	Msg  string
	Off  int // byte offset into the source
	Line int // 1-based
	Col  int // 1-based, in runes
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

// bailout carries a SyntaxError up through the recursive descent.  The only
// recover is in Parse.
type bailout struct {
	err *SyntaxError
}

func (p *parser) errorf(off int, format string, args ...any) {
	panic(bailout{&SyntaxError{
		Msg: fmt.Sprintf(format, args...),
		Off: off,
	}})
}

func (p *parser) expected(want string, got lexer.Token) {
	p.errorf(got.Off, "expected %s, got %s", want, got)
}

// lineCol converts a byte offset into a 1-based line and rune column.
func lineCol(src string, off int) (line, col int) {
	if off > len(src) {
		off = len(src)
	}
	line, col = 1, 1
	for _, r := range src[:off] {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
