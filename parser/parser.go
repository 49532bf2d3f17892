// Package parser turns script text into an ast.Program.  It consumes the
// token stream produced by the lexer running in its own goroutine and either
// returns a complete tree or a single positioned SyntaxError.
package parser

import (
	"github.com/portsh/portsh/ast"
	"github.com/portsh/portsh/lexer"
)

type parser struct {
	toks  <-chan lexer.Token
	cache *lexer.Token
}

// Parse parses a whole script.  On failure the returned error is a
// *SyntaxError and the program is nil; no prefix of an invalid script is ever
// handed to the executor.
func Parse(src string) (prog ast.Program, err error) {
	l := lexer.New(src)
	go l.Run()

	p := &parser{toks: l.Out}

	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			// Let the lexer goroutine run to completion.
			for range p.toks {
			}
			b.err.Line, b.err.Col = lineCol(src, b.err.Off)
			prog, err = nil, b.err
		}
	}()

	prog = p.parseProgram(lexer.TokEof)
	return prog, nil
}

func (p *parser) next() lexer.Token {
	var t lexer.Token
	if p.cache != nil {
		t, p.cache = *p.cache, nil
	} else {
		t = <-p.toks
	}
	if t.Kind == lexer.TokError {
		p.errorf(t.Off, "%s", t.Val)
	}
	return t
}

func (p *parser) peek() lexer.Token {
	if p.cache == nil {
		t := <-p.toks
		p.cache = &t
	}
	if p.cache.Kind == lexer.TokError {
		p.errorf(p.cache.Off, "%s", p.cache.Val)
	}
	return *p.cache
}
