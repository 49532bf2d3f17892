package parser

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/portsh/portsh/ast"
	"github.com/portsh/portsh/lexer"
)

func (p *parser) parseProgram(stop lexer.TokenType) ast.Program {
	prog := ast.Program{}

	for {
		switch t := p.peek(); t.Kind {
		case lexer.TokEndStmt:
			p.next()
		case stop, lexer.TokEof:
			return prog
		default:
			prog = append(prog, p.parseItem())
		}
	}
}

func (p *parser) parseItem() ast.Item {
	item := ast.Item{List: p.parseCommandList()}

	if p.peek().Kind == lexer.TokAmp {
		p.next()
		item.Background = true
		// ‘&’ is itself an item separator; ‘sleep 1 & echo hi’ is two items.
		return item
	}

	switch t := p.peek(); t.Kind {
	case lexer.TokEndStmt, lexer.TokEof, lexer.TokPClose:
	default:
		p.expected("‘;’ or newline after command", t)
	}
	return item
}

func (p *parser) parseCommandList() ast.CommandList {
	list := ast.CommandList{Rhs: p.parsePipeline()}

	for {
		var op ast.BinaryOp
		switch p.peek().Kind {
		case lexer.TokLAnd:
			op = ast.LAnd
		case lexer.TokLOr:
			op = ast.LOr
		default:
			return list
		}
		p.next() // Consume operator

		// A chain may continue on the next line.
		for p.peek().Kind == lexer.TokEndStmt {
			p.next()
		}

		lhs := list
		list = ast.CommandList{Lhs: &lhs, Op: op, Rhs: p.parsePipeline()}
	}
}

func (p *parser) parsePipeline() ast.Pipeline {
	pl := ast.Pipeline{}

	if p.peek().Kind == lexer.TokBang {
		p.next()
		pl.Negate = true
	}

	pl.Cmds = append(pl.Cmds, p.parseCommand())
	for p.peek().Kind == lexer.TokPipe {
		p.next()
		for p.peek().Kind == lexer.TokEndStmt {
			p.next()
		}
		pl.Cmds = append(pl.Cmds, p.parseCommand())
	}
	return pl
}

func (p *parser) parseCommand() ast.Command {
	switch t := p.peek(); {
	case t.Kind == lexer.TokPOpen:
		return p.parseSubshell()
	case lexer.IsValue(t.Kind) || lexer.IsRedir(t.Kind):
		return p.parseSimple()
	default:
		p.expected("a command", t)
		panic("unreachable")
	}
}

func (p *parser) parseSubshell() ast.Subshell {
	open := p.next() // Consume ‘(’
	body := p.parseProgram(lexer.TokPClose)

	if t := p.next(); t.Kind != lexer.TokPClose {
		p.expected("‘)’ to close subshell", t)
	}

	sub := ast.Subshell{Body: body, Off: open.Off}
	for lexer.IsRedir(p.peek().Kind) {
		sub.Redirs = append(sub.Redirs, p.parseRedirect())
	}
	return sub
}

func (p *parser) parseSimple() ast.Simple {
	cmd := ast.Simple{Off: p.peek().Off}

	for {
		switch t := p.peek(); {
		case lexer.IsValue(t.Kind):
			word := p.parseWord()
			if name, value, ok := splitAssign(word); ok && len(cmd.Args) == 0 {
				cmd.Assigns = append(cmd.Assigns, ast.Assign{Name: name, Value: value})
				continue
			}
			cmd.Args = append(cmd.Args, word)
		case lexer.IsRedir(t.Kind):
			cmd.Redirs = append(cmd.Redirs, p.parseRedirect())
		default:
			return cmd
		}
	}
}

func (p *parser) parseWord() ast.Word {
	word := ast.Word{p.parsePart()}
	for p.peek().Kind == lexer.TokConcat {
		p.next()
		word = append(word, p.parsePart())
	}
	return word
}

func (p *parser) parsePart() ast.Part {
	switch t := p.next(); t.Kind {
	case lexer.TokArg:
		return ast.Lit(t.Val)
	case lexer.TokString:
		return ast.Quoted(t.Val)
	case lexer.TokVarRef:
		return ast.VarRef{Name: t.Val}
	case lexer.TokVarRefQ:
		return ast.VarRef{Name: t.Val, Quoted: true}
	default:
		p.expected("a word segment", t)
		panic("unreachable")
	}
}

func (p *parser) parseRedirect() ast.Redirect {
	t := p.next()
	r := ast.Redirect{Off: t.Off}

	op := t.Val
	i := strings.IndexAny(op, "<>")
	fd := op[:i]

	switch t.Kind {
	case lexer.TokRead:
		r.Kind, r.SrcFD = ast.RedirRead, 0
	case lexer.TokWrite:
		r.Kind, r.SrcFD = ast.RedirWrite, 1
	case lexer.TokAppend:
		r.Kind, r.SrcFD = ast.RedirAppend, 1
	case lexer.TokDup:
		r.Kind, r.SrcFD = ast.RedirDup, 1
	default:
		panic("unreachable")
	}

	if fd != "" {
		n, err := strconv.Atoi(fd)
		switch {
		case err != nil || n > 2:
			p.errorf(t.Off, "unsupported file descriptor %s in %s", fd, t)
		case r.Kind == ast.RedirRead && n != 0:
			p.errorf(t.Off, "cannot read from file descriptor %s in %s", fd, t)
		case r.Kind != ast.RedirRead && n == 0:
			p.errorf(t.Off, "cannot write to standard input in %s", t)
		}
		r.SrcFD = n
	}

	if r.Kind == ast.RedirDup {
		dst := op[strings.IndexByte(op, '&')+1:]
		n, err := strconv.Atoi(dst)
		if err != nil || n == 0 || n > 2 {
			p.errorf(t.Off, "unsupported file descriptor %s in %s", dst, t)
		}
		r.DstFD = n
		return r
	}

	if !lexer.IsValue(p.peek().Kind) {
		p.expected("a redirection target", p.peek())
	}
	r.Target = p.parseWord()
	return r
}

// splitAssign recognizes a ‘NAME=value’ word.  The name must come from an
// unquoted literal; everything after the first ‘=’, including any further
// parts of the word, is the value.
func splitAssign(word ast.Word) (name string, value ast.Word, ok bool) {
	lit, ok := word[0].(ast.Lit)
	if !ok {
		return "", nil, false
	}

	i := strings.IndexByte(string(lit), '=')
	if i < 1 || !validName(string(lit[:i])) {
		return "", nil, false
	}

	value = ast.Word{}
	if rest := lit[i+1:]; rest != "" {
		value = append(value, rest)
	}
	value = append(value, word[1:]...)
	return string(lit[:i]), value, true
}

func validName(s string) bool {
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return s != ""
}
