package lexer

import (
	"strings"
	"unicode"
)

type lexFn func(*lexer) lexFn

func lexDefault(l *lexer) lexFn {
	for {
		l.start = l.pos
		switch r := l.next(); {
		case r == eof:
			l.emit(TokEof)
			return nil
		case isEol(r):
			l.emit(TokEndStmt)
		case r == '#':
			return skipComment
		case r == '&':
			return lexAmp
		case r == '|':
			return lexPipe
		case r == '!':
			if p := l.peek(); p == eof || isEol(p) || unicode.IsSpace(p) {
				l.emit(TokBang)
				continue
			}
			l.backup()
			return lexArg
		case r == '(':
			l.emit(TokPOpen)
		case r == ')':
			l.emit(TokPClose)
		case r == '\'':
			l.backup()
			return lexStringSingle
		case r == '"':
			l.backup()
			return lexStringDouble
		case r == '$':
			l.backup()
			return lexVarRef
		case r == '<' || r == '>':
			l.backup()
			return lexRedir
		case r >= '0' && r <= '9':
			l.backup()
			if redirAhead(l.input[l.pos:]) {
				return lexRedir
			}
			return lexArg
		case unicode.IsSpace(r):
		default:
			l.backup()
			return lexArg
		}
	}
}

func skipComment(l *lexer) lexFn {
	if i := strings.IndexByte(l.input[l.pos:], '\n'); i != -1 {
		l.pos += i
	} else {
		l.pos = len(l.input)
	}
	l.start = l.pos
	return lexDefault
}

func lexAmp(l *lexer) lexFn {
	switch l.peek() {
	case '&':
		l.next()
		l.emit(TokLAnd)
	default:
		l.emit(TokAmp)
	}
	return lexDefault
}

func lexPipe(l *lexer) lexFn {
	switch l.peek() {
	case '|':
		l.next()
		l.emit(TokLOr)
	default:
		l.emit(TokPipe)
	}
	return lexDefault
}

// redirAhead reports whether s begins with a file-descriptor number glued to a
// redirection operator, e.g. ‘2>’ in ‘2>&1’.
func redirAhead(s string) bool {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i < len(s) && (s[i] == '>' || s[i] == '<')
}

func lexRedir(l *lexer) lexFn {
	off := l.pos
	start := l.pos
	for {
		if r := l.next(); r < '0' || r > '9' {
			l.backup()
			break
		}
	}
	fd := l.input[start:l.pos]

	switch r := l.next(); r {
	case '<':
		l.out(Token{TokRead, fd + "<", off})
	case '>':
		switch l.peek() {
		case '>':
			l.next()
			l.out(Token{TokAppend, fd + ">>", off})
		case '&':
			l.next()
			dst := l.pos
			for {
				if r := l.next(); r < '0' || r > '9' {
					l.backup()
					break
				}
			}
			if l.pos == dst {
				return l.errorf(off, "expected a file descriptor after ‘%s>&’", fd)
			}
			l.out(Token{TokDup, fd + ">&" + l.input[dst:l.pos], off})
		default:
			l.out(Token{TokWrite, fd + ">", off})
		}
	default:
		panic("unreachable")
	}
	return lexDefault
}

func lexArg(l *lexer) lexFn {
	off := l.pos
	sb := strings.Builder{}
	for {
		switch r := l.next(); {
		case r == '\\':
			switch c := l.next(); c {
			case eof:
				return l.errorf(l.pos, "trailing backslash")
			case '\n': // line continuation
			default:
				sb.WriteRune(c)
			}
		case r == eof || isEol(r) || unicode.IsSpace(r) || isMetaChar(r):
			l.backup()
			l.out(Token{TokArg, sb.String(), off})
			return lexMaybeConcat
		default:
			sb.WriteRune(r)
		}
	}
}

func lexVarRef(l *lexer) lexFn {
	off := l.pos
	l.next() // Consume ‘$’

	kind := TokVarRef
	if l.inQuotes {
		kind = TokVarRefQ
	}

	// Optional surrounding braces
	braces := false
	if l.peek() == '{' {
		braces = true
		l.next()
	}

	start := l.pos
	for {
		if r := l.peek(); !isNameRune(r, l.pos == start) {
			break
		}
		l.next()
	}
	name := l.input[start:l.pos]

	if name == "" {
		if braces {
			return l.errorf(off, "missing variable name after ‘${’")
		}
		// A lone ‘$’ is a literal.
		if l.inQuotes {
			l.out(Token{TokString, "$", off})
			return lexStringDouble
		}
		l.out(Token{TokArg, "$", off})
		return lexMaybeConcat
	}

	if braces {
		if l.peek() != '}' {
			return l.errorf(off, "unterminated braced variable ‘${%s’", name)
		}
		l.next() // Consume closing brace
	}

	l.out(Token{kind, name, off})
	if l.inQuotes {
		return lexStringDouble
	}
	return lexMaybeConcat
}

func lexStringSingle(l *lexer) lexFn {
	off := l.pos
	l.next() // Consume opening quote
	l.start = l.pos

	i := strings.IndexByte(l.input[l.pos:], '\'')
	if i < 0 {
		return l.errorf(off, "unterminated single-quoted string")
	}
	l.pos += i
	l.out(Token{TokString, l.input[l.start:l.pos], off})
	l.next() // Consume closing quote
	return lexMaybeConcat
}

func lexStringDouble(l *lexer) lexFn {
	off := l.pos

	// Re-entered after a variable reference inside the quotes; the segments
	// on either side of the reference are separate tokens glued by TokConcat.
	if l.inQuotes {
		l.out(Token{TokConcat, "", l.pos})
		l.inQuotes = false
	} else {
		l.next() // Consume opening quote
	}

	sb := strings.Builder{}
	for {
		switch r := l.next(); r {
		case eof:
			return l.errorf(off, "unterminated double-quoted string")
		case '\\':
			switch c := l.next(); c {
			case '\\', '$', '"':
				sb.WriteRune(c)
			case eof:
				return l.errorf(l.pos, "trailing backslash")
			default:
				sb.WriteRune('\\')
				sb.WriteRune(c)
			}
		case '$':
			l.backup()
			l.inQuotes = true
			l.out(Token{TokString, sb.String(), off})
			return lexMaybeConcat
		case '"':
			l.out(Token{TokString, sb.String(), off})
			return lexMaybeConcat
		default:
			sb.WriteRune(r)
		}
	}
}

func lexMaybeConcat(l *lexer) lexFn {
	switch r := l.peek(); {
	case r == '\'':
		l.out(Token{TokConcat, "", l.pos})
		return lexStringSingle
	case r == '"':
		l.out(Token{TokConcat, "", l.pos})
		return lexStringDouble
	case r == '$':
		l.out(Token{TokConcat, "", l.pos})
		return lexVarRef
	case r == eof || isEol(r) || unicode.IsSpace(r) || isMetaChar(r):
		return lexDefault
	}
	l.out(Token{TokConcat, "", l.pos})
	return lexArg
}
