package lexer

import "fmt"

type TokenType int

const (
	// TokError is the token emitted during a lexing error.  It signals the end
	// of lexical analysis.
	TokError TokenType = iota

	TokEndStmt // End of statement, either a newline or semicolon
	TokEof     // End of file

	TokArg     // An unquoted word segment with escapes resolved
	TokString  // A quoted word segment, never expanded further
	TokVarRef  // A variable reference outside quotes
	TokVarRefQ // A variable reference inside double quotes
	TokConcat  // Glue between adjacent segments of one word

	TokRead   // The ‘<’ operator
	TokWrite  // The ‘>’ operator, optionally fd-prefixed
	TokAppend // The ‘>>’ operator, optionally fd-prefixed
	TokDup    // The ‘n>&m’ operator

	TokPipe // The ‘|’ operator
	TokAmp  // The ‘&’ operator
	TokLAnd // The ‘&&’ operator
	TokLOr  // The ‘||’ operator
	TokBang // The ‘!’ pipeline negation

	TokPOpen  // The ‘(’ subshell opener
	TokPClose // The ‘)’ subshell closer
)

// Token is a single lexeme.  Off is the byte offset of the token's first
// character in the source text, used for positioned diagnostics.
type Token struct {
	Kind TokenType
	Val  string
	Off  int
}

// Maximum length of a string before truncation in diagnostics printing
const maxStrLen = 20

func (t Token) String() string {
	switch t.Kind {
	case TokError:
		return "error: " + t.Val

	case TokEndStmt:
		return "end of statement"
	case TokEof:
		return "end of file"

	case TokArg, TokString:
		if len(t.Val) > maxStrLen {
			return fmt.Sprintf("‘%.*s…’", maxStrLen, t.Val)
		}
		return fmt.Sprintf("‘%s’", t.Val)
	case TokVarRef, TokVarRefQ:
		return "‘$" + t.Val + "’"
	case TokConcat:
		return "concatenation"

	case TokRead, TokWrite, TokAppend, TokDup:
		return "‘" + t.Val + "’"

	case TokPipe:
		return "‘|’"
	case TokAmp:
		return "‘&’"
	case TokLAnd:
		return "‘&&’"
	case TokLOr:
		return "‘||’"
	case TokBang:
		return "‘!’"

	case TokPOpen:
		return "‘(’"
	case TokPClose:
		return "‘)’"
	}

	panic("unreachable")
}

// IsValue reports whether kind can begin or continue a word.
func IsValue(kind TokenType) bool {
	return kind == TokArg ||
		kind == TokString ||
		kind == TokVarRef ||
		kind == TokVarRefQ
}

// IsRedir reports whether kind is a redirection operator.
func IsRedir(kind TokenType) bool {
	return kind == TokRead ||
		kind == TokWrite ||
		kind == TokAppend ||
		kind == TokDup
}
