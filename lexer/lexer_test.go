package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect runs the lexer to completion and returns every emitted token with
// its offset zeroed, so tables only need to state kinds and values.
func collect(t *testing.T, src string) []Token {
	t.Helper()

	l := New(src)
	go l.Run()

	var toks []Token
	for tok := range l.Out {
		tok.Off = 0
		toks = append(toks, tok)
	}
	return toks
}

func TestLex(t *testing.T) {
	for _, tt := range []struct {
		name string
		src  string
		want []Token
	}{
		{
			"simple command",
			"echo hello world",
			[]Token{
				{TokArg, "echo", 0},
				{TokArg, "hello", 0},
				{TokArg, "world", 0},
				{TokEof, "", 0},
			},
		},
		{
			"statement separators",
			"a; b\nc",
			[]Token{
				{TokArg, "a", 0},
				{TokEndStmt, ";", 0},
				{TokArg, "b", 0},
				{TokEndStmt, "\n", 0},
				{TokArg, "c", 0},
				{TokEof, "", 0},
			},
		},
		{
			"logical operators",
			"a && b || c",
			[]Token{
				{TokArg, "a", 0},
				{TokLAnd, "&&", 0},
				{TokArg, "b", 0},
				{TokLOr, "||", 0},
				{TokArg, "c", 0},
				{TokEof, "", 0},
			},
		},
		{
			"pipes and background",
			"a | b & c",
			[]Token{
				{TokArg, "a", 0},
				{TokPipe, "|", 0},
				{TokArg, "b", 0},
				{TokAmp, "&", 0},
				{TokArg, "c", 0},
				{TokEof, "", 0},
			},
		},
		{
			"negation",
			"! true",
			[]Token{
				{TokBang, "!", 0},
				{TokArg, "true", 0},
				{TokEof, "", 0},
			},
		},
		{
			"bang glued to a word is literal",
			"!x",
			[]Token{
				{TokArg, "!x", 0},
				{TokEof, "", 0},
			},
		},
		{
			"subshell parens",
			"(a)",
			[]Token{
				{TokPOpen, "(", 0},
				{TokArg, "a", 0},
				{TokPClose, ")", 0},
				{TokEof, "", 0},
			},
		},
		{
			"single quotes",
			"echo 'hi  $there'",
			[]Token{
				{TokArg, "echo", 0},
				{TokString, "hi  $there", 0},
				{TokEof, "", 0},
			},
		},
		{
			"double quotes with variable",
			`echo "hi $USER"`,
			[]Token{
				{TokArg, "echo", 0},
				{TokString, "hi ", 0},
				{TokConcat, "", 0},
				{TokVarRefQ, "USER", 0},
				{TokConcat, "", 0},
				{TokString, "", 0},
				{TokEof, "", 0},
			},
		},
		{
			"double quote escapes",
			`echo "a\"b\$c\\d\ne"`,
			[]Token{
				{TokArg, "echo", 0},
				{TokString, `a"b$c\d\ne`, 0},
				{TokEof, "", 0},
			},
		},
		{
			"bare variable",
			"$FOO",
			[]Token{
				{TokVarRef, "FOO", 0},
				{TokEof, "", 0},
			},
		},
		{
			"braced variable glued to text",
			"${HOME}/bin",
			[]Token{
				{TokVarRef, "HOME", 0},
				{TokConcat, "", 0},
				{TokArg, "/bin", 0},
				{TokEof, "", 0},
			},
		},
		{
			"lone dollar is literal",
			"echo $",
			[]Token{
				{TokArg, "echo", 0},
				{TokArg, "$", 0},
				{TokEof, "", 0},
			},
		},
		{
			"word concatenation",
			"a'b'\"c\"$D",
			[]Token{
				{TokArg, "a", 0},
				{TokConcat, "", 0},
				{TokString, "b", 0},
				{TokConcat, "", 0},
				{TokString, "c", 0},
				{TokConcat, "", 0},
				{TokVarRef, "D", 0},
				{TokEof, "", 0},
			},
		},
		{
			"redirections",
			"a < in > out >> log",
			[]Token{
				{TokArg, "a", 0},
				{TokRead, "<", 0},
				{TokArg, "in", 0},
				{TokWrite, ">", 0},
				{TokArg, "out", 0},
				{TokAppend, ">>", 0},
				{TokArg, "log", 0},
				{TokEof, "", 0},
			},
		},
		{
			"fd-prefixed redirections",
			"a 2> err 2>> log 2>&1",
			[]Token{
				{TokArg, "a", 0},
				{TokWrite, "2>", 0},
				{TokArg, "err", 0},
				{TokAppend, "2>>", 0},
				{TokArg, "log", 0},
				{TokDup, "2>&1", 0},
				{TokEof, "", 0},
			},
		},
		{
			"leading digits without an operator are a word",
			"echo 2nd",
			[]Token{
				{TokArg, "echo", 0},
				{TokArg, "2nd", 0},
				{TokEof, "", 0},
			},
		},
		{
			"backslash escapes",
			`a\ b c\$d`,
			[]Token{
				{TokArg, "a b", 0},
				{TokArg, "c$d", 0},
				{TokEof, "", 0},
			},
		},
		{
			"line continuation",
			"ec\\\nho hi",
			[]Token{
				{TokArg, "echo", 0},
				{TokArg, "hi", 0},
				{TokEof, "", 0},
			},
		},
		{
			"comments run to end of line",
			"echo hi # ignored ; | &&\necho bye",
			[]Token{
				{TokArg, "echo", 0},
				{TokArg, "hi", 0},
				{TokEndStmt, "\n", 0},
				{TokArg, "echo", 0},
				{TokArg, "bye", 0},
				{TokEof, "", 0},
			},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collect(t, tt.src))
		})
	}
}

func TestLexErrors(t *testing.T) {
	for _, tt := range []struct {
		name string
		src  string
		msg  string
	}{
		{"unterminated single quote", "echo 'abc", "unterminated single-quoted string"},
		{"unterminated double quote", `echo "abc`, "unterminated double-quoted string"},
		{"empty braced variable", "echo ${", "missing variable name after ‘${’"},
		{"unterminated braced variable", "echo ${FOO", "unterminated braced variable ‘${FOO’"},
		{"dup without target fd", "a 2>&", "expected a file descriptor after ‘2>&’"},
		{"trailing backslash", `echo abc\`, "trailing backslash"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			toks := collect(t, tt.src)
			require.NotEmpty(t, toks)

			last := toks[len(toks)-1]
			assert.Equal(t, TokError, last.Kind)
			assert.Equal(t, tt.msg, last.Val)
		})
	}
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "‘echo’", Token{TokArg, "echo", 0}.String())
	assert.Equal(t, "‘$HOME’", Token{TokVarRef, "HOME", 0}.String())
	assert.Equal(t, "end of file", Token{TokEof, "", 0}.String())
	assert.Equal(t, "‘2>&1’", Token{TokDup, "2>&1", 0}.String())

	long := Token{TokArg, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", 0}
	assert.Equal(t, "‘aaaaaaaaaaaaaaaaaaaa…’", long.String())
}
