package parser

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portsh/portsh/ast"
)

func mustParse(t *testing.T, src string) ast.Program {
	t.Helper()
	prog, err := Parse(src)
	require.NoError(t, err)
	return prog
}

func simple(t *testing.T, cmd ast.Command) ast.Simple {
	t.Helper()
	s, ok := cmd.(ast.Simple)
	require.True(t, ok, "expected a simple command, got %T", cmd)
	return s
}

func TestParseSimple(t *testing.T) {
	prog := mustParse(t, "echo hello world")
	require.Len(t, prog, 1)

	assert.False(t, prog[0].Background)
	assert.Nil(t, prog[0].List.Lhs)

	pl := prog[0].List.Rhs
	assert.False(t, pl.Negate)
	require.Len(t, pl.Cmds, 1)

	cmd := simple(t, pl.Cmds[0])
	assert.Equal(t, []ast.Word{
		{ast.Lit("echo")},
		{ast.Lit("hello")},
		{ast.Lit("world")},
	}, cmd.Args)
	assert.Empty(t, cmd.Assigns)
	assert.Empty(t, cmd.Redirs)
}

func TestParseListAssociativity(t *testing.T) {
	// ‘a && b || c’ groups as ‘(a && b) || c’.
	prog := mustParse(t, "a && b || c")
	require.Len(t, prog, 1)

	list := prog[0].List
	assert.Equal(t, ast.LOr, list.Op)
	require.NotNil(t, list.Lhs)
	assert.Equal(t, ast.LAnd, list.Lhs.Op)
	require.NotNil(t, list.Lhs.Lhs)
	assert.Nil(t, list.Lhs.Lhs.Lhs)
}

func TestParseListContinuesAcrossNewlines(t *testing.T) {
	prog := mustParse(t, "a &&\n\nb")
	require.Len(t, prog, 1)
	require.NotNil(t, prog[0].List.Lhs)
}

func TestParsePipeline(t *testing.T) {
	prog := mustParse(t, "! cat f | grep x |\n wc")
	require.Len(t, prog, 1)

	pl := prog[0].List.Rhs
	assert.True(t, pl.Negate)
	assert.Len(t, pl.Cmds, 3)
}

func TestParseBackground(t *testing.T) {
	// ‘&’ both marks the item and separates it from the next one.
	prog := mustParse(t, "sleep 1 & echo hi")
	require.Len(t, prog, 2)
	assert.True(t, prog[0].Background)
	assert.False(t, prog[1].Background)
}

func TestParseAssignments(t *testing.T) {
	t.Run("prefix", func(t *testing.T) {
		prog := mustParse(t, "FOO=bar BAZ= cmd x")
		cmd := simple(t, prog[0].List.Rhs.Cmds[0])

		require.Len(t, cmd.Assigns, 2)
		assert.Equal(t, "FOO", cmd.Assigns[0].Name)
		assert.Equal(t, ast.Word{ast.Lit("bar")}, cmd.Assigns[0].Value)
		assert.Equal(t, "BAZ", cmd.Assigns[1].Name)
		assert.Equal(t, ast.Word{}, cmd.Assigns[1].Value)
		assert.Len(t, cmd.Args, 2)
	})

	t.Run("bare", func(t *testing.T) {
		prog := mustParse(t, "FOO=bar")
		cmd := simple(t, prog[0].List.Rhs.Cmds[0])
		assert.Len(t, cmd.Assigns, 1)
		assert.Empty(t, cmd.Args)
	})

	t.Run("after first argument it is a plain word", func(t *testing.T) {
		prog := mustParse(t, "env FOO=bar")
		cmd := simple(t, prog[0].List.Rhs.Cmds[0])
		assert.Empty(t, cmd.Assigns)
		assert.Equal(t, []ast.Word{
			{ast.Lit("env")},
			{ast.Lit("FOO=bar")},
		}, cmd.Args)
	})

	t.Run("quoted name is not an assignment", func(t *testing.T) {
		prog := mustParse(t, `"FOO"=bar`)
		cmd := simple(t, prog[0].List.Rhs.Cmds[0])
		assert.Empty(t, cmd.Assigns)
		assert.Len(t, cmd.Args, 1)
	})
}

func TestParseRedirects(t *testing.T) {
	prog := mustParse(t, "cmd < in > out 2>> log 2>&1")
	cmd := simple(t, prog[0].List.Rhs.Cmds[0])

	require.Len(t, cmd.Redirs, 4)

	assert.Equal(t, ast.RedirRead, cmd.Redirs[0].Kind)
	assert.Equal(t, 0, cmd.Redirs[0].SrcFD)
	assert.Equal(t, ast.Word{ast.Lit("in")}, cmd.Redirs[0].Target)

	assert.Equal(t, ast.RedirWrite, cmd.Redirs[1].Kind)
	assert.Equal(t, 1, cmd.Redirs[1].SrcFD)

	assert.Equal(t, ast.RedirAppend, cmd.Redirs[2].Kind)
	assert.Equal(t, 2, cmd.Redirs[2].SrcFD)

	assert.Equal(t, ast.RedirDup, cmd.Redirs[3].Kind)
	assert.Equal(t, 2, cmd.Redirs[3].SrcFD)
	assert.Equal(t, 1, cmd.Redirs[3].DstFD)
	assert.Nil(t, cmd.Redirs[3].Target)
}

func TestParseSubshell(t *testing.T) {
	prog := mustParse(t, "(cd /tmp; pwd) > log")
	require.Len(t, prog, 1)

	sub, ok := prog[0].List.Rhs.Cmds[0].(ast.Subshell)
	require.True(t, ok)
	assert.Len(t, sub.Body, 2)
	require.Len(t, sub.Redirs, 1)
	assert.Equal(t, ast.RedirWrite, sub.Redirs[0].Kind)
}

func TestParseErrors(t *testing.T) {
	for _, tt := range []struct {
		name string
		src  string
		msg  string
		line int
		col  int
	}{
		{
			"pipe into nothing",
			"echo |",
			"expected a command, got end of file",
			1, 7,
		},
		{
			"stray close paren",
			")",
			"expected a command, got ‘)’",
			1, 1,
		},
		{
			"unterminated subshell",
			"(echo hi",
			"expected ‘)’ to close subshell, got end of file",
			1, 9,
		},
		{
			"unterminated string",
			"echo 'abc",
			"unterminated single-quoted string",
			1, 6,
		},
		{
			"missing redirect target",
			"echo >",
			"expected a redirection target, got end of file",
			1, 7,
		},
		{
			"unsupported source descriptor",
			"cmd 7> x",
			"unsupported file descriptor 7 in ‘7>’",
			1, 5,
		},
		{
			"unsupported dup descriptor",
			"cmd 2>&9",
			"unsupported file descriptor 9 in ‘2>&9’",
			1, 5,
		},
		{
			"read from an output descriptor",
			"cmd 2< in",
			"cannot read from file descriptor 2 in ‘2<’",
			1, 5,
		},
		{
			"write to stdin",
			"cmd 0> out",
			"cannot write to standard input in ‘0>’",
			1, 5,
		},
		{
			"dup from stdin",
			"cmd 0>&1",
			"cannot write to standard input in ‘0>&1’",
			1, 5,
		},
		{
			"dup onto stdin",
			"cmd 2>&0",
			"unsupported file descriptor 0 in ‘2>&0’",
			1, 5,
		},
		{
			"error position on later line",
			"echo ok\necho |",
			"expected a command, got end of file",
			2, 7,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := Parse(tt.src)
			assert.Nil(t, prog, "no prefix of an invalid script may parse")

			var serr *SyntaxError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.msg, serr.Msg)
			assert.Equal(t, tt.line, serr.Line)
			assert.Equal(t, tt.col, serr.Col)
		})
	}
}

func TestParseGolden(t *testing.T) {
	g := goldie.New(t)

	for name, src := range map[string]string{
		"pipeline": "cat in.txt | grep foo && echo ok || echo no",
		"subshell": "(cd /tmp; pwd) > \"out dir\"/log &\n! test -f ~/x",
		"words":    `GREETING="hello $USER" LC_ALL=C printf '%s\n' $GREETING ${HOME}/bin 2> /dev/null`,
	} {
		t.Run(name, func(t *testing.T) {
			prog := mustParse(t, src)

			buf := bytes.Buffer{}
			ast.Fprint(&buf, prog)
			g.Assert(t, name, buf.Bytes())
		})
	}
}
