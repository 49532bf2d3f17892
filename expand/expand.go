// Package expand turns AST words into argument strings at execution time.
// The order of operations follows shell precedence: variable substitution,
// then field splitting of unquoted expansion results, then per-field
// globbing.  Quoted segments pass through all three stages verbatim, and
// literal text is never split: the lexer already ended the word at every
// unescaped space, so whitespace inside a literal got there by escaping.
package expand

import (
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/portsh/portsh/ast"
	"github.com/portsh/portsh/env"
	"github.com/portsh/portsh/pkg/stringsx"
)

type Expander struct {
	Env  *env.Env
	Fsys afero.Fs

	// HomeDir resolves ‘~’ when $HOME is unset.  Defaults to
	// os.UserHomeDir.
	HomeDir func() (string, error)
}

func New(e *env.Env, fsys afero.Fs) *Expander {
	return &Expander{Env: e, Fsys: fsys, HomeDir: os.UserHomeDir}
}

// frag is a run of text that is either wholly quoted or wholly unquoted.
// split marks text produced by an unquoted expansion, the only text subject
// to field splitting.
type frag struct {
	text   string
	quoted bool
	split  bool
}

// field is a split result.  quoted records whether any contributing segment
// was quoted, which suppresses globbing for the whole field.
type field struct {
	text   string
	quoted bool
	active bool // a quoted empty string still produces a field
}

// Word expands w into zero or more argument strings.  An unquoted variable
// that expands to nothing yields zero arguments; a glob pattern that matches
// nothing passes through as its literal text.
func (x *Expander) Word(w ast.Word) []string {
	if len(w) == 0 {
		return nil
	}

	var out []string
	for _, f := range split(x.frags(w)) {
		if f.quoted || !strings.ContainsAny(f.text, "*?[") {
			out = append(out, f.text)
			continue
		}
		if matches := Glob(x.Fsys, x.Env.Cwd(), f.text); len(matches) > 0 {
			out = append(out, matches...)
			continue
		}
		out = append(out, f.text)
	}
	return out
}

// Words expands every word in ws and concatenates the results, preserving
// order.  This is how an argument vector is built.
func (x *Expander) Words(ws []ast.Word) []string {
	var out []string
	for _, w := range ws {
		out = append(out, x.Word(w)...)
	}
	return out
}

// Literal expands w with variable substitution and tilde expansion only; no
// field splitting, no globbing.  Used for assignment values.
func (x *Expander) Literal(w ast.Word) string {
	sb := strings.Builder{}
	for _, f := range x.frags(w) {
		sb.WriteString(f.text)
	}
	return sb.String()
}

func (x *Expander) frags(w ast.Word) []frag {
	fs := make([]frag, 0, len(w))
	for _, part := range w {
		switch part := part.(type) {
		case ast.Lit:
			fs = append(fs, frag{text: string(part)})
		case ast.Quoted:
			fs = append(fs, frag{text: string(part), quoted: true})
		case ast.VarRef:
			val, _ := x.Env.Get(part.Name)
			fs = append(fs, frag{text: val, quoted: part.Quoted, split: !part.Quoted})
		default:
			panic("unreachable")
		}
	}

	// Tilde expansion applies only to a literal ‘~’ opening the word.
	if _, ok := w[0].(ast.Lit); ok {
		fs[0].text = x.tilde(fs[0].text)
	}
	return fs
}

func (x *Expander) tilde(s string) string {
	if s != "~" && !strings.HasPrefix(s, "~/") {
		return s
	}

	home, ok := x.Env.Get("HOME")
	if !ok || home == "" {
		var err error
		if home, err = x.HomeDir(); err != nil {
			return s
		}
	}
	return home + s[1:]
}

// split performs field splitting across the fragments of one word.  Quoted
// and literal fragments join the current field untouched; unquoted expansion
// fragments may open and close any number of fields.
func split(frags []frag) []field {
	var out []field
	var cur field

	flush := func() {
		if cur.active {
			out = append(out, cur)
		}
		cur = field{}
	}

	for _, f := range frags {
		if !f.split {
			if f.text == "" && !f.quoted {
				continue
			}
			cur.text += f.text
			cur.quoted = cur.quoted || f.quoted
			cur.active = true
			continue
		}
		if f.text == "" {
			continue
		}

		lead := stringsx.IsFieldSep(rune(f.text[0]))
		trail := stringsx.IsFieldSep(rune(f.text[len(f.text)-1]))
		parts := stringsx.SplitFields(f.text)

		if lead {
			flush()
		}
		for i, p := range parts {
			if i > 0 {
				flush()
			}
			cur.text += p
			cur.active = true
		}
		if trail {
			flush()
		}
	}
	flush()

	return out
}
