package lexer

import "unicode"

func isMetaChar(r rune) bool {
	return r == '\'' ||
		r == '"' ||
		r == '|' ||
		r == '>' ||
		r == '<' ||
		r == '&' ||
		r == '(' ||
		r == ')' ||
		r == '$'
}

func isEol(r rune) bool {
	return r == ';' ||
		r == '\n'
}

// isNameRune reports whether r may appear in a variable name.  The first rune
// of a name must not be a digit.
func isNameRune(r rune, first bool) bool {
	if r == '_' || unicode.IsLetter(r) {
		return true
	}
	return !first && unicode.IsDigit(r)
}
