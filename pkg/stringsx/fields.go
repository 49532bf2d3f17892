package stringsx

// IsFieldSep reports whether r separates fields during word splitting.  The
// dialect splits on space, tab, and newline only.
func IsFieldSep(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

// SplitFields splits s on runs of field separators, dropping empty fields.
func SplitFields(s string) []string {
	out := make([]string, 0, 8)

	start := -1
	for i, r := range s {
		if IsFieldSep(r) {
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}

	return out
}
