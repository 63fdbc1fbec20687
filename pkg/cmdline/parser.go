package cmdline

import "strings"

// Tokenize splits a raw input line on whitespace. cmd is the first token,
// or "" for blank input. rest holds the remaining tokens joined by single
// spaces and ok reports whether there were any.
func Tokenize(raw string) (cmd, rest string, ok bool) {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return "", "", false
	}
	if len(tokens) == 1 {
		return tokens[0], "", false
	}
	return tokens[0], strings.Join(tokens[1:], " "), true
}
