package sql

import (
	"strings"
	"unicode"

	"github.com/syssam/ewl/dialect"
)

// Rebind rewrites @name parameters in a configured query or command to the
// positional placeholders of the dialect. It returns the rewritten text and
// the parameter name bound to each placeholder, in order. A name used twice
// yields two placeholders with the same name. Text inside single-quoted
// literals and "@@" system variables are left untouched.
func Rebind(d, text string) (string, []string) {
	var (
		b     strings.Builder
		names []string
		rs    = []rune(text)
	)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == '\'':
			j := i + 1
			for j < len(rs) {
				if rs[j] == '\'' {
					if j+1 < len(rs) && rs[j+1] == '\'' {
						j += 2
						continue
					}
					break
				}
				j++
			}
			if j >= len(rs) {
				j = len(rs) - 1
			}
			b.WriteString(string(rs[i : j+1]))
			i = j
		case r == '@' && i+1 < len(rs) && rs[i+1] == '@':
			b.WriteString("@@")
			i++
		case r == '@' && i+1 < len(rs) && isParamStart(rs[i+1]):
			j := i + 1
			for j < len(rs) && isParamPart(rs[j]) {
				j++
			}
			names = append(names, string(rs[i+1:j]))
			b.WriteString(dialect.Placeholder(d, len(names)))
			i = j - 1
		default:
			b.WriteRune(r)
		}
	}
	return b.String(), names
}

func isParamStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isParamPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
