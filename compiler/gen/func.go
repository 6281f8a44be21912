package gen

import (
	"go/token"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

// acronyms are kept upper-case when they form a whole word.
var acronyms = map[string]bool{
	"API":  true,
	"CSS":  true,
	"HTML": true,
	"HTTP": true,
	"ID":   true,
	"JSON": true,
	"SQL":  true,
	"URL":  true,
	"UUID": true,
	"XML":  true,
}

// words splits a database or configuration name into words at spacers,
// punctuation and case changes.
func words(s string) []string {
	var (
		ws  []string
		cur []rune
	)
	flush := func() {
		if len(cur) > 0 {
			ws = append(ws, string(cur))
			cur = cur[:0]
		}
	}
	rs := []rune(s)
	for i, r := range rs {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
			continue
		case unicode.IsUpper(r) && len(cur) > 0:
			prev := cur[len(cur)-1]
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if !unicode.IsUpper(prev) || nextLower {
				flush()
			}
		case unicode.IsDigit(r) && len(cur) > 0 && !unicode.IsDigit(cur[len(cur)-1]):
			flush()
		}
		cur = append(cur, r)
	}
	flush()
	return ws
}

// Pascal returns the exported Go identifier for a name. "order_id",
// "OrderID" and "order id" all become "OrderID". A name that would start
// with a digit is prefixed with "N".
func Pascal(s string) string {
	var b strings.Builder
	for _, w := range words(s) {
		if up := strings.ToUpper(w); acronyms[up] {
			b.WriteString(up)
			continue
		}
		b.WriteString(inflect.Camelize(strings.ToLower(w)))
	}
	out := b.String()
	if out != "" && unicode.IsDigit([]rune(out)[0]) {
		out = "N" + out
	}
	return out
}

// Camel returns the unexported Go identifier for a name. Keywords and
// predeclared identifiers get a trailing underscore.
func Camel(s string) string {
	ws := words(s)
	if len(ws) == 0 {
		return ""
	}
	first := strings.ToLower(ws[0])
	out := first + Pascal(strings.Join(ws[1:], " "))
	if unicode.IsDigit([]rune(out)[0]) {
		out = "n" + out
	}
	if token.Lookup(out).IsKeyword() || reserved[out] {
		out += "_"
	}
	return out
}

// reserved are names generated functions use for their own parameters.
var reserved = map[string]bool{
	"ctx":   true,
	"db":    true,
	"conds": true,
	"err":   true,
	"any":   true,
	"error": true,
	"m":     true,
	"rows":  true,
	"sql":   true,
	"ewl":   true,
}
