package engine

import "strings"

// rowReturning lists command tags whose statements go through Driver.Query.
// Everything else goes through Driver.Exec.
var rowReturning = map[string]bool{
	"SELECT":  true,
	"WITH":    true,
	"SHOW":    true,
	"VALUES":  true,
	"TABLE":   true,
	"EXPLAIN": true,
}

// CommandTag derives the command tag from statement text: the first SQL
// keyword after leading whitespace and comments, uppercased. It returns ""
// when no keyword can be found, which the rest of the engine treats as the
// absent tag.
func CommandTag(text string) string {
	s := skipLeading(text)
	end := 0
	for end < len(s) && isKeywordByte(s[end]) {
		end++
	}
	if end == 0 {
		return ""
	}
	return strings.ToUpper(s[:end])
}

func returnsRows(tag string) bool {
	return rowReturning[tag]
}

// skipLeading trims whitespace, "--" line comments and "/* */" block
// comments from the front of s.
func skipLeading(s string) string {
	for {
		s = strings.TrimLeft(s, " \t\r\n")
		switch {
		case strings.HasPrefix(s, "--"):
			if i := strings.IndexByte(s, '\n'); i >= 0 {
				s = s[i+1:]
			} else {
				return ""
			}
		case strings.HasPrefix(s, "/*"):
			if i := strings.Index(s, "*/"); i >= 0 {
				s = s[i+2:]
			} else {
				return ""
			}
		default:
			return s
		}
	}
}

func isKeywordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b == '_'
}
