package lint

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// booleanName prefixes name with "is" and capitalizes its first letter.
// An empty name has no fix.
func booleanName(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	r, size := utf8.DecodeRuneInString(name)
	return "is" + string(unicode.ToUpper(r)) + name[size:], true
}

// hasAllowedPrefix reports whether the lower-cased name contains any of the
// allowed substrings anywhere.
func hasAllowedPrefix(name string, allowed []string) bool {
	caser := cases.Lower(language.Und)
	lower := caser.String(name)
	for _, a := range allowed {
		if a != "" && strings.Contains(lower, caser.String(a)) {
			return true
		}
	}
	return false
}

func hasUpperASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			return true
		}
	}
	return false
}

// kebabCase lower-cases every ASCII capital and puts "-" before it unless it
// starts the name: onClick -> on-click.
func kebabCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch >= 'A' && ch <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteByte(ch + ('a' - 'A'))
			continue
		}
		b.WriteByte(ch)
	}
	return b.String()
}
