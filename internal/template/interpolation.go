package template

import "strings"

// maskInterpolations replaces the body of every {{ ... }} text interpolation
// with spaces so the html grammar never sees the expression inside. Each rune
// becomes as many spaces as it has UTF-16 units and line breaks stay, so lines
// and UTF-16 columns of everything else are unchanged. Tags, quoted attribute
// values and comments are copied as is; an unterminated "{{" is left alone.
func maskInterpolations(content string) string {
	if !strings.Contains(content, "{{") {
		return content
	}
	var b strings.Builder
	b.Grow(len(content))
	i := 0
	for i < len(content) {
		switch {
		case strings.HasPrefix(content[i:], "<!--"):
			end := strings.Index(content[i+4:], "-->")
			if end < 0 {
				b.WriteString(content[i:])
				return b.String()
			}
			next := i + 4 + end + 3
			b.WriteString(content[i:next])
			i = next
		case content[i] == '<' && i+1 < len(content) && isTagStart(content[i+1]):
			next := tagEnd(content, i)
			b.WriteString(content[i:next])
			i = next
		case strings.HasPrefix(content[i:], "{{"):
			end := strings.Index(content[i+2:], "}}")
			if end < 0 {
				b.WriteString(content[i:])
				return b.String()
			}
			next := i + 2 + end + 2
			b.WriteString("{{")
			blank(&b, content[i+2:next-2])
			b.WriteString("}}")
			i = next
		default:
			b.WriteByte(content[i])
			i++
		}
	}
	return b.String()
}

func isTagStart(c byte) bool {
	return c == '/' || c == '!' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// tagEnd returns the offset just past the '>' closing the tag at start,
// skipping quoted attribute values.
func tagEnd(content string, start int) int {
	var quote byte
	for i := start + 1; i < len(content); i++ {
		c := content[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '>':
			return i + 1
		}
	}
	return len(content)
}

func blank(b *strings.Builder, expr string) {
	for _, r := range expr {
		switch {
		case r == '\n' || r == '\r':
			b.WriteRune(r)
		case r > 0xFFFF:
			b.WriteString("  ")
		default:
			b.WriteByte(' ')
		}
	}
}
