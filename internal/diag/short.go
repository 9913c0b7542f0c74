package diag

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FormatShort renders one diagnostic per line as
// "<severity> <ID> <path>:<line>:<col> <message>" with 1-based line and column.
// Order is the emission order.
func FormatShort(path string, diags []Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	p := normalizePath(path)
	var b strings.Builder
	for i, d := range diags {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity.Label(), d.Code.ID(), p, d.Range.Start.Line+1, d.Range.Start.Character+1, sanitizeMessage(d.Message))
		if i < len(diags)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
