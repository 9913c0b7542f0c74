package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sfclint/internal/diag"
	"sfclint/internal/source"
)

type palette struct {
	path    *color.Color
	err     *color.Color
	warn    *color.Color
	info    *color.Color
	code    *color.Color
	gutter  *color.Color
	caret   *color.Color
	fixHint *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		path:    mk(color.Bold),
		err:     mk(color.FgRed, color.Bold),
		warn:    mk(color.FgYellow, color.Bold),
		info:    mk(color.FgCyan, color.Bold),
		code:    mk(color.FgMagenta),
		gutter:  mk(color.FgBlue),
		caret:   mk(color.FgGreen, color.Bold),
		fixHint: mk(color.FgGreen),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой диагностики печатает
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Range.
// Порядок: порядок отчётов, внутри отчёта порядок выдачи.
func Pretty(w io.Writer, fs *source.FileSet, reports []FileReport, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	total := 0
	files := 0
	for _, r := range reports {
		f := fs.Get(r.File)
		if f == nil || len(r.Diagnostics) == 0 {
			continue
		}
		files++
		path := formatPath(fs, f, opts.PathMode)
		doc := f.Document()
		for _, d := range r.Diagnostics {
			total++
			if err := prettyOne(w, p, path, doc, d, opts); err != nil {
				return err
			}
		}
	}
	if total > 0 {
		_, err := fmt.Fprintf(w, "%s in %s\n", plural(total, "problem"), plural(files, "file"))
		return err
	}
	return nil
}

func prettyOne(w io.Writer, p palette, path string, doc *source.Document, d diag.Diagnostic, opts PrettyOpts) error {
	line := d.Range.Start.Line
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s %s: %s\n",
		p.path.Sprintf("%s:%d:%d", path, line+1, d.Range.Start.Character+1),
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message,
	)

	if line < doc.LineCount() {
		gutterWidth := len(fmt.Sprint(line + 1))
		from := line - int(opts.Context)
		if from < 0 {
			from = 0
		}
		for i := from; i <= line; i++ {
			fmt.Fprintf(&b, "%s %s\n",
				p.gutter.Sprintf("%*d |", gutterWidth, i+1),
				clipLine(doc.Line(i), opts.Width),
			)
		}
		pad, width := underline(doc, d.Range)
		fmt.Fprintf(&b, "%s %s%s\n",
			p.gutter.Sprintf("%*s |", gutterWidth, ""),
			pad,
			p.caret.Sprint("^"+strings.Repeat("~", width-1)),
		)
	}

	if opts.ShowFixes && d.Fix != nil {
		title := d.Fix.Title
		if title == "" {
			title = d.Code.Title()
		}
		fmt.Fprintf(&b, "  %s %s: %q\n", p.fixHint.Sprint("fix:"), title, d.Fix.NewText)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// underline считает отступ и ширину подчёркивания в экранных колонках.
// Диапазон на несколько строк подчёркивается до конца первой строки.
func underline(doc *source.Document, r source.Range) (string, int) {
	text := doc.Line(r.Start.Line)
	lineStart := doc.LineStart(r.Start.Line)
	startOff := doc.OffsetAt(r.Start) - lineStart
	endOff := len(text)
	if r.End.Line == r.Start.Line {
		endOff = doc.OffsetAt(r.End) - lineStart
	}
	if startOff > len(text) {
		startOff = len(text)
	}
	if endOff > len(text) {
		endOff = len(text)
	}
	if endOff < startOff {
		endOff = startOff
	}

	var pad strings.Builder
	for _, ch := range text[:startOff] {
		if ch == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(ch)))
	}
	width := runewidth.StringWidth(text[startOff:endOff])
	if width < 1 {
		width = 1
	}
	return pad.String(), width
}

func clipLine(line string, width uint8) string {
	if width == 0 || runewidth.StringWidth(line) <= int(width) {
		return line
	}
	return runewidth.Truncate(line, int(width), "…")
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
