package diagfmt

import (
	"io"

	"sfclint/internal/diag"
	"sfclint/internal/source"
)

// Short печатает по строке на диагностику, см. diag.FormatShort.
func Short(w io.Writer, fs *source.FileSet, reports []FileReport, mode PathMode) error {
	for _, r := range reports {
		f := fs.Get(r.File)
		if f == nil || len(r.Diagnostics) == 0 {
			continue
		}
		out := diag.FormatShort(formatPath(fs, f, mode), r.Diagnostics)
		if _, err := io.WriteString(w, out+"\n"); err != nil {
			return err
		}
	}
	return nil
}
