package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics. Every lint rule reports at this level.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Label is the lower-case form used by the short and json formats.
func (s Severity) Label() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

// LSP maps the severity onto DiagnosticSeverity of the language server protocol.
func (s Severity) LSP() int {
	switch s {
	case SevError:
		return 1
	case SevWarning:
		return 2
	default:
		return 3
	}
}

// SeverityFromLSP is the inverse of LSP; unknown values become SevInfo.
func SeverityFromLSP(v int) Severity {
	switch v {
	case 1:
		return SevError
	case 2:
		return SevWarning
	default:
		return SevInfo
	}
}
