package diag

import "sfclint/internal/source"

// Fix is a single replacement of the diagnostic's range.
type Fix struct {
	Title   string `json:"title" msgpack:"t"`
	NewText string `json:"newText" msgpack:"n"`
}

type Diagnostic struct {
	Severity Severity     `msgpack:"sev"`
	Code     Code         `msgpack:"code"`
	Message  string       `msgpack:"msg"`
	Source   string       `msgpack:"src"`
	Range    source.Range `msgpack:"rng"`
	Fix      *Fix         `msgpack:"fix,omitempty"`
}
