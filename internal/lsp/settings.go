package lsp

import (
	"encoding/json"

	"sfclint/internal/config"
	"sfclint/internal/diag"
	"sfclint/internal/driver"
)

// overrides are the client settings layered over the project configuration.
type overrides struct {
	source   string
	disabled []diag.Code
}

func (o overrides) apply(cfg config.Config) config.Config {
	cfg = cfg.Clone()
	if o.source != "" {
		cfg.Source = o.source
	}
	for _, code := range o.disabled {
		if cfg.Enabled(code) {
			cfg.Disabled = append(cfg.Disabled, code)
		}
	}
	return cfg
}

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	if len(msg.Params) == 0 {
		return nil
	}
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logf("didChangeConfiguration: %v", err)
		return nil
	}
	if s.applySettings(params.Settings) {
		s.reanalyzeOpen()
	}
	return nil
}

// applySettings reports whether analysis output may have changed.
func (s *Server) applySettings(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var settings lspSettings
	if err := json.Unmarshal(raw, &settings); err != nil || settings.Sfclint == nil {
		return false
	}
	in := settings.Sfclint
	disabled, err := config.ParseDisabled(in.Disabled)
	if err != nil {
		s.logf("settings: %v", err)
		disabled = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if in.Trace != nil {
		s.traceLSP = *in.Trace
	}
	next := s.overrides
	if in.Source != nil {
		next.source = *in.Source
	}
	if in.Disabled != nil {
		next.disabled = disabled
	}
	if next.source == s.overrides.source && sameCodes(next.disabled, s.overrides.disabled) {
		return false
	}
	s.overrides = next
	s.analyzers = make(map[string]*driver.Analyzer)
	return true
}

func sameCodes(a, b []diag.Code) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
