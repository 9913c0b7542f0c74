package lsp

import (
	"os"
	"path/filepath"

	"sfclint/internal/config"
	"sfclint/internal/driver"
)

// analyzerFor returns the analyzer governing path: the explicit
// configuration when the server was given one, otherwise the nearest
// sfclint.toml / .sfclint.yaml above the document, otherwise defaults.
// Client overrides apply on top. Results are cached per directory until
// the settings change.
func (s *Server) analyzerFor(path string) *driver.Analyzer {
	dir := resolveStartDir(path)
	if dir == "" {
		dir = s.rootDir()
	}

	s.mu.Lock()
	if a, ok := s.analyzers[dir]; ok {
		s.mu.Unlock()
		return a
	}
	over := s.overrides
	s.mu.Unlock()

	cfg := s.baseConfig(dir)
	cfg = over.apply(cfg)
	a := driver.NewAnalyzer(cfg, driver.Options{Style: s.opts.Style, MaxDiagnostics: s.opts.MaxDiagnostics})

	s.mu.Lock()
	s.analyzers[dir] = a
	s.mu.Unlock()
	return a
}

func (s *Server) baseConfig(dir string) config.Config {
	if s.opts.Config != nil {
		return s.opts.Config.Clone()
	}
	if dir == "" {
		return config.Default()
	}
	cfg, path, err := config.LoadFor(dir)
	if err != nil {
		s.logf("config: %v; using defaults", err)
		return config.Default()
	}
	if path != "" && s.currentTrace() {
		s.logf("config: %s governs %s", path, dir)
	}
	return cfg
}

func (s *Server) rootDir() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workspaceRoot
}

func resolveStartDir(path string) string {
	if path == "" {
		return ""
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}
