package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vango-dev/synthdom/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Render.XHTML {
		t.Error("Render.XHTML should default to false")
	}
	if cfg.Render.Doctype != DefaultDoctype {
		t.Errorf("Render.Doctype = %q, want %q", cfg.Render.Doctype, DefaultDoctype)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics = %+v, want enabled with %q", cfg.Metrics, DefaultNamespace)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if err == nil {
		t.Fatal("Expected error for missing config")
	}
	if code := errors.Code(err); code != "E141" {
		t.Errorf("missing config code = %q, want E141", code)
	}

	configJSON := `{
  "render": {"xhtml": true},
  "server": {"port": 9090},
  "metrics": {"enabled": false},
  "output": {"s3": {"bucket": "site", "prefix": "pages/"}}
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.Render.XHTML {
		t.Error("Render.XHTML = false, want true")
	}
	// Doctype was not set in the file; the default survives.
	if cfg.Render.Doctype != DefaultDoctype {
		t.Errorf("Render.Doctype = %q, want default", cfg.Render.Doctype)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = true, want false")
	}
	if cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics.Namespace = %q, want default", cfg.Metrics.Namespace)
	}
	if cfg.Output.S3.Bucket != "site" || cfg.Output.S3.Prefix != "pages/" {
		t.Errorf("Output.S3 = %+v", cfg.Output.S3)
	}
	if cfg.Path() != filepath.Join(tmpDir, ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte("{\n  \"render\": {\n    \"xhtml\": tru\n  }\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
	se := errors.FromError(err, "")
	if se.Code != "E140" {
		t.Errorf("Code = %q, want E140", se.Code)
	}
	if se.Location == nil || se.Location.Line != 3 {
		t.Errorf("Location = %v, want line 3", se.Location)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	cfg := New()
	cfg.Render.XHTML = true
	cfg.Server.Port = 7000
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if !loaded.Render.XHTML || loaded.Server.Port != 7000 {
		t.Errorf("reloaded config = %+v", loaded)
	}
	if loaded.Path() != path {
		t.Errorf("Path() = %q, want %q", loaded.Path(), path)
	}
}

func TestLoadOrDefaultWorkingDir(t *testing.T) {
	t.Setenv(EnvXHTML, "")
	t.Setenv(EnvAddr, "")

	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault() without a file error = %v", err)
	}
	if cfg.Render.XHTML || cfg.Path() != "" {
		t.Errorf("expected defaults, got %+v (path %q)", cfg, cfg.Path())
	}

	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(`{"render":{"xhtml":true},"server":{"port":9100}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err = LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if !cfg.Render.XHTML || cfg.Server.Port != 9100 {
		t.Errorf("working dir config not loaded: %+v", cfg)
	}

	if err := os.WriteFile(path, []byte(`{"render":`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrDefault(""); errors.Code(err) != "E140" {
		t.Errorf("malformed working dir config: code = %q, want E140", errors.Code(err))
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvXHTML: "true",
		EnvAddr:  ":9999",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := New()
	cfg.ApplyEnv(lookup)
	if !cfg.Render.XHTML {
		t.Error("Render.XHTML = false after SYNTHDOM_XHTML=true")
	}
	if cfg.Address() != ":9999" {
		t.Errorf("Address() = %q, want :9999", cfg.Address())
	}

	env[EnvXHTML] = "not-a-bool"
	cfg = New()
	cfg.ApplyEnv(lookup)
	if cfg.Render.XHTML {
		t.Error("invalid SYNTHDOM_XHTML should be ignored")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		port    int
		wantErr bool
	}{
		{"valid port", 8080, false},
		{"port zero", 0, false},
		{"max port", 65535, false},
		{"negative port", -1, true},
		{"port too high", 70000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			cfg.Server.Port = tt.port
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddress(t *testing.T) {
	cfg := New()
	if got := cfg.Address(); got != "localhost:8080" {
		t.Errorf("Address() = %q, want localhost:8080", got)
	}
}
