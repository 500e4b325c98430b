package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/synthdom/internal/errors"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SYNTHDOM_XHTML", "")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const pageJSON = `{"kind":"element","name":"div","children":[
  {"kind":"fragment","children":[{"kind":"text","value":"1 < 2"},{"kind":"element","name":"br"}]}
]}`

func TestRenderStdin(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"html", pageJSON, []string{"render"}, "<div>1 &lt; 2<br></div>"},
		{"dash", pageJSON, []string{"render", "-"}, "<div>1 &lt; 2<br></div>"},
		{"xhtml", pageJSON, []string{"render", "--xhtml"}, "<div>1 &lt; 2<br/></div>"},
		{"yaml", "kind: element\nname: hr\n", []string{"render", "--format", "yaml"}, "<hr>"},
		{"document", `{"kind":"element","name":"html"}`, []string{"render", "--document"}, "<!DOCTYPE html>\n<html></html>"},
		{"custom doctype", `{"kind":"element","name":"html"}`, []string{"render", "--document", "--doctype", "<!doctype html>"}, "<!doctype html>\n<html></html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("render error = %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderFileToDir(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "page.json")
	if err := os.WriteFile(in, []byte(pageJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(dir, "dist")

	if _, err := execute(t, "", "render", in, "--out", outDir, "--xhtml"); err != nil {
		t.Fatalf("render error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "page.xhtml"))
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if string(data) != "<div>1 &lt; 2<br/></div>" {
		t.Errorf("file = %q", data)
	}
}

func TestRenderUsesConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "synthdom.json")
	if err := os.WriteFile(cfgPath, []byte(`{"render":{"xhtml":true}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := execute(t, `{"kind":1,"name":"img","attrs":[["alt","a\"b"]]}`, "render", "--config", cfgPath)
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if got != `<img alt="a&quot;b"/>` {
		t.Errorf("output = %q", got)
	}

	got, err = execute(t, `{"kind":1,"name":"img"}`, "render", "--config", cfgPath, "--xhtml=false")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if got != `<img>` {
		t.Errorf("flag override output = %q", got)
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		args     []string
		wantCode string
	}{
		{"malformed", `{"kind":`, []string{"render"}, "E100"},
		{"unknown kind", `{"kind":"comment"}`, []string{"render"}, "E101"},
		{"bad extension", "", []string{"render", "page.txt"}, "E103"},
		{"missing config", pageJSON, []string{"render", "--config", "/nonexistent/synthdom.json"}, "E141"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.stdin, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if code := errors.Code(err); code != tt.wantCode {
				t.Errorf("code = %q, want %q (%v)", code, tt.wantCode, err)
			}
		})
	}
}

func TestInitThenRenderFromWorkingDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if _, err := execute(t, "", "init", "--xhtml"); err != nil {
		t.Fatalf("init error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "synthdom.json")); err != nil {
		t.Fatalf("synthdom.json not written: %v", err)
	}

	got, err := execute(t, `{"kind":1,"name":"br"}`, "render")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if got != "<br/>" {
		t.Errorf("output = %q, want the working dir config to enable XHTML", got)
	}

	_, err = execute(t, "", "init")
	if code := errors.Code(err); code != "E160" {
		t.Errorf("second init: code = %q, want E160 (%v)", code, err)
	}
	if _, err := execute(t, "", "init", "--force"); err != nil {
		t.Errorf("init --force error = %v", err)
	}

	got, err = execute(t, `{"kind":1,"name":"br"}`, "render")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if got != "<br>" {
		t.Errorf("output after init --force = %q, want %q", got, "<br>")
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		file  string
		name  string
		xhtml bool
		want  string
	}{
		{"-", "", false, "index.html"},
		{"-", "", true, "index.xhtml"},
		{"pages/about.yaml", "", false, "about.html"},
		{"pages/about.yaml", "custom.htm", false, "custom.htm"},
	}

	for _, tt := range tests {
		if got := outputName(tt.file, tt.name, tt.xhtml); got != tt.want {
			t.Errorf("outputName(%q, %q, %v) = %q, want %q", tt.file, tt.name, tt.xhtml, got, tt.want)
		}
	}
}

func TestVersionShort(t *testing.T) {
	got, err := execute(t, "", "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(got) != version {
		t.Errorf("version = %q, want %q", got, version)
	}
}
