package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadConfigYAMLAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "afinn.yaml")
	yaml := "addr: \":9090\"\nlexicon: /data/afinn165.msgpack\nlog_level: debug\nread_timeout: 2s\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("AFINN_LOG_FORMAT", "console")
	t.Setenv("AFINN_MAX_BODY_BYTES", "4096")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	want := DefaultConfig()
	want.Addr = ":9090"
	want.LexiconPath = "/data/afinn165.msgpack"
	want.LogLevel = "debug"
	want.LogFormat = "console"
	want.MaxBodyBytes = 4096
	want.ReadTimeout = 2 * time.Second
	if cfg != want {
		t.Errorf("LoadConfig = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigEnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "afinn.yaml")
	if err := os.WriteFile(path, []byte("addr: \":9090\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AFINN_ADDR", ":7070")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("Addr = %q, want :7070", cfg.Addr)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	badYAML := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(badYAML, []byte("addr: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		env  map[string]string
		desc string
	}{
		{filepath.Join(dir, "missing.yaml"), nil, "missing file"},
		{badYAML, nil, "invalid YAML"},
		{"", map[string]string{"AFINN_MAX_BODY_BYTES": "lots"}, "non-numeric body limit"},
		{"", map[string]string{"AFINN_MAX_BODY_BYTES": "-1"}, "negative body limit"},
		{"", map[string]string{"AFINN_LOG_FORMAT": "xml"}, "unknown log format"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(tt.path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Addr = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for an empty addr")
	}

	cfg = DefaultConfig()
	cfg.LexiconPath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for an empty lexicon path")
	}
}
