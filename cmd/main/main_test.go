package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"reactive-dashboard/src/config"
)

func TestStatsCommand(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/backpressure/stats" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("Backpressure Statistics:\nDrop events dropped: 4\n"))
	}))
	defer ts.Close()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"stats", "--addr", ts.URL})
	if err := root.Execute(); err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out.String(), "Drop events dropped: 4") {
		t.Errorf("output = %q", out.String())
	}
}

func TestResetCommandReportsHTTPErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer ts.Close()

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"reset", "--addr", ts.URL})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestConfigInitWritesLoadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"config", "init", "--out", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}

	cfg, err := config.NewConfig(path)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.Port != config.Default().Port {
		t.Errorf("port = %d", cfg.Port)
	}
}

func TestLoadConfigFlagsWin(t *testing.T) {
	t.Setenv("DASHBOARD_PORT", "9001")

	cmd := newServeCmd()
	if err := cmd.ParseFlags([]string{"--env-file", "", "--port", "9002", "--log-level", "debug"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Port != 9002 || cfg.LogLevel != "debug" {
		t.Errorf("config = %+v", cfg.MConfig)
	}
}
