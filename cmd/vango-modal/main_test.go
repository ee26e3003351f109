package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/vango-modal/internal/config"
	"github.com/vango-dev/vango-modal/pkg/modal"
	"github.com/vango-dev/vango-modal/pkg/vtest"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version", "--short"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != version {
		t.Errorf("version = %q, want %q", got, version)
	}
}

func TestLoadConfigFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9100\nlog:\n  level: error\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(&globalFlags{configPath: path, logLevel: "debug", logFormat: "json"})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want flags to win", cfg.Log)
	}

	if _, err := loadConfig(&globalFlags{configPath: filepath.Join(dir, "missing.json")}); err == nil {
		t.Error("missing --config file should fail")
	}
}

func TestServerConfigMapping(t *testing.T) {
	cfg := config.New()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 4000
	cfg.Server.Tracing = true
	cfg.Session.ReadTimeout = "5s"
	cfg.Session.MaxEventQueue = 8

	sc := serverConfig(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if sc.Address != "127.0.0.1:4000" {
		t.Errorf("Address = %q", sc.Address)
	}
	if !sc.EnableMetrics || !sc.EnableTracing {
		t.Errorf("metrics=%v tracing=%v", sc.EnableMetrics, sc.EnableTracing)
	}
	if sc.SessionConfig.ReadTimeout != 5*time.Second || sc.SessionConfig.MaxEventQueue != 8 {
		t.Errorf("SessionConfig = %+v", sc.SessionConfig)
	}
	if sc.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v", sc.ShutdownTimeout)
	}
}

func TestModalOptionsFromConfig(t *testing.T) {
	cfg := config.New()
	cfg.Modal.LabelledBy = "dialog-heading"
	cfg.Modal.ZIndex = 500

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := vtest.Mount(t, demoApp(modalOptions(cfg, logger)...).Render)
	h.ExpectAttribute("aria-labelledby", "dialog-heading")
	h.ExpectContains("z-index:500")
}

func demoHost(t *testing.T) *vtest.Host {
	t.Helper()
	app := demoApp()
	return vtest.Mount(t, app.Render)
}

func TestDemoDeleteFlow(t *testing.T) {
	h := demoHost(t)
	h.ExpectContains("report.pdf")

	h.ClickID("delete-report.pdf")
	h.ExpectContains("Delete report.pdf?")
	h.ExpectAttribute("aria-modal", "true")

	h.ClickID("confirm")
	h.ExpectAttribute("aria-modal", "false")
	h.ExpectNotContains("report.pdf")
	h.ExpectContains("notes.txt")
}

func TestDemoCancelKeepsFile(t *testing.T) {
	h := demoHost(t)

	h.ClickID("delete-notes.txt")
	h.ClickID("cancel")

	h.ExpectAttribute("aria-modal", "false")
	h.ExpectContains("notes.txt")
}

func TestDemoEmptyList(t *testing.T) {
	h := demoHost(t)
	for _, name := range []string{"report.pdf", "notes.txt", "photo.png"} {
		h.ClickID("delete-" + name)
		h.ClickID("confirm")
	}
	h.ExpectContains("No files left.")
}

func TestDemoAboutClosesOnEscape(t *testing.T) {
	h := demoHost(t)

	h.ClickID("about")
	h.ExpectContains("vango-modal " + version)

	h.KeyUp("Escape")
	h.ExpectNotContains("vango-modal " + version)
	h.ExpectNotContains(modal.OverlayID)
}

func TestDemoBackgroundJob(t *testing.T) {
	old := backgroundDelay
	backgroundDelay = 0
	defer func() { backgroundDelay = old }()

	h := demoHost(t)
	h.ClickID("background")

	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(h.HTML(), "Background job finished.") {
		if time.Now().After(deadline) {
			t.Fatalf("notice never shown:\n%s", h.HTML())
		}
		time.Sleep(10 * time.Millisecond)
		h.Flush()
	}
}
