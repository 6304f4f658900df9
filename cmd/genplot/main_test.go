package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/san-kum/genplot/internal/config"
)

func TestLoadConfig_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genplot.yaml")
	cfg := config.DefaultConfig()
	cfg.Output.Format = "svg"
	cfg.Output.Dir = "from-file"
	cfg.View.Mode = "none"
	if err := config.Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--config", path, "--out", "from-flag", "--preset", "wide"}); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { configFile, preset = "", "" })

	got, err := loadConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if got.Output.Dir != "from-flag" {
		t.Errorf("flag should override file, got dir %q", got.Output.Dir)
	}
	if got.Output.Format != "svg" {
		t.Errorf("unset flag should keep file value, got format %q", got.Output.Format)
	}
	if got.View.Mode != "none" {
		t.Errorf("expected view mode from file, got %q", got.View.Mode)
	}
	if got.Output.Width != 14 || got.Layout.GridColumns != 4 {
		t.Errorf("preset not applied: %+v", got.Output)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--view", "window"}); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(cmd); err == nil {
		t.Error("expected error for unknown view mode")
	}
}

func TestRunPlot(t *testing.T) {
	dir := t.TempDir()
	csv := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(csv, []byte("x, y\n3, 9\n1, 1\n2, 4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "plots")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--view", "none", "--out", out, csv, "plot", "x", "--y=y"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(out, "plot_x_y.png")); err != nil {
		t.Errorf("figure not written: %v", err)
	}
}

func TestMethodsCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"methods"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"METHOD", "hist x bins", "plot_same_canvas x y...", "pairplot [sort_on]"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("methods output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestPresetsCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"presets"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !regexp.MustCompile(`wide\s+14in\s+5in\s+4`).MatchString(buf.String()) {
		t.Errorf("presets output missing the wide preset:\n%s", buf.String())
	}
}

func TestFiguresCommand(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "plots")

	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"figures", "--out", out})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "no figures in "+out) {
		t.Errorf("expected empty listing, got %q", buf.String())
	}

	csv := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(csv, []byte("x, y\n3, 9\n1, 1\n2, 4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cmd = newRootCmd()
	cmd.SetArgs([]string{"--view", "none", "--out", out, csv, "scatter", "x", "y"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	buf.Reset()
	cmd = newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"figures", "--out", out})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "scatter_x_y.png") || !strings.Contains(buf.String(), "B") {
		t.Errorf("figures output missing the scatter figure:\n%s", buf.String())
	}
}

func TestConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genplot.yaml")

	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"config", "--format", "svg", "--preset", "large", path})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { preset = "" })
	if !strings.Contains(buf.String(), "config written to "+path) {
		t.Errorf("unexpected output %q", buf.String())
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Format != "svg" || cfg.Output.Width != 12 {
		t.Errorf("written config lost flag values: %+v", cfg.Output)
	}
}
