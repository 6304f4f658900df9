package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFigurePath(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "plots")
	st := New(tmpDir)

	path, err := st.FigurePath("plot", []string{"time", "load avg"}, "png")
	if err != nil {
		t.Fatalf("figure path failed: %v", err)
	}

	want := filepath.Join(tmpDir, "plot_time_load_avg.png")
	if path != want {
		t.Errorf("expected %s, got %s", want, path)
	}

	if info, err := os.Stat(tmpDir); err != nil || !info.IsDir() {
		t.Errorf("expected output dir to be created: %v", err)
	}
}

func TestFigurePath_Sanitizes(t *testing.T) {
	st := New(t.TempDir())

	path, err := st.FigurePath("hist", []string{"../etc/passwd"}, "svg")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(path) != st.Dir() {
		t.Errorf("path escaped store: %s", path)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := New(filepath.Join(tmpDir, "missing")).List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list for missing dir, got %v, %v", runs, err)
	}

	for _, name := range []string{"a.png", "b.svg", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	figs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(figs) != 2 {
		t.Errorf("expected 2 figures, got %d", len(figs))
	}
}
