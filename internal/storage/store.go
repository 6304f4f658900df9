package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const maxNameLen = 120

// Store owns the directory rendered figures are written to.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Dir() string { return s.baseDir }

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type FigureInfo struct {
	Name     string
	Path     string
	Size     int64
	Modified time.Time
}

// FigurePath returns the file a chart of method over columns is written to,
// creating the directory if needed. Rendering the same chart twice
// overwrites the earlier file.
func (s *Store) FigurePath(method string, columns []string, ext string) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}
	parts := append([]string{method}, columns...)
	name := sanitize(strings.Join(parts, "_"))
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	return filepath.Join(s.baseDir, fmt.Sprintf("%s.%s", name, ext)), nil
}

// List returns the figures in the store, newest first.
func (s *Store) List() ([]FigureInfo, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []FigureInfo{}, nil
		}
		return nil, err
	}

	figs := make([]FigureInfo, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".png" && ext != ".svg" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		figs = append(figs, FigureInfo{
			Name:     strings.TrimSuffix(entry.Name(), ext),
			Path:     filepath.Join(s.baseDir, entry.Name()),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	sort.SliceStable(figs, func(i, j int) bool {
		return figs[i].Modified.After(figs[j].Modified)
	})
	return figs, nil
}

func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
