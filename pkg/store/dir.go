package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/scene"
)

// DirStore is a file-based scene store. Scenes are read from <name>.toml or
// <name>.json and always written as TOML.
type DirStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewDirStore creates a store over dir, creating it if needed.
func NewDirStore(dir string) (*DirStore, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create scene dir: %w", err)
	}
	return &DirStore{baseDir: dir}, nil
}

// Path returns the base directory for scene files.
func (s *DirStore) Path() string { return s.baseDir }

// scenePath returns the existing file for name, preferring TOML.
func (s *DirStore) scenePath(name string) (string, bool) {
	for _, ext := range []string{".toml", ".json"} {
		p := filepath.Join(s.baseDir, name+ext)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

func (s *DirStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read scene dir: %w", err)
	}
	var names []string
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".toml" && ext != ".json") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if errors.ValidateSceneName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

func (s *DirStore) Get(ctx context.Context, name string) (*scene.Scene, error) {
	if err := errors.ValidateSceneName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	path, ok := s.scenePath(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "scene %q not found", name)
	}
	sc, err := scene.Open(path)
	if err != nil {
		return nil, err
	}
	sc.Name = name
	return sc, nil
}

func (s *DirStore) Put(ctx context.Context, sc *scene.Scene) error {
	if err := errors.ValidateSceneName(sc.Name); err != nil {
		return err
	}
	data, err := scene.MarshalTOML(sc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The TOML file replaces any JSON version of the scene.
	if err := os.Remove(filepath.Join(s.baseDir, sc.Name+".json")); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove scene file: %w", err)
	}
	tmp := filepath.Join(s.baseDir, "."+sc.Name+".toml.tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write scene file: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.baseDir, sc.Name+".toml")); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write scene file: %w", err)
	}
	return nil
}

func (s *DirStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateSceneName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ext := range []string{".toml", ".json"} {
		if err := os.Remove(filepath.Join(s.baseDir, name+ext)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove scene file: %w", err)
		}
	}
	return nil
}

func (s *DirStore) Close() error { return nil }

var _ Store = (*DirStore)(nil)
