package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const currentFileVersion = 1

// fileState is the on-disk layout.
type fileState struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values"`
}

func (s *fileState) normalize() {
	if s.Version == 0 {
		s.Version = currentFileVersion
	}
	if s.Values == nil {
		s.Values = map[string]string{}
	}
}

// File keeps values in a single JSON document. The file is read on every
// Get so edits made by another process are picked up.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile returns a store backed by path. The file is created on the
// first Set.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path.
func (f *File) Path() string { return f.path }

func (f *File) load() (*fileState, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s := &fileState{}
			s.normalize()
			return s, nil
		}
		return nil, err
	}

	var s fileState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, f.path, err)
	}
	s.normalize()
	return &s, nil
}

func (f *File) save(s *fileState) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := s.Values[key]
	return v, ok, nil
}

// Set writes key. A corrupt file is replaced rather than reported, since
// its contents could never be read back anyway.
func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.load()
	if errors.Is(err, ErrCorrupt) {
		s, err = &fileState{}, nil
		s.normalize()
	}
	if err != nil {
		return err
	}
	s.Values[key] = value
	return f.save(s)
}

func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := s.Values[key]; !ok {
		return nil
	}
	delete(s.Values, key)
	return f.save(s)
}

func (f *File) Close() error { return nil }
