package preset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

// CaptureKey is the storage key of the user's captured preset.
const CaptureKey = "soft-lifes.mist.preset"

var ErrNotFound = errors.New("key not found")

// Store is durable key/value storage for presets.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// FileStore keeps one file per key in Dir.
type FileStore struct {
	Dir string
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

func (s *FileStore) path(key string) string {
	return filepath.Join(s.Dir, unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

func (s *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Set writes value atomically through a temp file in the same directory.
func (s *FileStore) Set(key string, value []byte) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory at %s: %w", s.Dir, err)
	}
	tmp, err := os.CreateTemp(s.Dir, ".preset-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// MemoryStore is a Store that forgets everything on exit.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

// DefaultDir is where captured presets live unless configured otherwise.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not determine config directory: %w", err)
	}
	return filepath.Join(base, "gomist"), nil
}
