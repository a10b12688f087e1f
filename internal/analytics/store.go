package analytics

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/katyella/sprig-sample/internal/constants"
	apperrors "github.com/katyella/sprig-sample/internal/errors"
)

// Identity is the locally known user association.
type Identity struct {
	AnonymousID string `yaml:"anonymous_id"`
	UserID      string `yaml:"user_id,omitempty"`
	Traits      Traits `yaml:"traits,omitempty"`
}

// Store persists the identity between runs.
type Store interface {
	Load() (Identity, error)
	Save(Identity) error
}

// FileStore keeps the identity in a YAML file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path. The parent directory is
// created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the identity. A missing file yields an empty identity.
func (s *FileStore) Load() (Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Identity{}, nil
	}
	if err != nil {
		return Identity{}, apperrors.NewStorageError("reading identity", err).WithContext("path", s.path)
	}

	var id Identity
	if err := yaml.Unmarshal(data, &id); err != nil {
		return Identity{}, apperrors.NewStorageError(fmt.Sprintf("parsing %s", s.path), err)
	}
	return id, nil
}

// Save writes the identity atomically.
func (s *FileStore) Save(id Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(id)
	if err != nil {
		return apperrors.NewStorageError("encoding identity", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), constants.ConfigDirPermissions); err != nil {
		return apperrors.NewStorageError("creating identity directory", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, constants.IdentityFilePermissions); err != nil {
		return apperrors.NewStorageError("writing identity", err).WithContext("path", tmp)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return apperrors.NewStorageError("replacing identity", err).WithContext("path", s.path)
	}
	return nil
}

// MemoryStore keeps the identity for the lifetime of the process.
type MemoryStore struct {
	mu       sync.Mutex
	identity Identity
	saves    int
}

// NewMemoryStore returns a store seeded with id.
func NewMemoryStore(id Identity) *MemoryStore {
	id.Traits = id.Traits.clone()
	return &MemoryStore{identity: id}
}

func (s *MemoryStore) Load() (Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.identity
	id.Traits = id.Traits.clone()
	return id, nil
}

func (s *MemoryStore) Save(id Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id.Traits = id.Traits.clone()
	s.identity = id
	s.saves++
	return nil
}

// Saves returns how many times Save was called.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
