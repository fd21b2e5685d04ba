package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

type ValidatingSpec interface {
	Validate() error
}

// Record is a validating spec that knows its own key.
type Record[K comparable] interface {
	ValidatingSpec
	Key() K
}

type Storer[K comparable, T Record[K]] interface {
	Get(K) (T, bool)
	GetAll() map[K]T
}

// FileStore holds records loaded from yaml list files. It is read-only after loading.
type FileStore[K comparable, T Record[K]] struct {
	path    string
	records map[K]T

	mu sync.RWMutex
}

// NewFileStore loads every .yaml or .yml file under path. Each file holds a list of records.
func NewFileStore[K comparable, T Record[K]](path string) (*FileStore[K, T], error) {
	s := &FileStore[K, T]{
		path:    path,
		records: map[K]T{},
	}

	err := s.load()
	if err != nil {
		return nil, err
	}

	return s, nil
}

// NewMemoryStore builds a store from records already in memory.
func NewMemoryStore[K comparable, T Record[K]](records ...T) (*FileStore[K, T], error) {
	s := &FileStore[K, T]{
		records: map[K]T{},
	}
	for _, r := range records {
		if err := s.add(r); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *FileStore[K, T]) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = map[K]T{}

	return filepath.Walk(s.path, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if info.IsDir() || !isYaml(path) {
			return nil
		}

		records, err := s.loadFile(path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", filepath.Base(path), err)
		}

		for _, r := range records {
			if err := s.add(r); err != nil {
				return fmt.Errorf("loading %s: %w", filepath.Base(path), err)
			}
		}

		return nil
	})
}

func (s *FileStore[K, T]) add(r T) error {
	err := r.Validate()
	if err != nil {
		return fmt.Errorf("validating %v: %w", r.Key(), err)
	}

	// Error if the key is already in use
	if _, ok := s.records[r.Key()]; ok {
		return fmt.Errorf("duplicate key detected: %v", r.Key())
	}

	s.records[r.Key()] = r
	return nil
}

func (s *FileStore[K, T]) loadFile(path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var records []T
	err = yaml.Unmarshal(data, &records)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}

	return records, nil
}

func (s *FileStore[K, T]) Get(id K) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.records[id]
	return val, ok
}

func (s *FileStore[K, T]) GetAll() map[K]T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vals := make(map[K]T, len(s.records))
	for id, v := range s.records {
		vals[id] = v
	}

	return vals
}

func isYaml(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
