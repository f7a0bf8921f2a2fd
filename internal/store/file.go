package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// fileStore persists a Document as YAML. Reads are served from the loaded
// copy; every write rewrites the whole file atomically.
type fileStore struct {
	fs     afero.Fs
	path   string
	logger Logger
	mu     sync.RWMutex
	doc    Document
}

// NewFileStore opens the YAML document at path on appFs. A missing file
// yields an empty store that is created on the first write.
func NewFileStore(appFs afero.Fs, path string, logger Logger) (Store, error) {
	if path == "" {
		return nil, errors.New("store: path cannot be empty")
	}
	if appFs == nil {
		appFs = afero.NewOsFs()
	}
	if logger == nil {
		logger = nopLogger{}
	}

	doc, err := readDocument(appFs, path)
	if err != nil {
		return nil, err
	}

	logger.Debug("store loaded",
		"path", path,
		"nodes", len(doc.Nodes),
		"subscriptions", len(doc.Subscriptions),
		"configuration", len(doc.Configuration),
	)

	return &fileStore{fs: appFs, path: path, logger: logger, doc: doc}, nil
}

func readDocument(appFs afero.Fs, path string) (Document, error) {
	var doc Document

	data, err := afero.ReadFile(appFs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}
		return doc, fmt.Errorf("failed to read store %s: %w", path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return doc, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}

	return doc, nil
}

func (s *fileStore) SubscriptionParameters(subscription int) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return subscriptionParameters(&s.doc, subscription)
}

func (s *fileStore) NodeParameters(node string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return nodeParameters(&s.doc, node)
}

func (s *fileStore) Configuration(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.doc.Configuration[key]
	return value, ok, nil
}

func (s *fileStore) SetConfiguration(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneDocument(s.doc)
	if next.Configuration == nil {
		next.Configuration = make(map[string]string)
	}
	next.Configuration[key] = value

	if err := s.save(next); err != nil {
		return err
	}
	s.doc = next
	s.logger.Debug("configuration saved", "key", key, "path", s.path)
	return nil
}

func (s *fileStore) DeleteConfiguration(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.doc.Configuration[key]; !ok {
		return nil
	}

	next := cloneDocument(s.doc)
	delete(next.Configuration, key)

	if err := s.save(next); err != nil {
		return err
	}
	s.doc = next
	s.logger.Debug("configuration deleted", "key", key, "path", s.path)
	return nil
}

func (s *fileStore) save(doc Document) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	if err := atomicWrite(s.fs, s.path, data, 0o600); err != nil {
		s.logger.Error("failed to save store", "path", s.path, "error", err)
		return fmt.Errorf("failed to save store to %s: %w", s.path, err)
	}
	return nil
}

// atomicWrite writes data to a file atomically using a temporary file and rename.
func atomicWrite(appFs afero.Fs, path string, data []byte, perm fs.FileMode) error {
	tmpFile, err := afero.TempFile(appFs, filepath.Dir(path), ".tmp-"+filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = appFs.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	tmpFile = nil

	if err := appFs.Chmod(tmpPath, perm); err != nil {
		_ = appFs.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := appFs.Rename(tmpPath, path); err != nil {
		_ = appFs.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
