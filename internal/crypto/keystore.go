// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// fileKeyStore is the private implementation of [KeyStore] backed by a
// single key file holding base64(key).
//
// A new key is written and synced to a temporary file in the same directory
// and then hard-linked to the final path. The link either creates the path
// with complete content or fails with ErrExist, so the key file is never
// observed half written and across processes exactly one key is persisted.
// Within a process sync.Once runs the bootstrap once and caches the outcome.
type fileKeyStore struct {
	path string

	once sync.Once
	key  []byte
	err  error
}

// errEmptyKeyFile marks a key file that exists but holds no key material.
var errEmptyKeyFile = errors.New("key file is empty")

// NewFileKeyStore returns a [KeyStore] bound to the key file at path.
// Nothing touches the file system until the first Load.
func NewFileKeyStore(path string) KeyStore {
	return &fileKeyStore{path: path}
}

// Load implements [KeyStore].
func (s *fileKeyStore) Load() ([]byte, error) {
	s.once.Do(func() {
		s.key, s.err = s.loadOrCreate()
	})

	return s.key, s.err
}

// loadOrCreate reads the persisted key, creating one when the file is
// missing. An empty file, as left by an interrupted non-atomic write, holds
// no key and is replaced. Any other invalid content is reported and left
// untouched.
func (s *fileKeyStore) loadOrCreate() ([]byte, error) {
	key, err := s.readKey()
	switch {
	case err == nil:
		return key, nil
	case errors.Is(err, os.ErrNotExist):
		return s.create(false)
	case errors.Is(err, errEmptyKeyFile):
		return s.create(true)
	default:
		return nil, err
	}
}

// create persists a fresh key. With replace unset the key is linked into
// place and a concurrent winner's key is adopted on ErrExist. With replace
// set the key is renamed over an empty file, and the key is then read back
// so that the caller uses whatever ended up on disk.
func (s *fileKeyStore) create(replace bool) ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}

	tmpPath, err := s.writeTemp(base64.StdEncoding.EncodeToString(key))
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpPath)

	if replace {
		if err = os.Rename(tmpPath, s.path); err != nil {
			return nil, fmt.Errorf("%w: replace %s: %w", ErrKeyFile, s.path, err)
		}
		syncDir(filepath.Dir(s.path))
		return s.readKey()
	}

	err = os.Link(tmpPath, s.path)
	if errors.Is(err, os.ErrExist) {
		return s.readKey()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: link %s: %w", ErrKeyFile, s.path, err)
	}
	syncDir(filepath.Dir(s.path))

	return key, nil
}

// writeTemp writes content to a synced 0600 temporary file next to the key
// file and returns its path. The file is removed on any failure.
func (s *fileKeyStore) writeTemp(content string) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("%w: create temp for %s: %w", ErrKeyFile, s.path, err)
	}

	if _, err = f.WriteString(content); err == nil {
		err = f.Sync()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("%w: write %s: %w", ErrKeyFile, f.Name(), err)
	}

	return f.Name(), nil
}

// syncDir makes a new directory entry durable. Failures are ignored; the
// key file content itself is already synced.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}

func (s *fileKeyStore) readKey() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrKeyFile, s.path, err)
	}

	content := bytes.TrimSpace(data)
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidKey, s.path, errEmptyKeyFile)
	}

	key, err := base64.StdEncoding.DecodeString(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key length %d, want %d", ErrInvalidKey, len(key), KeySize)
	}

	return key, nil
}
