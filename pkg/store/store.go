// Package store loads and saves the projects file.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-launcher/pkg/models"
)

// ConfigParseError reports a projects file that exists but cannot be decoded.
type ConfigParseError struct {
	Path string
	Err  error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ConfigParseError) Unwrap() error { return e.Err }

// Store reads and writes one projects file.
type Store struct {
	path   string
	format Format
	logger *logrus.Entry
}

// New creates a store for path. The encoding follows the file extension.
func New(path string, logger *logrus.Entry) *Store {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	return &Store{
		path:   path,
		format: FormatFor(path),
		logger: logger.WithField("file", path),
	}
}

// Path returns the projects file location.
func (s *Store) Path() string { return s.path }

// Load reads the projects file. A missing file yields an error matching
// fs.ErrNotExist; undecodable content yields a *ConfigParseError.
func (s *Store) Load() (*models.ProjectSet, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read projects file: %w", err)
	}
	set, err := Unmarshal(data, s.format)
	if err != nil {
		return nil, &ConfigParseError{Path: s.path, Err: err}
	}
	return set, nil
}

// DefaultFileMode is the permission of a newly created projects file.
const DefaultFileMode fs.FileMode = 0644

// Save writes set atomically, creating the parent directory if needed. An
// existing file keeps its permissions.
func (s *Store) Save(set *models.ProjectSet) error {
	data, err := Marshal(set, s.format)
	if err != nil {
		return fmt.Errorf("encode projects: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	mode := DefaultFileMode
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("set projects file mode: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write projects file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write projects file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace projects file: %w", err)
	}
	return nil
}

// LoadOrDefault loads the projects file, falling back to the built-in default
// when the file is missing or cannot be parsed. The default is written back so
// the user has something to edit; an unparsable file is first copied aside to
// <path>.bak. Failing to back up or write back only costs persistence: the
// default is still returned. The bool reports whether the default was used.
func (s *Store) LoadOrDefault() (*models.ProjectSet, bool, error) {
	set, err := s.Load()
	if err == nil {
		return set, false, nil
	}

	var parseErr *ConfigParseError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Info("projects file not found, writing default")
	case errors.As(err, &parseErr):
		s.logger.WithError(parseErr.Err).Warn("projects file is invalid, using default")
		if backupErr := s.backup(); backupErr != nil {
			// Never overwrite a file that could not be set aside.
			s.logger.WithError(backupErr).Warn("projects file kept as is, default not written")
			return models.DefaultProjectSet(), true, nil
		}
	default:
		return nil, false, err
	}

	set = models.DefaultProjectSet()
	if err := s.Save(set); err != nil {
		s.logger.WithError(err).Warn("could not write default projects file")
	}
	return set, true, nil
}

func (s *Store) backup() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read projects file for backup: %w", err)
	}
	if err := os.WriteFile(s.path+".bak", data, 0644); err != nil {
		return fmt.Errorf("back up projects file: %w", err)
	}
	return nil
}
