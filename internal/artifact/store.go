// Package artifact persists stage outputs under the run's working directory.
// Writes go through a temp file and an atomic rename so a failed stage never
// leaves a partially written artifact behind.
package artifact

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Saveable is an object that can serialize itself to a writer.
type Saveable interface {
	Save(w io.Writer) error
}

// Loadable is an object that can deserialize itself from a reader.
type Loadable interface {
	Load(r io.Reader) error
}

// Store writes and reads run artifacts on the local filesystem.
type Store struct {
	logger *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{logger: logger}
}

// Save persists obj at path, creating parent directories.
func (s *Store) Save(path string, obj Saveable) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	tempPath := path + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if err := obj.Save(file); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to save artifact: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	s.logger.Debug("saved artifact", "path", path)
	return nil
}

// Load reads the artifact at path into obj.
func (s *Store) Load(path string, obj Loadable) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open artifact: %w", err)
	}
	defer file.Close()

	if err := obj.Load(file); err != nil {
		return fmt.Errorf("failed to load artifact: %w", err)
	}

	s.logger.Debug("loaded artifact", "path", path)
	return nil
}

// WriteJSON persists v as indented JSON at path, with the same atomic-rename
// guarantee as Save. Used for human-readable reports.
func (s *Store) WriteJSON(path string, v any) error {
	return s.Save(path, jsonSaveable{v})
}

type jsonSaveable struct {
	v any
}

func (j jsonSaveable) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(j.v)
}
