package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StaticPrefix is the URL route the local storage root is served under.
const StaticPrefix = "/static"

type LocalStore struct {
	basePath  string
	urlPrefix string
}

func NewLocalStore(basePath, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStore{basePath: basePath, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

func (ls *LocalStore) Root() string {
	return ls.basePath
}

func (ls *LocalStore) Save(relPath string, data []byte) error {
	fullPath, err := ls.resolve(relPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		os.Remove(fullPath)
		return fmt.Errorf("failed to save file: %w", err)
	}

	return nil
}

// Delete removes one file. A missing file is not an error.
func (ls *LocalStore) Delete(relPath string) error {
	fullPath, err := ls.resolve(relPath)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

func (ls *LocalStore) DeleteProject(projectID uuid.UUID) error {
	fullPath, err := ls.resolve(ProjectDir(projectID))
	if err != nil {
		return err
	}
	if err := os.RemoveAll(fullPath); err != nil {
		return fmt.Errorf("failed to delete project files: %w", err)
	}
	return nil
}

func (ls *LocalStore) URL(relPath string) string {
	return ls.urlPrefix + "/" + strings.TrimPrefix(relPath, "/")
}

func (ls *LocalStore) resolve(relPath string) (string, error) {
	cleaned, err := CleanPath(relPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(cleaned)), nil
}
