package storage

import (
	"errors"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Store persists generated image bytes under paths relative to a storage
// root and knows how clients can fetch them back.
type Store interface {
	Save(relPath string, data []byte) error
	Delete(relPath string) error
	DeleteProject(projectID uuid.UUID) error
	URL(relPath string) string
}

var ErrInvalidPath = errors.New("invalid path")

// ProjectDir is the directory holding every image of a project.
func ProjectDir(projectID uuid.UUID) string {
	return path.Join("images", projectID.String())
}

// ImagePath returns images/<project-id>/<image-id>.png.
func ImagePath(projectID, imageID uuid.UUID) string {
	return path.Join(ProjectDir(projectID), imageID.String()+".png")
}

// CleanPath normalizes a relative path and rejects anything that could
// escape the storage root.
func CleanPath(relPath string) (string, error) {
	if relPath == "" || strings.HasPrefix(relPath, "/") || strings.Contains(relPath, "\\") {
		return "", ErrInvalidPath
	}
	cleaned := path.Clean(relPath)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}
