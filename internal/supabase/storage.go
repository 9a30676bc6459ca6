package supabase

import (
	"bytes"
	"fmt"
	"path"

	"cover-builder-backend/internal/storage"

	"github.com/google/uuid"
	storage_go "github.com/supabase-community/storage-go"
)

// Store keeps cover images in a public Supabase Storage bucket using the same
// relative paths as the local store.
type Store struct {
	client  *storage_go.Client
	bucket  string
	baseURL string
}

func NewStore(client *Client, bucket string) *Store {
	return &Store{
		client:  client.Supabase.Storage,
		bucket:  bucket,
		baseURL: client.BaseURL,
	}
}

func (s *Store) Save(relPath string, data []byte) error {
	storagePath, err := storage.CleanPath(relPath)
	if err != nil {
		return err
	}

	contentType := "image/png"
	upsert := false
	_, err = s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}

	return nil
}

func (s *Store) Delete(relPath string) error {
	storagePath, err := storage.CleanPath(relPath)
	if err != nil {
		return err
	}
	if _, err := s.client.RemoveFile(s.bucket, []string{storagePath}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *Store) DeleteProject(projectID uuid.UUID) error {
	prefix := storage.ProjectDir(projectID)

	files, err := s.client.ListFiles(s.bucket, prefix, storage_go.FileSearchOptions{
		Limit: 1000,
	})
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	if len(files) == 0 {
		return nil
	}

	// Listed names are relative to the prefix.
	filePaths := make([]string, len(files))
	for i, file := range files {
		filePaths[i] = path.Join(prefix, file.Name)
	}
	if _, err := s.client.RemoveFile(s.bucket, filePaths); err != nil {
		return fmt.Errorf("failed to delete files: %w", err)
	}

	return nil
}

func (s *Store) URL(relPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, relPath)
}
