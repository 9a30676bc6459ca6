package services_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"cover-builder-backend/internal/database"
	"cover-builder-backend/internal/logging"
	"cover-builder-backend/internal/models"
	"cover-builder-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open("sqlite://" + filepath.Join(t.TempDir(), "cover.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.NewMigrator(db, logging.Discard()).Run(context.Background()))
	return db
}

func newLocalStore(t *testing.T) *storage.LocalStore {
	t.Helper()
	store, err := storage.NewLocalStore(filepath.Join(t.TempDir(), "storage"), storage.StaticPrefix)
	require.NoError(t, err)
	return store
}

func createProject(t *testing.T, db *database.DB) *models.Project {
	t.Helper()
	project := &models.Project{Title: "Diving Deep", Author: "Tani Hanes", Genre: "Romance"}
	session := db.NewSession()
	session.Add(project)
	require.NoError(t, session.Commit(context.Background()))
	return project
}

type fakeText struct {
	mu      sync.Mutex
	result  models.TextResult
	err     error
	prompts []string
}

func (f *fakeText) GenerateText(_ context.Context, prompt, model string) (models.TextResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return models.TextResult{}, f.err
	}
	result := f.result
	if result.Model == "" {
		result.Model = model
	}
	return result, nil
}

type fakeImages struct {
	buffers [][]byte
	err     error
	calls   []models.ImageRequest
}

func (f *fakeImages) GenerateImages(_ context.Context, req models.ImageRequest) ([][]byte, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	if f.buffers != nil {
		return f.buffers, nil
	}
	out := make([][]byte, req.N)
	for i := range out {
		out[i] = []byte("png")
	}
	return out, nil
}

// failingStore wraps a LocalStore and fails the Save call with index failAt.
type failingStore struct {
	*storage.LocalStore
	failAt int
	saves  int
}

func (f *failingStore) Save(relPath string, data []byte) error {
	f.saves++
	if f.saves == f.failAt {
		return errors.New("disk full")
	}
	return f.LocalStore.Save(relPath, data)
}

func countBriefRuns(t *testing.T, db *database.DB, projectID uuid.UUID) int {
	t.Helper()
	runs, err := db.NewSession().ListBriefRuns(context.Background(), projectID)
	require.NoError(t, err)
	return len(runs)
}

func countImages(t *testing.T, db *database.DB, projectID uuid.UUID) int {
	t.Helper()
	images, err := db.NewSession().ListCoverImages(context.Background(), projectID)
	require.NoError(t, err)
	return len(images)
}
