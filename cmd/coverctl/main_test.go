package main

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"cover-builder-backend/internal/database"
	"cover-builder-backend/internal/logging"
	"cover-builder-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func tempDatabaseURL(t *testing.T) string {
	t.Helper()
	return "sqlite://" + filepath.Join(t.TempDir(), "cover.db")
}

func TestMigrate(t *testing.T) {
	url := tempDatabaseURL(t)

	out, err := runCLI(t, "--database-url", url, "migrate", "--status")
	require.NoError(t, err)
	assert.Contains(t, out, "1 pending migrations")
	assert.Contains(t, out, "0001_create_cover_tables.sql")

	out, err = runCLI(t, "--database-url", url, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Applied 0001_create_cover_tables.sql")

	out, err = runCLI(t, "--database-url", url, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema is up to date")
}

func TestListCommands(t *testing.T) {
	url := tempDatabaseURL(t)
	db, err := database.Open(url)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()
	require.NoError(t, database.NewMigrator(db, logging.Discard()).Run(ctx))

	out, err := runCLI(t, "--database-url", url, "projects")
	require.NoError(t, err)
	assert.Contains(t, out, "No projects")

	session := db.NewSession()
	project := &models.Project{
		Title:    "Glass Harbor",
		Author:   "J. Doe",
		Genre:    "Thriller",
		Subgenre: sql.NullString{String: "Noir", Valid: true},
	}
	session.Add(project)
	run := &models.BriefRun{
		ProjectID:    project.ID,
		RequestJSON:  types.JSONText(`{}`),
		ResponseJSON: types.JSONText(`{"raw_text":null}`),
		Model:        "stub",
		Status:       models.BriefStatusError,
		ErrorMessage: sql.NullString{String: "Model did not return valid JSON", Valid: true},
	}
	session.Add(run)
	image := &models.CoverImage{
		ProjectID:      project.ID,
		BriefRunID:     uuid.NullUUID{UUID: run.ID, Valid: true},
		DirectionIndex: sql.NullInt32{Int32: 2, Valid: true},
		Prompt:         "rain over a harbor",
		Model:          "stub-image",
		Size:           "1024x1536",
		ImagePath:      "images/p/i.png",
	}
	session.Add(image)
	require.NoError(t, session.Commit(ctx))

	out, err = runCLI(t, "--database-url", url, "projects")
	require.NoError(t, err)
	assert.Contains(t, out, "Glass Harbor")
	assert.Contains(t, out, "Noir")

	out, err = runCLI(t, "--database-url", url, "runs", project.ID.String())
	require.NoError(t, err)
	assert.Contains(t, out, run.ID.String())
	assert.Contains(t, out, "error")

	out, err = runCLI(t, "--database-url", url, "images", project.ID.String())
	require.NoError(t, err)
	assert.Contains(t, out, image.ID.String())
	assert.Contains(t, out, "images/p/i.png")
}

func TestListCommands_Errors(t *testing.T) {
	url := tempDatabaseURL(t)
	_, err := runCLI(t, "--database-url", url, "migrate")
	require.NoError(t, err)

	_, err = runCLI(t, "--database-url", url, "runs", "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid project id")

	missing := uuid.New()
	_, err = runCLI(t, "--database-url", url, "images", missing.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDatabaseURL_Required(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := runCLI(t, "projects")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--database-url")
}
