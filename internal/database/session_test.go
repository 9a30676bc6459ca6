package database_test

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"cover-builder-backend/internal/database"
	"cover-builder-backend/internal/logging"
	"cover-builder-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProject(title string) *models.Project {
	return &models.Project{Title: title, Author: "A. Writer", Genre: "Romance"}
}

func TestOpen_UnsupportedURL(t *testing.T) {
	_, err := database.Open("mysql://localhost/db")
	assert.Error(t, err)
}

func TestMigrator_Idempotent(t *testing.T) {
	forEachDialect(t, func(t *testing.T, db *database.DB) {
		ctx := context.Background()
		m := database.NewMigrator(db, logging.Discard())

		require.NoError(t, m.Run(ctx))
		pending, err := m.Pending(ctx)
		require.NoError(t, err)
		assert.Empty(t, pending)
		assert.True(t, strings.HasSuffix(t.Name(), "/"+string(db.Dialect())))
	})
}

func TestSession_CommitAssignsIDAndCreatedAt(t *testing.T) {
	forEachDialect(t, func(t *testing.T, db *database.DB) {
		ctx := context.Background()

		s := db.NewSession()
		p := newProject("Neon Hearts")
		p.Subgenre = sql.NullString{String: "Rock Star Romance", Valid: true}
		s.Add(p)
		assert.NotEqual(t, uuid.Nil, p.ID)
		require.NoError(t, s.Commit(ctx))
		assert.False(t, p.CreatedAt.IsZero())

		got, err := db.NewSession().GetProject(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Neon Hearts", got.Title)
		assert.Equal(t, "Rock Star Romance", got.Subgenre.String)
		assert.WithinDuration(t, p.CreatedAt, got.CreatedAt, time.Millisecond)
	})
}

func TestSession_GetMissingReturnsNil(t *testing.T) {
	forEachDialect(t, func(t *testing.T, db *database.DB) {
		ctx := context.Background()
		s := db.NewSession()

		p, err := s.GetProject(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, p)

		r, err := s.GetBriefRun(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, r)

		img, err := s.GetCoverImage(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, img)
	})
}

func TestSession_FlushVisibleInsideRollbackDiscards(t *testing.T) {
	forEachDialect(t, func(t *testing.T, db *database.DB) {
		ctx := context.Background()

		s := db.NewSession()
		p := newProject("Ghost Light")
		s.Add(p)
		require.NoError(t, s.Flush(ctx))

		got, err := s.GetProject(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, got)

		require.NoError(t, s.Rollback())

		got, err = db.NewSession().GetProject(ctx, p.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestSession_FlushFailureKeepsNothing(t *testing.T) {
	forEachDialect(t, func(t *testing.T, db *database.DB) {
		ctx := context.Background()

		s := db.NewSession()
		p := newProject("Orphans")
		s.Add(p)
		// References a project that does not exist.
		s.Add(&models.CoverImage{
			ProjectID: uuid.New(),
			Prompt:    "x",
			Model:     "stub-image",
			Size:      "1024x1536",
			ImagePath: "images/x.png",
		})
		require.Error(t, s.Flush(ctx))
		require.NoError(t, s.Rollback())

		projects, err := db.NewSession().ListProjects(ctx)
		require.NoError(t, err)
		assert.Empty(t, projects)
	})
}

func TestSession_ListsNewestFirst(t *testing.T) {
	forEachDialect(t, func(t *testing.T, db *database.DB) {
		ctx := context.Background()

		// Back-to-back commits routinely share a millisecond on SQLite.
		var ids []uuid.UUID
		for i := 0; i < 20; i++ {
			s := db.NewSession()
			p := newProject(fmt.Sprintf("Project %d", i))
			s.Add(p)
			require.NoError(t, s.Commit(ctx))
			ids = append(ids, p.ID)
		}

		projects, err := db.NewSession().ListProjects(ctx)
		require.NoError(t, err)
		require.Len(t, projects, len(ids))
		for i, p := range projects {
			assert.Equal(t, ids[len(ids)-1-i], p.ID, "position %d", i)
		}
	})
}

func TestSession_ImagesFromOneFlushNewestFirst(t *testing.T) {
	forEachDialect(t, func(t *testing.T, db *database.DB) {
		ctx := context.Background()

		s := db.NewSession()
		p := newProject("Same Tick")
		s.Add(p)
		var ids []uuid.UUID
		for i := 0; i < 4; i++ {
			img := &models.CoverImage{
				ProjectID: p.ID,
				Prompt:    "p",
				Model:     "stub-image",
				Size:      "1024x1536",
				ImagePath: fmt.Sprintf("images/%d.png", i),
			}
			s.Add(img)
			require.NoError(t, s.Flush(ctx))
			ids = append(ids, img.ID)
		}
		require.NoError(t, s.Commit(ctx))

		images, err := db.NewSession().ListCoverImages(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, images, 4)
		for i, img := range images {
			assert.Equal(t, ids[3-i], img.ID, "position %d", i)
		}
	})
}

func TestSession_BriefRunAndImages(t *testing.T) {
	forEachDialect(t, func(t *testing.T, db *database.DB) {
		ctx := context.Background()

		s := db.NewSession()
		p := newProject("Backstage")
		s.Add(p)
		run := &models.BriefRun{
			ProjectID:    p.ID,
			RequestJSON:  types.JSONText(`{"title":"Backstage"}`),
			ResponseJSON: types.JSONText(`{"raw_text":"nope"}`),
			Model:        "gpt-4.1-mini",
			Status:       models.BriefStatusError,
			ErrorMessage: sql.NullString{String: "Model did not return valid JSON", Valid: true},
		}
		s.Add(run)
		img := &models.CoverImage{
			ProjectID:      p.ID,
			BriefRunID:     uuid.NullUUID{UUID: run.ID, Valid: true},
			DirectionIndex: sql.NullInt32{Int32: 2, Valid: true},
			Prompt:         "rain-soaked stage",
			Model:          "stub-image",
			Size:           "1024x1536",
			ImagePath:      "images/backstage.png",
		}
		s.Add(img)
		require.NoError(t, s.Commit(ctx))

		read := db.NewSession()
		runs, err := read.ListBriefRuns(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, models.BriefStatusError, runs[0].Status)
		assert.JSONEq(t, `{"raw_text":"nope"}`, string(runs[0].ResponseJSON))
		assert.Equal(t, "Model did not return valid JSON", runs[0].ErrorMessage.String)

		images, err := read.ListCoverImages(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, images, 1)
		assert.Equal(t, run.ID, images[0].BriefRunID.UUID)
		assert.Equal(t, int32(2), images[0].DirectionIndex.Int32)

		other, err := read.ListCoverImages(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, other)
	})
}

func TestSession_DeleteBriefRunDetachesImages(t *testing.T) {
	forEachDialect(t, func(t *testing.T, db *database.DB) {
		ctx := context.Background()

		s := db.NewSession()
		p := newProject("Detached")
		s.Add(p)
		run := &models.BriefRun{
			ProjectID:    p.ID,
			RequestJSON:  types.JSONText(`{}`),
			ResponseJSON: types.JSONText(`{"directions":[]}`),
			Model:        "stub",
			Status:       models.BriefStatusSuccess,
		}
		s.Add(run)
		img := &models.CoverImage{
			ProjectID:  p.ID,
			BriefRunID: uuid.NullUUID{UUID: run.ID, Valid: true},
			Prompt:     "p",
			Model:      "stub-image",
			Size:       "512x768",
			ImagePath:  "images/d.png",
		}
		s.Add(img)
		require.NoError(t, s.Commit(ctx))

		s = db.NewSession()
		require.NoError(t, s.Delete(ctx, run))
		require.NoError(t, s.Commit(ctx))

		got, err := db.NewSession().GetCoverImage(ctx, img.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.False(t, got.BriefRunID.Valid)
	})
}

func TestSession_DeleteProjectCascades(t *testing.T) {
	forEachDialect(t, func(t *testing.T, db *database.DB) {
		ctx := context.Background()

		s := db.NewSession()
		p := newProject("Cascade")
		s.Add(p)
		run := &models.BriefRun{
			ProjectID:    p.ID,
			RequestJSON:  types.JSONText(`{}`),
			ResponseJSON: types.JSONText(`{}`),
			Model:        "stub",
			Status:       models.BriefStatusSuccess,
		}
		s.Add(run)
		img := &models.CoverImage{ProjectID: p.ID, Prompt: "p", Model: "m", Size: "1x1", ImagePath: "images/c.png"}
		s.Add(img)
		require.NoError(t, s.Commit(ctx))

		s = db.NewSession()
		require.NoError(t, s.Delete(ctx, p))
		require.NoError(t, s.Commit(ctx))

		read := db.NewSession()
		runs, err := read.ListBriefRuns(ctx, p.ID)
		require.NoError(t, err)
		assert.Empty(t, runs)
		images, err := read.ListCoverImages(ctx, p.ID)
		require.NoError(t, err)
		assert.Empty(t, images)

		gotRun, err := read.GetBriefRun(ctx, run.ID)
		require.NoError(t, err)
		assert.Nil(t, gotRun)
		gotImg, err := read.GetCoverImage(ctx, img.ID)
		require.NoError(t, err)
		assert.Nil(t, gotImg)
	})
}

func TestSession_DeleteUnsupported(t *testing.T) {
	forEachDialect(t, func(t *testing.T, db *database.DB) {
		err := db.NewSession().Delete(context.Background(), &models.CoverImage{})
		assert.Error(t, err)
	})
}
