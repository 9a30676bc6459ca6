package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cover-builder-backend/internal/models"

	"github.com/google/uuid"
)

type querier interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	Rebind(query string) string
}

// Session is a request-scoped unit of work. Reads go to the pool until the
// first write opens a transaction; from then on everything runs inside it so
// the session sees its own uncommitted rows.
//
// Supported entities are *models.Project, *models.BriefRun and
// *models.CoverImage.
type Session struct {
	db      *DB
	tx      txHandle
	pending []any
}

type txHandle interface {
	querier
	Commit() error
	Rollback() error
}

func (d *DB) NewSession() *Session {
	return &Session{db: d}
}

func (s *Session) q() querier {
	if s.tx != nil {
		return s.tx
	}
	return s.db.conn
}

func (s *Session) begin(ctx context.Context) error {
	if s.tx != nil {
		return nil
	}
	tx, err := s.db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	s.tx = tx
	return nil
}

// GetProject returns nil when the project does not exist.
func (s *Session) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	q := s.q()
	if err := q.GetContext(ctx, &project, q.Rebind(selectProject), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

// GetBriefRun returns nil when the run does not exist.
func (s *Session) GetBriefRun(ctx context.Context, id uuid.UUID) (*models.BriefRun, error) {
	var run models.BriefRun
	q := s.q()
	if err := q.GetContext(ctx, &run, q.Rebind(selectBriefRun), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get brief run: %w", err)
	}
	return &run, nil
}

// GetCoverImage returns nil when the image row does not exist.
func (s *Session) GetCoverImage(ctx context.Context, id uuid.UUID) (*models.CoverImage, error) {
	var img models.CoverImage
	q := s.q()
	if err := q.GetContext(ctx, &img, q.Rebind(selectCoverImage), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cover image: %w", err)
	}
	return &img, nil
}

func (s *Session) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	if err := s.q().SelectContext(ctx, &projects, s.db.orderedList(listProjects)); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

func (s *Session) ListBriefRuns(ctx context.Context, projectID uuid.UUID) ([]models.BriefRun, error) {
	runs := []models.BriefRun{}
	q := s.q()
	if err := q.SelectContext(ctx, &runs, q.Rebind(s.db.orderedList(listBriefRuns)), projectID); err != nil {
		return nil, fmt.Errorf("failed to list brief runs: %w", err)
	}
	return runs, nil
}

func (s *Session) ListCoverImages(ctx context.Context, projectID uuid.UUID) ([]models.CoverImage, error) {
	images := []models.CoverImage{}
	q := s.q()
	if err := q.SelectContext(ctx, &images, q.Rebind(s.db.orderedList(listCoverImages)), projectID); err != nil {
		return nil, fmt.Errorf("failed to list cover images: %w", err)
	}
	return images, nil
}

// Add queues an entity for insertion and assigns its ID if unset. Nothing
// touches the database until Flush or Commit.
func (s *Session) Add(entity any) {
	switch e := entity.(type) {
	case *models.Project:
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
	case *models.BriefRun:
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
	case *models.CoverImage:
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
	}
	s.pending = append(s.pending, entity)
}

// Flush writes queued entities inside the session transaction without
// committing, filling in their store-assigned CreatedAt.
func (s *Session) Flush(ctx context.Context) error {
	if len(s.pending) == 0 {
		return nil
	}
	if err := s.begin(ctx); err != nil {
		return err
	}
	for len(s.pending) > 0 {
		if err := s.insert(ctx, s.pending[0]); err != nil {
			return err
		}
		s.pending = s.pending[1:]
	}
	s.pending = nil
	return nil
}

// Commit flushes and commits. A session with no writes commits trivially.
func (s *Session) Commit(ctx context.Context) error {
	if err := s.Flush(ctx); err != nil {
		return err
	}
	if s.tx == nil {
		return nil
	}
	err := s.tx.Commit()
	s.tx = nil
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Rollback discards queued and flushed work. Safe to call after Commit.
func (s *Session) Rollback() error {
	s.pending = nil
	if s.tx == nil {
		return nil
	}
	err := s.tx.Rollback()
	s.tx = nil
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to rollback: %w", err)
	}
	return nil
}

// Delete removes a project (cascading to its runs and images) or a brief run
// (detaching its images). The delete joins the session transaction.
func (s *Session) Delete(ctx context.Context, entity any) error {
	var query string
	var id uuid.UUID
	switch e := entity.(type) {
	case *models.Project:
		query, id = deleteProject, e.ID
	case *models.BriefRun:
		query, id = deleteBriefRun, e.ID
	default:
		return fmt.Errorf("delete: unsupported entity %T", entity)
	}
	if err := s.begin(ctx); err != nil {
		return err
	}
	if _, err := s.tx.ExecContext(ctx, s.tx.Rebind(query), id); err != nil {
		return fmt.Errorf("failed to delete %T: %w", entity, err)
	}
	return nil
}

func (s *Session) insert(ctx context.Context, entity any) error {
	tx := s.tx
	switch e := entity.(type) {
	case *models.Project:
		if _, err := tx.ExecContext(ctx, tx.Rebind(insertProject),
			e.ID, e.Title, e.Author, e.Genre, e.Subgenre,
		); err != nil {
			return fmt.Errorf("failed to insert project: %w", err)
		}
		return s.loadCreatedAt(ctx, "projects", e.ID, &e.CreatedAt)
	case *models.BriefRun:
		if _, err := tx.ExecContext(ctx, tx.Rebind(insertBriefRun),
			e.ID, e.ProjectID, e.RequestJSON, e.ResponseJSON, e.Model, string(e.Status), e.ErrorMessage,
		); err != nil {
			return fmt.Errorf("failed to insert brief run: %w", err)
		}
		return s.loadCreatedAt(ctx, "brief_runs", e.ID, &e.CreatedAt)
	case *models.CoverImage:
		if _, err := tx.ExecContext(ctx, tx.Rebind(insertCoverImage),
			e.ID, e.ProjectID, e.BriefRunID, e.DirectionIndex, e.Prompt, e.Model, e.Size, e.ImagePath,
		); err != nil {
			return fmt.Errorf("failed to insert cover image: %w", err)
		}
		return s.loadCreatedAt(ctx, "cover_images", e.ID, &e.CreatedAt)
	}
	return fmt.Errorf("insert: unsupported entity %T", entity)
}

func (s *Session) loadCreatedAt(ctx context.Context, table string, id uuid.UUID, dest any) error {
	query := s.tx.Rebind(fmt.Sprintf(selectCreatedAtOf, table))
	if err := s.tx.GetContext(ctx, dest, query, id); err != nil {
		return fmt.Errorf("failed to read %s.created_at: %w", table, err)
	}
	return nil
}
