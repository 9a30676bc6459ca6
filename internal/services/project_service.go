package services

import (
	"context"
	"database/sql"
	"strings"

	"cover-builder-backend/internal/database"
	"cover-builder-backend/internal/models"
	"cover-builder-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ProjectService covers project CRUD and the read-only history queries.
type ProjectService struct {
	db     *database.DB
	store  storage.Store
	logger logrus.FieldLogger
}

func NewProjectService(db *database.DB, store storage.Store, logger logrus.FieldLogger) *ProjectService {
	return &ProjectService{db: db, store: store, logger: logger}
}

func (s *ProjectService) Create(ctx context.Context, req *models.CreateProjectRequest) (*models.ProjectResponse, error) {
	title := strings.TrimSpace(req.Title)
	author := strings.TrimSpace(req.Author)
	genre := strings.TrimSpace(req.Genre)
	if title == "" || author == "" || genre == "" {
		return nil, validation("title, author and genre are required")
	}

	project := &models.Project{Title: title, Author: author, Genre: genre}
	if req.Subgenre != nil && strings.TrimSpace(*req.Subgenre) != "" {
		project.Subgenre = sql.NullString{String: strings.TrimSpace(*req.Subgenre), Valid: true}
	}

	session := s.db.NewSession()
	defer session.Rollback()

	session.Add(project)
	if err := session.Commit(ctx); err != nil {
		return nil, internal("failed to create project", err)
	}

	s.logger.WithField("project_id", project.ID).Info("Project created")
	resp := models.NewProjectResponse(project)
	return &resp, nil
}

func (s *ProjectService) List(ctx context.Context) ([]models.ProjectResponse, error) {
	projects, err := s.db.NewSession().ListProjects(ctx)
	if err != nil {
		return nil, internal("failed to list projects", err)
	}
	resp := make([]models.ProjectResponse, 0, len(projects))
	for i := range projects {
		resp = append(resp, models.NewProjectResponse(&projects[i]))
	}
	return resp, nil
}

func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*models.ProjectResponse, error) {
	project, err := s.load(ctx, s.db.NewSession(), id)
	if err != nil {
		return nil, err
	}
	resp := models.NewProjectResponse(project)
	return &resp, nil
}

func (s *ProjectService) ListBriefRuns(ctx context.Context, id uuid.UUID) ([]models.BriefRunResponse, error) {
	session := s.db.NewSession()
	if _, err := s.load(ctx, session, id); err != nil {
		return nil, err
	}
	runs, err := session.ListBriefRuns(ctx, id)
	if err != nil {
		return nil, internal("failed to list brief runs", err)
	}
	resp := make([]models.BriefRunResponse, 0, len(runs))
	for i := range runs {
		resp = append(resp, models.NewBriefRunResponse(&runs[i]))
	}
	return resp, nil
}

func (s *ProjectService) ListImages(ctx context.Context, id uuid.UUID) ([]models.CoverImageResponse, error) {
	session := s.db.NewSession()
	if _, err := s.load(ctx, session, id); err != nil {
		return nil, err
	}
	images, err := session.ListCoverImages(ctx, id)
	if err != nil {
		return nil, internal("failed to list images", err)
	}
	resp := make([]models.CoverImageResponse, 0, len(images))
	for i := range images {
		resp = append(resp, models.NewCoverImageResponse(&images[i], s.store.URL(images[i].ImagePath)))
	}
	return resp, nil
}

// Delete removes the project with its runs and images, then its stored files.
// A failure to remove files is logged and does not fail the call.
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	session := s.db.NewSession()
	defer session.Rollback()

	project, err := s.load(ctx, session, id)
	if err != nil {
		return err
	}
	if err := session.Delete(ctx, project); err != nil {
		return internal("failed to delete project", err)
	}
	if err := session.Commit(ctx); err != nil {
		return internal("failed to delete project", err)
	}

	logger := s.logger.WithField("project_id", id)
	if err := s.store.DeleteProject(id); err != nil {
		logger.WithError(err).Warn("Failed to remove project files")
	}
	logger.Info("Project deleted")
	return nil
}

func (s *ProjectService) load(ctx context.Context, session *database.Session, id uuid.UUID) (*models.Project, error) {
	project, err := session.GetProject(ctx, id)
	if err != nil {
		return nil, internal("failed to load project", err)
	}
	if project == nil {
		return nil, notFound("Project not found")
	}
	return project, nil
}
