package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"cover-builder-backend/internal/database"
	"cover-builder-backend/internal/imaging"
	"cover-builder-backend/internal/models"
	"cover-builder-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	minImages         = 1
	maxImages         = 4
	maxDirectionIndex = 20
)

// ImageDefaults apply when a request does not override model or size.
type ImageDefaults struct {
	Model string
	Size  string
}

type ImageService struct {
	db       *database.DB
	images   ImageGenerator
	store    storage.Store
	defaults ImageDefaults
	logger   logrus.FieldLogger
}

func NewImageService(db *database.DB, images ImageGenerator, store storage.Store, defaults ImageDefaults, logger logrus.FieldLogger) *ImageService {
	return &ImageService{
		db:       db,
		images:   images,
		store:    store,
		defaults: defaults,
		logger:   logger,
	}
}

// Generate creates n images for a project, writes them to the store and
// records one CoverImage per file. Either every image is kept or none is.
func (s *ImageService) Generate(ctx context.Context, req *models.CoverImageRequest, mode Mode) (*models.CoverImageGenerateResponse, error) {
	n := 1
	if req.N != nil {
		n = *req.N
	}
	if n < minImages || n > maxImages {
		return nil, validation(fmt.Sprintf("n must be between %d and %d", minImages, maxImages))
	}
	if req.DirectionIndex != nil && (*req.DirectionIndex < 0 || *req.DirectionIndex > maxDirectionIndex) {
		return nil, validation(fmt.Sprintf("direction_index must be between 0 and %d", maxDirectionIndex))
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, validation("prompt is required")
	}

	session := s.db.NewSession()
	defer session.Rollback()

	project, err := session.GetProject(ctx, req.ProjectID)
	if err != nil {
		return nil, internal("failed to load project", err)
	}
	if project == nil {
		return nil, notFound("Project not found")
	}

	var briefRunID uuid.NullUUID
	if req.BriefRunID != nil {
		run, err := session.GetBriefRun(ctx, *req.BriefRunID)
		if err != nil {
			return nil, internal("failed to load brief run", err)
		}
		if run == nil {
			return nil, notFound("BriefRun not found")
		}
		if run.ProjectID != project.ID {
			return nil, validation("brief_run_id does not belong to project_id")
		}
		briefRunID = uuid.NullUUID{UUID: run.ID, Valid: true}
	}

	model := override(req.Model, s.defaults.Model)
	size := override(req.Size, s.defaults.Size)

	logger := s.logger.WithFields(logrus.Fields{
		"project_id": project.ID,
		"mode":       mode.String(),
		"n":          n,
		"size":       size,
	})

	var buffers [][]byte
	if mode == ModeStub {
		model = StubImageModel
		buffers, err = stubImages(size, n)
		if err != nil {
			logger.WithError(err).Error("Placeholder synthesis failed")
			return nil, err
		}
	} else {
		if s.images == nil {
			return nil, providerError("image provider is not configured", nil)
		}
		buffers, err = s.images.GenerateImages(ctx, models.ImageRequest{
			Prompt: req.Prompt,
			N:      n,
			Model:  model,
			Size:   size,
		})
		if err != nil {
			logger.WithError(err).WithField("model", model).Error("Image generation call failed")
			return nil, providerError("Image generation failed", err)
		}
		if len(buffers) != n {
			return nil, providerError(fmt.Sprintf("requested %d images, provider returned %d", n, len(buffers)), nil)
		}
	}

	var directionIndex sql.NullInt32
	if req.DirectionIndex != nil {
		directionIndex = sql.NullInt32{Int32: int32(*req.DirectionIndex), Valid: true}
	}

	var written []string
	cleanup := func() {
		session.Rollback()
		for _, relPath := range written {
			if err := s.store.Delete(relPath); err != nil {
				logger.WithError(err).WithField("path", relPath).Warn("Failed to remove orphaned image file")
			}
		}
	}

	created := make([]*models.CoverImage, 0, len(buffers))
	for _, data := range buffers {
		img := &models.CoverImage{
			ID:             uuid.New(),
			ProjectID:      project.ID,
			BriefRunID:     briefRunID,
			DirectionIndex: directionIndex,
			Prompt:         req.Prompt,
			Model:          model,
			Size:           size,
		}
		img.ImagePath = storage.ImagePath(project.ID, img.ID)

		if err := s.store.Save(img.ImagePath, data); err != nil {
			cleanup()
			logger.WithError(err).Error("Failed to store image")
			return nil, internal("failed to store image", err)
		}
		written = append(written, img.ImagePath)

		session.Add(img)
		if err := session.Flush(ctx); err != nil {
			cleanup()
			logger.WithError(err).Error("Failed to record image")
			return nil, internal("failed to record image", err)
		}
		created = append(created, img)
	}

	if err := session.Commit(ctx); err != nil {
		cleanup()
		logger.WithError(err).Error("Failed to commit images")
		return nil, internal("failed to save images", err)
	}

	logger.WithField("model", model).Infof("Generated %d cover images", len(created))

	resp := &models.CoverImageGenerateResponse{Images: make([]models.CoverImageResponse, 0, len(created))}
	for _, img := range created {
		resp.Images = append(resp.Images, models.NewCoverImageResponse(img, s.store.URL(img.ImagePath)))
	}
	return resp, nil
}

func stubImages(size string, n int) ([][]byte, error) {
	width, height, err := imaging.ParseSize(size)
	if err != nil {
		return nil, &Error{Kind: KindStub, Message: "Invalid image size", Err: err}
	}
	buffers := make([][]byte, 0, n)
	for i := 1; i <= n; i++ {
		data, err := imaging.Placeholder(width, height, i, n)
		if err != nil {
			return nil, &Error{Kind: KindStub, Message: "Placeholder synthesis failed", Err: err}
		}
		buffers = append(buffers, data)
	}
	return buffers, nil
}

func override(value *string, fallback string) string {
	if value != nil && strings.TrimSpace(*value) != "" {
		return strings.TrimSpace(*value)
	}
	return fallback
}
