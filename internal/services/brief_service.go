package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"cover-builder-backend/internal/database"
	"cover-builder-backend/internal/models"

	"github.com/jmoiron/sqlx/types"
	"github.com/sirupsen/logrus"
)

const errNoOutput = "no output returned"

// nullRawText is stored as response_json when the provider produced nothing.
var nullRawText = types.JSONText(`{"raw_text":null}`)

type BriefService struct {
	db        *database.DB
	text      TextGenerator
	textModel string
	logger    logrus.FieldLogger
}

func NewBriefService(db *database.DB, text TextGenerator, textModel string, logger logrus.FieldLogger) *BriefService {
	return &BriefService{
		db:        db,
		text:      text,
		textModel: textModel,
		logger:    logger,
	}
}

// Generate produces cover directions for a project. Apart from a missing
// project, every outcome records exactly one BriefRun before returning.
func (s *BriefService) Generate(ctx context.Context, req *models.CoverBriefRequest, mode Mode) (*models.CoverBriefResponse, error) {
	session := s.db.NewSession()
	defer session.Rollback()

	project, err := session.GetProject(ctx, req.ProjectID)
	if err != nil {
		return nil, internal("failed to load project", err)
	}
	if project == nil {
		return nil, notFound("Project not found")
	}

	requestJSON, err := json.Marshal(req)
	if err != nil {
		return nil, internal("failed to encode request", err)
	}

	logger := s.logger.WithFields(logrus.Fields{
		"project_id": project.ID,
		"mode":       mode.String(),
	})

	run := &models.BriefRun{
		ProjectID:   project.ID,
		RequestJSON: types.JSONText(requestJSON),
	}

	if mode == ModeStub {
		directions := stubDirections()
		doc, err := json.Marshal(models.CoverBriefResponse{Directions: directions, Model: StubTextModel})
		if err != nil {
			return nil, internal("failed to encode stub brief", err)
		}
		run.Model = StubTextModel
		run.Status = models.BriefStatusSuccess
		run.ResponseJSON = types.JSONText(doc)
		if err := s.save(ctx, session, run, logger); err != nil {
			return nil, err
		}
		return &models.CoverBriefResponse{Directions: directions, Model: StubTextModel}, nil
	}

	run.Model = s.textModel
	if s.text == nil {
		return nil, s.fail(ctx, session, run, nullRawText,
			providerError("text provider is not configured", nil), logger)
	}

	result, err := s.text.GenerateText(ctx, BuildBriefPrompt(req), s.textModel)
	if err != nil {
		logger.WithError(err).Error("Brief generation call failed")
		return nil, s.fail(ctx, session, run, nullRawText,
			providerError("Text generation failed", err), logger)
	}
	if result.Model != "" {
		run.Model = result.Model
	}
	logger = logger.WithField("model", run.Model)

	if strings.TrimSpace(result.Text) == "" {
		return nil, s.fail(ctx, session, run, nullRawText,
			providerError(errNoOutput, nil), logger)
	}

	doc, directions, err := parseBrief(result.Text)
	if err != nil {
		raw, encErr := json.Marshal(map[string]string{"raw_text": result.Text})
		if encErr != nil {
			return nil, internal("failed to encode raw text", encErr)
		}
		return nil, s.fail(ctx, session, run, types.JSONText(raw),
			&Error{Kind: KindParse, Message: "Model did not return valid JSON", Err: err}, logger)
	}

	if len(directions) != DirectionCount {
		logger.Warnf("Expected %d directions, model returned %d", DirectionCount, len(directions))
	}

	run.Status = models.BriefStatusSuccess
	run.ResponseJSON = types.JSONText(doc)
	if err := s.save(ctx, session, run, logger); err != nil {
		return nil, err
	}

	return &models.CoverBriefResponse{Directions: directions, Model: run.Model}, nil
}

// fail records an error run and returns cause, or an internal error if the
// run itself could not be stored.
func (s *BriefService) fail(ctx context.Context, session *database.Session, run *models.BriefRun, response types.JSONText, cause *Error, logger logrus.FieldLogger) error {
	run.Status = models.BriefStatusError
	run.ResponseJSON = response
	message := cause.Message
	if cause.Err != nil {
		message += ": " + cause.Err.Error()
	}
	run.ErrorMessage = sql.NullString{String: message, Valid: true}

	if err := s.save(ctx, session, run, logger); err != nil {
		return err
	}
	logger.WithField("brief_run_id", run.ID).Warnf("Brief run failed: %s", message)
	return cause
}

func (s *BriefService) save(ctx context.Context, session *database.Session, run *models.BriefRun, logger logrus.FieldLogger) error {
	session.Add(run)
	if err := session.Commit(ctx); err != nil {
		logger.WithError(err).Error("Failed to save brief run")
		return internal("failed to save brief run", err)
	}
	logger.WithFields(logrus.Fields{
		"brief_run_id": run.ID,
		"status":       run.Status,
	}).Info("Brief run recorded")
	return nil
}
