package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

type BriefStatus string

const (
	BriefStatusSuccess BriefStatus = "success"
	BriefStatusError   BriefStatus = "error"
)

type Project struct {
	ID        uuid.UUID      `db:"id"`
	Title     string         `db:"title"`
	Author    string         `db:"author"`
	Genre     string         `db:"genre"`
	Subgenre  sql.NullString `db:"subgenre"`
	CreatedAt time.Time      `db:"created_at"`
}

// BriefRun is one recorded attempt at generating cover directions. Rows are
// inserted once and never updated.
type BriefRun struct {
	ID           uuid.UUID      `db:"id"`
	ProjectID    uuid.UUID      `db:"project_id"`
	RequestJSON  types.JSONText `db:"request_json"`
	ResponseJSON types.JSONText `db:"response_json"`
	Model        string         `db:"model"`
	Status       BriefStatus    `db:"status"`
	ErrorMessage sql.NullString `db:"error_message"`
	CreatedAt    time.Time      `db:"created_at"`
}

type CoverImage struct {
	ID             uuid.UUID     `db:"id"`
	ProjectID      uuid.UUID     `db:"project_id"`
	BriefRunID     uuid.NullUUID `db:"brief_run_id"`
	DirectionIndex sql.NullInt32 `db:"direction_index"`
	Prompt         string        `db:"prompt"`
	Model          string        `db:"model"`
	Size           string        `db:"size"`
	// ImagePath is relative to the storage root, e.g. images/<project>/<id>.png
	ImagePath string    `db:"image_path"`
	CreatedAt time.Time `db:"created_at"`
}
