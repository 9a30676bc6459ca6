package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
}

type ProjectResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Genre     string    `json:"genre"`
	Subgenre  *string   `json:"subgenre"`
	CreatedAt time.Time `json:"created_at"`
}

type BriefRunResponse struct {
	ID           uuid.UUID      `json:"id"`
	ProjectID    uuid.UUID      `json:"project_id"`
	Model        string         `json:"model"`
	Status       BriefStatus    `json:"status"`
	ErrorMessage *string        `json:"error_message"`
	CreatedAt    time.Time      `json:"created_at"`
	RequestJSON  types.JSONText `json:"request_json"`
	ResponseJSON types.JSONText `json:"response_json"`
}

// CoverDirection is one cover concept inside a brief.
type CoverDirection struct {
	Name         string `json:"name"`
	OneLiner     string `json:"one_liner"`
	Imagery      string `json:"imagery"`
	Typography   string `json:"typography"`
	ColorPalette string `json:"color_palette"`
	LayoutNotes  string `json:"layout_notes"`
	Avoid        string `json:"avoid"`
	ImagePrompt  string `json:"image_prompt"`
}

type CoverBriefResponse struct {
	Directions []CoverDirection `json:"directions"`
	Model      string           `json:"model"`
}

type CoverImageResponse struct {
	ID             uuid.UUID  `json:"id"`
	ProjectID      uuid.UUID  `json:"project_id"`
	BriefRunID     *uuid.UUID `json:"brief_run_id"`
	DirectionIndex *int       `json:"direction_index"`
	Prompt         string     `json:"prompt"`
	Model          string     `json:"model"`
	Size           string     `json:"size"`
	ImageURL       string     `json:"image_url"`
	CreatedAt      time.Time  `json:"created_at"`
}

type CoverImageGenerateResponse struct {
	Images []CoverImageResponse `json:"images"`
}

func NewProjectResponse(p *Project) ProjectResponse {
	resp := ProjectResponse{
		ID:        p.ID,
		Title:     p.Title,
		Author:    p.Author,
		Genre:     p.Genre,
		CreatedAt: p.CreatedAt,
	}
	if p.Subgenre.Valid {
		resp.Subgenre = &p.Subgenre.String
	}
	return resp
}

func NewBriefRunResponse(r *BriefRun) BriefRunResponse {
	resp := BriefRunResponse{
		ID:           r.ID,
		ProjectID:    r.ProjectID,
		Model:        r.Model,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		RequestJSON:  r.RequestJSON,
		ResponseJSON: r.ResponseJSON,
	}
	if r.ErrorMessage.Valid {
		resp.ErrorMessage = &r.ErrorMessage.String
	}
	return resp
}

// NewCoverImageResponse expands a row with the URL the image can be fetched from.
func NewCoverImageResponse(img *CoverImage, imageURL string) CoverImageResponse {
	resp := CoverImageResponse{
		ID:        img.ID,
		ProjectID: img.ProjectID,
		Prompt:    img.Prompt,
		Model:     img.Model,
		Size:      img.Size,
		ImageURL:  imageURL,
		CreatedAt: img.CreatedAt,
	}
	if img.BriefRunID.Valid {
		id := img.BriefRunID.UUID
		resp.BriefRunID = &id
	}
	if img.DirectionIndex.Valid {
		idx := int(img.DirectionIndex.Int32)
		resp.DirectionIndex = &idx
	}
	return resp
}
