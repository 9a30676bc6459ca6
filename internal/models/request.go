package models

import "github.com/google/uuid"

type CreateProjectRequest struct {
	Title    string  `json:"title" binding:"required,max=255"`
	Author   string  `json:"author" binding:"required,max=255"`
	Genre    string  `json:"genre" binding:"required,max=100"`
	Subgenre *string `json:"subgenre,omitempty" binding:"omitempty,max=150"`
}

type CoverBriefRequest struct {
	ProjectID uuid.UUID `json:"project_id" binding:"required"`
	Title     string    `json:"title" binding:"required"`
	Subtitle  *string   `json:"subtitle,omitempty"`
	Author    string    `json:"author" binding:"required"`
	// Genre is the primary genre, e.g. Romance, Thriller, Memoir.
	Genre string `json:"genre" binding:"required"`
	// Subgenre narrows the genre, e.g. Rock Star Romance.
	Subgenre *string `json:"subgenre,omitempty"`
	Blurb    *string `json:"blurb,omitempty"`

	ToneWords   []string `json:"tone_words"`
	Comps       []string `json:"comps"`
	Constraints []string `json:"constraints"`
}

type CoverImageRequest struct {
	ProjectID      uuid.UUID  `json:"project_id" binding:"required"`
	BriefRunID     *uuid.UUID `json:"brief_run_id,omitempty"`
	DirectionIndex *int       `json:"direction_index,omitempty" binding:"omitempty,min=0,max=20"`

	Prompt string `json:"prompt" binding:"required"`
	// N defaults to 1 when omitted.
	N *int `json:"n,omitempty" binding:"omitempty,min=1,max=4"`

	// Optional overrides; otherwise backend defaults apply.
	Model *string `json:"model,omitempty"`
	Size  *string `json:"size,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
