package services

import (
	"context"

	"cover-builder-backend/internal/models"
)

// Mode selects between the real provider and the built-in stub.
type Mode int

const (
	ModeStub Mode = iota
	ModeLive
)

func ModeFromFlag(useProvider bool) Mode {
	if useProvider {
		return ModeLive
	}
	return ModeStub
}

func (m Mode) String() string {
	if m == ModeLive {
		return "live"
	}
	return "stub"
}

type TextGenerator interface {
	GenerateText(ctx context.Context, prompt, model string) (models.TextResult, error)
}

type ImageGenerator interface {
	GenerateImages(ctx context.Context, req models.ImageRequest) ([][]byte, error)
}
