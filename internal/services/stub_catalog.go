package services

import "cover-builder-backend/internal/models"

const (
	StubTextModel  = "stub"
	StubImageModel = "stub-image"
)

// stubDirections is returned in stub mode instead of calling the provider.
func stubDirections() []models.CoverDirection {
	return []models.CoverDirection{
		{
			Name:         "Midnight Rain",
			OneLiner:     "Two silhouettes under a single streetlight in a downpour.",
			Imagery:      "Rain-slick city street at night, neon reflections, a couple sharing one umbrella.",
			Typography:   "Tall condensed serif title, handwritten script for the author name.",
			ColorPalette: "Deep navy, electric magenta, warm amber highlights.",
			LayoutNotes:  "Figures in the lower third, title across the top with generous negative space.",
			Avoid:        "Faces in close-up, stock-photo smiles, cluttered backgrounds.",
			ImagePrompt:  "Cinematic night street in heavy rain, neon signs reflecting on wet asphalt, two silhouettes under one umbrella beneath a streetlight, moody blue and magenta tones, no text",
		},
		{
			Name:         "Backstage Shadows",
			OneLiner:     "A guitar case and a single spotlight hint at the story behind the stage.",
			Imagery:      "Empty backstage corridor, guitar case leaning on a wall, spotlight spilling through a half-open door.",
			Typography:   "Bold distressed sans-serif title, clean small caps for the author.",
			ColorPalette: "Charcoal, smoky gold, a single crimson accent.",
			LayoutNotes:  "Strong diagonal from the door light, title stacked in the upper left.",
			Avoid:        "Crowds, visible band logos, overly bright lighting.",
			ImagePrompt:  "Dim backstage hallway with a worn guitar case against the wall, warm spotlight beam through a half-open door, smoky atmosphere, charcoal and gold palette, no text",
		},
	}
}
