package services

import (
	"fmt"
	"strings"

	"cover-builder-backend/internal/models"
)

// DirectionCount is how many directions the live prompt asks for.
const DirectionCount = 6

// BuildBriefPrompt embeds every request field and pins the JSON shape the
// provider must answer with.
func BuildBriefPrompt(req *models.CoverBriefRequest) string {
	var b strings.Builder

	b.WriteString("You are an experienced book cover art director.\n")
	fmt.Fprintf(&b, "Propose %d distinct cover directions for the book below.\n\n", DirectionCount)

	fmt.Fprintf(&b, "Title: %s\n", req.Title)
	fmt.Fprintf(&b, "Subtitle: %s\n", optional(req.Subtitle))
	fmt.Fprintf(&b, "Author: %s\n", req.Author)
	fmt.Fprintf(&b, "Genre: %s\n", req.Genre)
	fmt.Fprintf(&b, "Subgenre: %s\n", optional(req.Subgenre))
	fmt.Fprintf(&b, "Blurb: %s\n", optional(req.Blurb))
	fmt.Fprintf(&b, "Tone words: %s\n", list(req.ToneWords))
	fmt.Fprintf(&b, "Comparable titles: %s\n", list(req.Comps))
	fmt.Fprintf(&b, "Constraints: %s\n\n", list(req.Constraints))

	b.WriteString("Return ONLY strict JSON, no markdown and no commentary, with exactly this shape:\n")
	b.WriteString(`{"directions": [{"name": "", "one_liner": "", "imagery": "", "typography": "", ` +
		`"color_palette": "", "layout_notes": "", "avoid": "", "image_prompt": ""}]}`)
	b.WriteString("\n")
	fmt.Fprintf(&b, "The directions array must contain exactly %d objects. Every field is a non-empty string.\n", DirectionCount)
	b.WriteString("image_prompt describes a background illustration only, with no text or lettering in the image.\n")

	return b.String()
}

func optional(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "(none)"
	}
	return *s
}

func list(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
