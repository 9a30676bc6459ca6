package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"cover-builder-backend/internal/models"
)

var directionFields = []string{
	"name", "one_liner", "imagery", "typography",
	"color_palette", "layout_notes", "avoid", "image_prompt",
}

// parseBrief decodes provider text into the directions document. It returns
// the compacted document as stored in response_json together with the typed
// directions.
func parseBrief(text string) (json.RawMessage, []models.CoverDirection, error) {
	payload := stripCodeFence(text)
	if payload == "" {
		return nil, nil, errors.New("empty payload")
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, nil, fmt.Errorf("invalid JSON: %w", err)
	}

	rawDirections, ok := doc["directions"]
	if !ok {
		return nil, nil, errors.New(`missing "directions" key`)
	}

	var items []map[string]json.RawMessage
	if err := json.Unmarshal(rawDirections, &items); err != nil {
		return nil, nil, errors.New(`"directions" must be an array of objects`)
	}
	if len(items) == 0 {
		return nil, nil, errors.New(`"directions" is empty`)
	}

	directions := make([]models.CoverDirection, 0, len(items))
	for i, item := range items {
		if item == nil {
			return nil, nil, fmt.Errorf("direction %d is not an object", i)
		}
		values := make(map[string]string, len(directionFields))
		for _, field := range directionFields {
			var v string
			raw, ok := item[field]
			if !ok || json.Unmarshal(raw, &v) != nil || strings.TrimSpace(v) == "" {
				return nil, nil, fmt.Errorf("direction %d: %q must be a non-empty string", i, field)
			}
			values[field] = v
		}
		directions = append(directions, models.CoverDirection{
			Name:         values["name"],
			OneLiner:     values["one_liner"],
			Imagery:      values["imagery"],
			Typography:   values["typography"],
			ColorPalette: values["color_palette"],
			LayoutNotes:  values["layout_notes"],
			Avoid:        values["avoid"],
			ImagePrompt:  values["image_prompt"],
		})
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, []byte(payload)); err != nil {
		return nil, nil, fmt.Errorf("invalid JSON: %w", err)
	}

	return compact.Bytes(), directions, nil
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	body := strings.TrimLeft(trimmed[3:], " \t\r\n")
	if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
		body = strings.TrimLeft(body[4:], " \t\r\n")
	}
	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}
