package capture

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ParseResponse decodes a raw AI reply into a TaskDraft. Only a JSON decode
// error aborts parsing; missing or oddly typed fields get defaults and
// priority/deadline go through normalization. Relative deadlines are
// resolved against now.
func ParseResponse(raw string, now time.Time) (*TaskDraft, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return &TaskDraft{
		Title:       strings.TrimSpace(stringField(fields, "title")),
		Description: stringField(fields, "description"),
		Category:    strings.TrimSpace(stringField(fields, "category")),
		Priority:    NormalizePriority(stringField(fields, "priority")),
		Deadline:    ResolveDeadline(stringField(fields, "deadline"), now),
		Subtasks:    stringsField(fields, "subtasks"),
		Tags:        stringsField(fields, "tags"),
	}, nil
}

// stringField tolerates models that emit numbers where strings are expected.
func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case float64:
		return strings.TrimSuffix(fmt.Sprintf("%v", v), ".0")
	default:
		return ""
	}
}

func stringsField(fields map[string]any, key string) []string {
	items, ok := fields[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
