// Package capture holds the structured task model extracted from AI replies
// and the normalization rules applied to it.
package capture

import "errors"

// ErrInvalidResponse is returned when the AI reply is not valid JSON.
var ErrInvalidResponse = errors.New("invalid ai response format")

// ErrInvalidTask is returned when a draft is not fit for materialization.
var ErrInvalidTask = errors.New("invalid task structure")

// TaskDraft is the normalized result of parsing an AI response. It is built
// once by ParseResponse, mutated only to attach the target project, then
// consumed by the capture service.
type TaskDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Priority    int      `json:"priority"`
	Deadline    string   `json:"deadline,omitempty"` // YYYY-MM-DD, empty = none
	Subtasks    []string `json:"subtasks"`
	Tags        []string `json:"tags"`
	ProjectID   int      `json:"projectId"`
}

// Valid reports whether the draft can be committed: a title and a target
// project are the only hard requirements.
func (d *TaskDraft) Valid() bool {
	return d.Title != "" && d.ProjectID > 0
}

// Preview is the wire representation shown to the user before committing.
// Every TaskDraft field must survive a round trip through it.
type Preview struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	CategoryName  string   `json:"categoryName"`
	CategoryIcon  string   `json:"categoryIcon"`
	CategoryColor string   `json:"categoryColor"`
	Priority      int      `json:"priority"`
	PriorityLabel string   `json:"priorityLabel"`
	Deadline      string   `json:"deadline"`
	Subtasks      []string `json:"subtasks"`
	Tags          []string `json:"tags"`
}

// Draft converts a preview back into a draft, attaching the target project.
func (p *Preview) Draft(projectID int) *TaskDraft {
	return &TaskDraft{
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Priority:    p.Priority,
		Deadline:    p.Deadline,
		Subtasks:    p.Subtasks,
		Tags:        p.Tags,
		ProjectID:   projectID,
	}
}
