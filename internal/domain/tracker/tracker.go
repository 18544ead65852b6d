// Package tracker defines the downstream task-tracking contract, including
// the tri-state create acknowledgement the capture service must tolerate.
package tracker

import (
	"context"
	"errors"
)

// ErrCreateFailed is returned when the tracker rejected a create call or
// acknowledged one without an id that could not be recovered.
var ErrCreateFailed = errors.New("failed to create task")

// UnknownTicketID is recorded for subtasks the tracker acknowledged without
// returning an id. Id recovery is only attempted for the main ticket.
const UnknownTicketID = -1

// StatusOpen is the initial workflow status for created tickets.
const StatusOpen = 3

// Ticket types.
const (
	TypeTask    = "task"
	TypeSubtask = "subtask"
)

// Ticket is the create payload for one work item.
type Ticket struct {
	Headline     string `json:"headline"`
	Description  string `json:"description"`
	ProjectID    int    `json:"projectId"`
	EditorID     int    `json:"editorId"`
	UserID       int    `json:"userId"`
	Priority     int    `json:"priority"`
	Type         string `json:"type"`
	Status       int    `json:"status"`
	DateToFinish string `json:"dateToFinish,omitempty"`
	Tags         string `json:"tags,omitempty"`
	DependsOnID  int    `json:"dependingTicketId,omitempty"`
}

// TicketRef is a listed ticket, enough to recover a freshly created id by
// headline.
type TicketRef struct {
	ID       int    `json:"id"`
	Headline string `json:"headline"`
}

// CreateOutcome reports how the tracker acknowledged a create call. The
// downstream create endpoint is contractually unreliable: it may return the
// new id, or a bare boolean acknowledgement without one.
type CreateOutcome struct {
	ID    int  // positive when the tracker returned the new id
	Acked bool // true when created but the id was not returned
}

// HasID reports whether the outcome carries a usable ticket id.
func (o CreateOutcome) HasID() bool { return o.ID > 0 }

// Tracker is the downstream task-tracking collaborator.
type Tracker interface {
	CreateTicket(ctx context.Context, t Ticket) (CreateOutcome, error)
	TicketsByProject(ctx context.Context, projectID int) ([]TicketRef, error)
	TestConnection(ctx context.Context) error
}
