package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/mkessler/quickcap/internal/domain/capture"
	"github.com/mkessler/quickcap/internal/domain/tracker"
)

// CaptureResult reports the materialized tickets. SubtaskIDs may contain
// fewer entries than the draft requested: subtask creation is best-effort.
type CaptureResult struct {
	MainTaskID int   `json:"mainTaskId"`
	SubtaskIDs []int `json:"subtaskIds"`
}

// CaptureService materializes a task draft in the downstream tracker using a
// two-phase flow: create the main ticket (with id recovery when the tracker
// acknowledges without an id), then create the subtasks in order.
type CaptureService struct {
	tracker    tracker.Tracker
	categories *CategoryService
	logger     *slog.Logger
}

func NewCaptureService(t tracker.Tracker, categories *CategoryService, logger *slog.Logger) *CaptureService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CaptureService{tracker: t, categories: categories, logger: logger}
}

// Materialize creates the main ticket and its subtasks for the acting user.
// Phase 2 only runs with a known main ticket id; individual subtask failures
// are logged and skipped, never escalated.
func (s *CaptureService) Materialize(ctx context.Context, draft *capture.TaskDraft, userID int) (*CaptureResult, error) {
	if !draft.Valid() {
		return nil, fmt.Errorf("%w: title and project id are required", capture.ErrInvalidTask)
	}

	mainID, err := s.createMainTicket(ctx, draft, userID)
	if err != nil {
		return nil, err
	}

	result := &CaptureResult{MainTaskID: mainID, SubtaskIDs: []int{}}
	for i, text := range draft.Subtasks {
		id, err := s.createSubtask(ctx, draft.ProjectID, mainID, text, userID)
		if err != nil {
			s.logger.Warn("subtask creation failed, continuing",
				"index", i, "headline", text, "error", err)
			continue
		}
		result.SubtaskIDs = append(result.SubtaskIDs, id)
	}

	s.logger.Info("capture materialized",
		"mainTaskId", mainID,
		"subtasksRequested", len(draft.Subtasks),
		"subtasksCreated", len(result.SubtaskIDs))
	return result, nil
}

func (s *CaptureService) createMainTicket(ctx context.Context, draft *capture.TaskDraft, userID int) (int, error) {
	categoryName := ""
	if draft.Category != "" {
		categoryName = s.categories.Resolve(draft.Category).Name
	}
	ticket := tracker.Ticket{
		Headline:    draft.Title,
		Description: formatDescription(draft.Description, categoryName),
		ProjectID:   draft.ProjectID,
		EditorID:    userID,
		UserID:      userID,
		Priority:    draft.Priority,
		Type:        tracker.TypeTask,
		Status:      tracker.StatusOpen,
	}
	if draft.Deadline != "" {
		ticket.DateToFinish = draft.Deadline
	}
	if len(draft.Tags) > 0 {
		ticket.Tags = strings.Join(draft.Tags, ",")
	}

	outcome, err := s.tracker.CreateTicket(ctx, ticket)
	if err != nil {
		s.logger.Error("main ticket creation failed", "headline", ticket.Headline, "error", err)
		return 0, fmt.Errorf("%w: %v", tracker.ErrCreateFailed, err)
	}
	if outcome.HasID() {
		return outcome.ID, nil
	}
	if !outcome.Acked {
		return 0, fmt.Errorf("%w: tracker returned neither id nor acknowledgement", tracker.ErrCreateFailed)
	}

	// The tracker created the ticket but did not return the id. Recover it
	// by listing the project and matching the headline. A miss here is
	// reported as failure even though the ticket may exist.
	s.logger.Warn("tracker acknowledged without id, attempting recovery", "headline", ticket.Headline)
	tickets, err := s.tracker.TicketsByProject(ctx, draft.ProjectID)
	if err != nil {
		return 0, fmt.Errorf("%w: id recovery listing failed: %v", tracker.ErrCreateFailed, err)
	}
	id, ok := RecoverTicketID(tickets, ticket.Headline)
	if !ok {
		return 0, fmt.Errorf("%w: id recovery found no ticket with matching headline", tracker.ErrCreateFailed)
	}
	return id, nil
}

func (s *CaptureService) createSubtask(ctx context.Context, projectID, mainID int, text string, userID int) (int, error) {
	outcome, err := s.tracker.CreateTicket(ctx, tracker.Ticket{
		Headline:    text,
		Description: "",
		ProjectID:   projectID,
		EditorID:    userID,
		UserID:      userID,
		Priority:    capture.PriorityMedium,
		Type:        tracker.TypeSubtask,
		Status:      tracker.StatusOpen,
		DependsOnID: mainID,
	})
	if err != nil {
		return 0, err
	}
	if outcome.HasID() {
		return outcome.ID, nil
	}
	if outcome.Acked {
		// No per-subtask recovery; record the sentinel instead.
		return tracker.UnknownTicketID, nil
	}
	return 0, fmt.Errorf("tracker returned neither id nor acknowledgement")
}

// RecoverTicketID locates a freshly created ticket by exact headline match,
// preferring the highest id. Two tickets sharing a headline resolve to the
// newer one; that false-positive window is a documented limitation of the
// recovery heuristic.
func RecoverTicketID(tickets []tracker.TicketRef, headline string) (int, bool) {
	sorted := make([]tracker.TicketRef, len(tickets))
	copy(sorted, tickets)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID > sorted[j].ID })

	for _, t := range sorted {
		if t.Headline == headline {
			return t.ID, true
		}
	}
	return 0, false
}

// formatDescription prepends the category badge and appends the
// auto-generated trailer.
func formatDescription(description, categoryName string) string {
	if categoryName != "" {
		description = fmt.Sprintf("**📁 Kategorie:** %s\n\n%s", categoryName, description)
	}
	return description + "\n\n---\n*Automatisch erstellt via quickcap*"
}
