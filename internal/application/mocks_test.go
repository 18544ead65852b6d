package application

import (
	"context"
	"fmt"

	"github.com/mkessler/quickcap/internal/domain/ai"
	"github.com/mkessler/quickcap/internal/domain/category"
	"github.com/mkessler/quickcap/internal/domain/settings"
	"github.com/mkessler/quickcap/internal/domain/tracker"
)

// stubCategoryStore serves a fixed catalog from memory.
type stubCategoryStore struct {
	categories []category.Category
	saved      []category.Category
	deleted    []string
	err        error
}

func (s *stubCategoryStore) All() ([]category.Category, error) {
	return s.categories, s.err
}

func (s *stubCategoryStore) Save(c category.Category) error {
	s.saved = append(s.saved, c)
	return s.err
}

func (s *stubCategoryStore) Delete(key string) error {
	s.deleted = append(s.deleted, key)
	return s.err
}

// stubSettingsStore serves fixed values from memory.
type stubSettingsStore struct {
	values settings.Values
	err    error
}

func (s *stubSettingsStore) Get(key string) (string, error) { return s.values[key], s.err }
func (s *stubSettingsStore) All() (settings.Values, error)  { return s.values, s.err }
func (s *stubSettingsStore) Set(key, value string) error {
	s.values[key] = value
	return s.err
}
func (s *stubSettingsStore) SetAll(values map[string]string) error {
	for k, v := range values {
		s.values[k] = v
	}
	return s.err
}
func (s *stubSettingsStore) EnsureInstalled() error { return s.err }

// stubProvider replies with a canned completion.
type stubProvider struct {
	reply    string
	err      error
	requests []ai.CompletionRequest
	models   []string
}

func (p *stubProvider) ID() string { return "stub" }

func (p *stubProvider) Complete(_ context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	p.requests = append(p.requests, req)
	if p.err != nil {
		return nil, p.err
	}
	return &ai.CompletionResponse{Text: p.reply, Model: "stub-model"}, nil
}

func (p *stubProvider) ListModels(context.Context) ([]string, error) { return p.models, p.err }
func (p *stubProvider) TestConnection(context.Context) error         { return p.err }

// createReply scripts one CreateTicket response.
type createReply struct {
	outcome tracker.CreateOutcome
	err     error
}

// fakeTracker replays scripted create outcomes in order and records every
// submitted ticket.
type fakeTracker struct {
	replies  []createReply
	created  []tracker.Ticket
	listing  []tracker.TicketRef
	listErr  error
	listAsks []int
}

func (f *fakeTracker) CreateTicket(_ context.Context, t tracker.Ticket) (tracker.CreateOutcome, error) {
	f.created = append(f.created, t)
	if len(f.replies) == 0 {
		return tracker.CreateOutcome{}, fmt.Errorf("unscripted create call for %q", t.Headline)
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply.outcome, reply.err
}

func (f *fakeTracker) TicketsByProject(_ context.Context, projectID int) ([]tracker.TicketRef, error) {
	f.listAsks = append(f.listAsks, projectID)
	return f.listing, f.listErr
}

func (f *fakeTracker) TestConnection(context.Context) error { return nil }

func testCatalog() []category.Category {
	return []category.Category{
		{Key: "kundenbestellung", Name: "Kundenbestellung", Icon: "🛒", Color: "#2563EB", Keywords: []string{"bestellung", "kunde"}},
		{Key: "einkauf", Name: "Einkauf", Icon: "📦", Color: "#7C3AED", Keywords: []string{"lieferant", "bestand"}},
		{Key: "anfrage", Name: "Anfrage", Icon: "❓", Color: "#0891B2", Keywords: []string{"anfrage", "angebot"}, Default: true},
	}
}
