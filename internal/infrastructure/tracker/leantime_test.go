package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mkessler/quickcap/internal/domain/tracker"
)

func rpcServer(t *testing.T, result string) (*httptest.Server, *rpcRequest) {
	t.Helper()
	var captured rpcRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/jsonrpc" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if key := r.Header.Get("x-api-key"); key != "secret" {
			t.Errorf("x-api-key = %q", key)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode rpc request: %v", err)
		}
		fmt.Fprintf(w, `{"jsonrpc":"2.0","result":%s,"id":1}`, result)
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestCreateTicket_NumericResult(t *testing.T) {
	srv, captured := rpcServer(t, "123")
	c := NewLeantimeClient(srv.URL, "secret")

	outcome, err := c.CreateTicket(context.Background(), tracker.Ticket{Headline: "x", ProjectID: 7})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	if !outcome.HasID() || outcome.ID != 123 {
		t.Errorf("outcome = %+v, want id 123", outcome)
	}
	if captured.Method != "leantime.rpc.Tickets.Tickets.quickAddTicket" {
		t.Errorf("method = %q", captured.Method)
	}
}

func TestCreateTicket_BareTrueResult(t *testing.T) {
	srv, _ := rpcServer(t, "true")
	c := NewLeantimeClient(srv.URL, "secret")

	outcome, err := c.CreateTicket(context.Background(), tracker.Ticket{Headline: "x"})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	if outcome.HasID() || !outcome.Acked {
		t.Errorf("outcome = %+v, want acked without id", outcome)
	}
}

func TestCreateTicket_GarbageResult(t *testing.T) {
	for _, result := range []string{"false", `"done"`, "0", "null"} {
		srv, _ := rpcServer(t, result)
		c := NewLeantimeClient(srv.URL, "secret")

		_, err := c.CreateTicket(context.Background(), tracker.Ticket{Headline: "x"})
		if err == nil || !strings.Contains(err.Error(), "unexpected create result") {
			t.Errorf("result %s: error = %v, want unexpected create result", result, err)
		}
	}
}

func TestCreateTicket_RPCError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","error":{"code":-32602,"message":"invalid params"},"id":1}`))
	}))
	defer srv.Close()
	c := NewLeantimeClient(srv.URL, "secret")

	_, err := c.CreateTicket(context.Background(), tracker.Ticket{Headline: "x"})
	if err == nil || !strings.Contains(err.Error(), "invalid params") {
		t.Errorf("error = %v, want rpc error message", err)
	}
}

func TestCreateTicket_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()
	c := NewLeantimeClient(srv.URL, "wrong")

	_, err := c.CreateTicket(context.Background(), tracker.Ticket{Headline: "x"})
	if err == nil || !strings.Contains(err.Error(), "status 401") {
		t.Errorf("error = %v, want status 401", err)
	}
}

func TestTicketsByProject(t *testing.T) {
	srv, captured := rpcServer(t, `[{"id":5,"headline":"A"},{"id":9,"headline":"B"}]`)
	c := NewLeantimeClient(srv.URL, "secret")

	tickets, err := c.TicketsByProject(context.Background(), 7)
	if err != nil {
		t.Fatalf("TicketsByProject: %v", err)
	}
	if len(tickets) != 2 || tickets[1].ID != 9 || tickets[1].Headline != "B" {
		t.Errorf("tickets = %+v", tickets)
	}
	if captured.Method != "leantime.rpc.Tickets.Tickets.getAllByProjectId" {
		t.Errorf("method = %q", captured.Method)
	}
}

func TestTestConnection_RequiresConfiguration(t *testing.T) {
	c := NewLeantimeClient("", "")
	if err := c.TestConnection(context.Background()); err == nil {
		t.Error("expected error for unconfigured client")
	}
}
