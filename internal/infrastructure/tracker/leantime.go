// Package tracker implements the downstream task-tracking client.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mkessler/quickcap/internal/domain/tracker"
)

const (
	rpcPath           = "/api/jsonrpc"
	methodAddTicket   = "leantime.rpc.Tickets.Tickets.quickAddTicket"
	methodListTickets = "leantime.rpc.Tickets.Tickets.getAllByProjectId"
)

// LeantimeClient speaks the tracker's JSON-RPC API. Its quickAddTicket
// method is known to sometimes return a bare `true` instead of the new
// ticket id; the decode keeps that tri-state visible to callers.
type LeantimeClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewLeantimeClient(baseURL, apiKey string) *LeantimeClient {
	return &LeantimeClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      int    `json:"id"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// CreateTicket submits one work item. The result is decoded tri-state:
// a number is the new id, `true` is an acknowledgement without an id, and
// anything else is a failure.
func (c *LeantimeClient) CreateTicket(ctx context.Context, t tracker.Ticket) (tracker.CreateOutcome, error) {
	result, err := c.call(ctx, methodAddTicket, map[string]any{"values": t})
	if err != nil {
		return tracker.CreateOutcome{}, err
	}

	var id int
	if err := json.Unmarshal(result, &id); err == nil && id > 0 {
		return tracker.CreateOutcome{ID: id}, nil
	}

	var acked bool
	if err := json.Unmarshal(result, &acked); err == nil && acked {
		return tracker.CreateOutcome{Acked: true}, nil
	}

	return tracker.CreateOutcome{}, fmt.Errorf("unexpected create result: %s", string(result))
}

// TicketsByProject lists the tickets of one project.
func (c *LeantimeClient) TicketsByProject(ctx context.Context, projectID int) ([]tracker.TicketRef, error) {
	result, err := c.call(ctx, methodListTickets, map[string]any{"projectId": projectID})
	if err != nil {
		return nil, err
	}

	var tickets []tracker.TicketRef
	if err := json.Unmarshal(result, &tickets); err != nil {
		return nil, fmt.Errorf("decode ticket list: %w", err)
	}
	return tickets, nil
}

// TestConnection lists project 0; any well-formed RPC response counts.
func (c *LeantimeClient) TestConnection(ctx context.Context) error {
	if c.baseURL == "" || c.apiKey == "" {
		return fmt.Errorf("tracker url and api key are required")
	}
	_, err := c.call(ctx, methodListTickets, map[string]any{"projectId": 0})
	return err
}

func (c *LeantimeClient) call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+rpcPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tracker request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tracker returned status %d", resp.StatusCode)
	}

	var rpc rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpc); err != nil {
		return nil, fmt.Errorf("decode tracker response: %w", err)
	}
	if rpc.Error != nil {
		return nil, rpc.Error
	}
	return rpc.Result, nil
}
