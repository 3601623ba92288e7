package backend

import (
	"context"
	"encoding/json"
	"fmt"
)

type LeaveAction string

const (
	LeaveApprove LeaveAction = "approve"
	LeaveReject  LeaveAction = "reject"
)

func (c *Client) SubmitLeaveRequest(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.postJSON(ctx, "/leave-requests", payload, &out, callOptions{})
	return out, err
}

func (c *Client) LeaveRequests(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, "/leave-requests", nil, &out)
	return out, err
}

// TeamLeaveRequests lists the manager's team queue.
func (c *Client) TeamLeaveRequests(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, "/leave-requests/team", nil, &out)
	return out, err
}

// ProcessLeaveRequest approves or rejects a request with an optional note.
func (c *Client) ProcessLeaveRequest(ctx context.Context, requestID string, action LeaveAction, note string) (json.RawMessage, error) {
	if action != LeaveApprove && action != LeaveReject {
		return nil, fmt.Errorf("unsupported leave action %q", action)
	}
	var out json.RawMessage
	body := map[string]string{"note": note}
	err := c.putJSON(ctx, fmt.Sprintf("/leave-requests/%s/%s", requestID, action), body, &out)
	return out, err
}
