package backend

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// Remaining domain groups: team review, reporting, notifications,
// dashboard, audit trail and calendar. All are opaque passthroughs; the
// backend owns the payload shapes.

func (c *Client) TeamLogs(ctx context.Context, params url.Values) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, "/team/logs", params, &out)
	return out, err
}

func (c *Client) SubmitLogFeedback(ctx context.Context, logID, feedback string) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.postJSON(ctx, "/team/logs/"+logID+"/feedback", map[string]string{"feedback": feedback}, &out, callOptions{})
	return out, err
}

func (c *Client) GenerateReport(ctx context.Context, params json.RawMessage) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.postJSON(ctx, "/reports/generate", params, &out, callOptions{})
	return out, err
}

// ExportReportPDF returns the backend-rendered PDF blob and content type.
func (c *Client) ExportReportPDF(ctx context.Context, params json.RawMessage) ([]byte, string, error) {
	return c.postBlob(ctx, "/reports/export/pdf", params)
}

func (c *Client) ExportReportExcel(ctx context.Context, params json.RawMessage) ([]byte, string, error) {
	return c.postBlob(ctx, "/reports/export/excel", params)
}

func (c *Client) Notifications(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, "/notifications", nil, &out)
	return out, err
}

func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.putJSON(ctx, "/notifications/"+notificationID+"/read", nil, &out)
	return out, err
}

func (c *Client) DashboardStats(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, "/dashboard/stats", nil, &out)
	return out, err
}

func (c *Client) TeamStats(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, "/dashboard/team-stats", nil, &out)
	return out, err
}

func (c *Client) SystemStats(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, "/dashboard/system-stats", nil, &out)
	return out, err
}

func (c *Client) AuditTrail(ctx context.Context, limit, offset int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	var out json.RawMessage
	err := c.get(ctx, "/audit-trail", params, &out)
	return out, err
}

func (c *Client) CalendarEvents(ctx context.Context, year, month int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("year", strconv.Itoa(year))
	params.Set("month", strconv.Itoa(month))
	var out json.RawMessage
	err := c.get(ctx, "/calendar/events", params, &out)
	return out, err
}

func (c *Client) UserCalendarEvents(ctx context.Context, params url.Values) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, "/calendar/user-events", params, &out)
	return out, err
}
