package backend

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/url"
)

// WorkLogEntry is submitted as a multipart form, matching the submission
// contract the work log screen uses for optional file attachments.
type WorkLogEntry struct {
	Fields     map[string]string
	Attachment *Attachment
}

type Attachment struct {
	FieldName string
	FileName  string
	Content   io.Reader
}

func (c *Client) SubmitWorkLog(ctx context.Context, entry WorkLogEntry) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.postMultipart(ctx, "/work-logs", func(w *multipart.Writer) error {
		for key, value := range entry.Fields {
			if err := w.WriteField(key, value); err != nil {
				return err
			}
		}
		if entry.Attachment != nil {
			part, err := w.CreateFormFile(entry.Attachment.FieldName, entry.Attachment.FileName)
			if err != nil {
				return err
			}
			if _, err := io.Copy(part, entry.Attachment.Content); err != nil {
				return err
			}
		}
		return nil
	}, &out)
	return out, err
}

func (c *Client) WorkLogs(ctx context.Context, params url.Values) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, "/work-logs", params, &out)
	return out, err
}

func (c *Client) UpdateWorkLog(ctx context.Context, logID string, payload json.RawMessage) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.putJSON(ctx, "/work-logs/"+logID, payload, &out)
	return out, err
}

func (c *Client) DeleteWorkLog(ctx context.Context, logID string) error {
	return c.delete(ctx, "/work-logs/"+logID)
}
