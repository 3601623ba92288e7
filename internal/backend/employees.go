package backend

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/url"
)

func (c *Client) Employees(ctx context.Context, params url.Values) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, "/employees", params, &out)
	return out, err
}

func (c *Client) CreateEmployee(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.postJSON(ctx, "/employees", payload, &out, callOptions{})
	return out, err
}

func (c *Client) UpdateEmployee(ctx context.Context, employeeID string, payload json.RawMessage) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.putJSON(ctx, "/employees/"+employeeID, payload, &out)
	return out, err
}

func (c *Client) DeleteEmployee(ctx context.Context, employeeID string) error {
	return c.delete(ctx, "/employees/"+employeeID)
}

// BulkImportEmployees forwards a CSV file for server-side import.
func (c *Client) BulkImportEmployees(ctx context.Context, fileName string, csv io.Reader) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.postMultipart(ctx, "/employees/bulk-import", func(w *multipart.Writer) error {
		part, err := w.CreateFormFile("csv", fileName)
		if err != nil {
			return err
		}
		_, err = io.Copy(part, csv)
		return err
	}, &out)
	return out, err
}
