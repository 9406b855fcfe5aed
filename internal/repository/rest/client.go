// Package restrepo implements the domain repositories against the clinic's
// REST API. It plays the part a database layer plays on the server: every
// read and write of domain data goes through here.
package restrepo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"petclinic-client/internal/domain"
	"petclinic-client/pkg/utils"
)

// Doer executes HTTP requests. *http.Client and *AuthRetrier satisfy it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a non-2xx response with the message the API sent back.
type APIError struct {
	Status  int
	Message string
	Method  string
	Path    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is lets callers match on the domain sentinels with errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	case domain.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case domain.ErrForbidden:
		return e.Status == http.StatusForbidden
	case domain.ErrSlotTaken:
		return e.Status == http.StatusConflict
	}
	return false
}

// Client shapes requests against one base URL.
type Client struct {
	baseURL string
	doer    Doer
}

func NewClient(baseURL string, doer Doer) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		doer:    doer,
	}
}

// get, post, put and patch decode the (optionally "data"-enveloped) body into result.

func (c *Client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	raw, err := c.send(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return decodeData(raw, result)
}

func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	raw, err := c.send(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	return decodeData(raw, result)
}

func (c *Client) put(ctx context.Context, path string, body, result interface{}) error {
	raw, err := c.send(ctx, http.MethodPut, path, nil, body)
	if err != nil {
		return err
	}
	return decodeData(raw, result)
}

func (c *Client) patch(ctx context.Context, path string, body, result interface{}) error {
	raw, err := c.send(ctx, http.MethodPatch, path, nil, body)
	if err != nil {
		return err
	}
	return decodeData(raw, result)
}

// getPage is get for list endpoints that may carry pagination metadata.
func (c *Client) getPage(ctx context.Context, path string, query url.Values, result interface{}) (domain.Pagination, error) {
	raw, err := c.send(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return domain.Pagination{}, err
	}
	return decodePage(raw, result)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	var payload []byte
	if body != nil {
		data, err := utils.EncodeJSON(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		payload = data
	}

	req, err := c.newRequest(ctx, method, path, query, payload, "application/json")
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// upload posts a single file as multipart/form-data under field.
func (c *Client) upload(ctx context.Context, path, field string, file domain.Upload, result interface{}) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, file.Filename))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file.Body); err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, buf.Bytes(), mw.FormDataContentType())
	if err != nil {
		return err
	}
	raw, err := c.do(req)
	if err != nil {
		return err
	}
	return decodeData(raw, result)
}

// newRequest always uses a bytes.Reader body so GetBody is set and the
// auth decorator can replay the request.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, payload []byte, contentType string) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, utils.MaxErrorBody))
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: utils.ExtractErrorMessage(resp.StatusCode, data),
			Method:  req.Method,
			Path:    req.URL.Path,
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

func decodeData(raw []byte, out interface{}) error {
	raw = bytes.TrimSpace(raw)
	if out == nil || len(raw) == 0 {
		return nil
	}
	if raw[0] == '{' {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
			raw = env.Data
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodePage(raw []byte, out interface{}) (domain.Pagination, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return domain.Pagination{}, nil
	}
	if raw[0] == '[' {
		return domain.Pagination{}, decodeData(raw, out)
	}

	var env struct {
		Data       json.RawMessage    `json:"data"`
		Meta       *domain.Pagination `json:"meta"`
		Pagination *domain.Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return domain.Pagination{}, fmt.Errorf("decode response: %w", err)
	}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return domain.Pagination{}, fmt.Errorf("decode response: %w", err)
		}
	}

	switch {
	case env.Meta != nil:
		return *env.Meta, nil
	case env.Pagination != nil:
		return *env.Pagination, nil
	}
	return domain.Pagination{}, nil
}

func pageQuery(page, limit int) url.Values {
	page, limit = domain.NormalizePage(page, limit)
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q
}

func escape(id string) string {
	return url.PathEscape(id)
}
