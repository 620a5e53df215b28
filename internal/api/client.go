package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"fe-v2/internal/session"
	"fe-v2/pkg/logger"
)

// Client issues requests against the namespaced REST backend. It attaches
// the session's bearer credential when present and unwraps the backend's
// success/error shapes. It does not cache, retry or deduplicate.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
	log        *logger.Logger
}

// NewClient creates a new API client
func NewClient(baseURL string, sess *session.Session, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		session: sess,
		log:     log,
	}
}

// BaseURL returns the configured backend address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET against /api/{namespace}/{path} and decodes the JSON
// payload into out
func (c *Client) Get(ctx context.Context, namespace, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, namespace, path, nil, "", out)
}

// Post issues a POST with a JSON body
func (c *Client) Post(ctx context.Context, namespace, path string, body, out interface{}) error {
	reader, err := encodeBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, namespace, path, reader, "application/json", out)
}

// Put issues a PUT with a JSON body
func (c *Client) Put(ctx context.Context, namespace, path string, body, out interface{}) error {
	reader, err := encodeBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, namespace, path, reader, "application/json", out)
}

// PostFile issues a multipart POST with a single file field
func (c *Client) PostFile(ctx context.Context, namespace, path, field, filename string, data []byte, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return NewTransportError("构建上传请求失败", err)
	}
	if _, err := part.Write(data); err != nil {
		return NewTransportError("构建上传请求失败", err)
	}
	if err := writer.Close(); err != nil {
		return NewTransportError("构建上传请求失败", err)
	}

	return c.do(ctx, http.MethodPost, namespace, path, &buf, writer.FormDataContentType(), out)
}

func encodeBody(body interface{}) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, NewTransportError("编码请求失败", err)
	}
	return bytes.NewReader(jsonBody), nil
}

func (c *Client) do(ctx context.Context, method, namespace, path string, body io.Reader, contentType string, out interface{}) error {
	url := fmt.Sprintf("%s/api/%s/%s", c.baseURL, namespace, path)
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return NewTransportError("创建请求失败", err)
	}

	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return NewTransportError("网络请求失败", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewTransportError("读取响应失败", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return NewServerError(resp.StatusCode, extractMessage(respBody, resp.StatusCode))
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		c.log.WithFields(map[string]interface{}{
			"url":         url,
			"status_code": resp.StatusCode,
		}).Error("Failed to parse response body")
		return NewTransportError("解析响应失败", err)
	}

	return nil
}

// extractMessage pulls the human-readable message out of an error response
// body, falling back to a generic message with the status code
func extractMessage(body []byte, statusCode int) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return fmt.Sprintf("请求失败 (%d)", statusCode)
}
