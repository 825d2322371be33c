package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aimandesu/portfolio-mobile/internal/logging"
	"github.com/aimandesu/portfolio-mobile/internal/schema"
)

// HTTPClient implements Client against a fixed base URL.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient builds a client for the given base URL, e.g.
// "http://10.0.2.2:8000". The timeout belongs to the transport; stores do
// not enforce one of their own.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	if log == nil {
		log = logging.Discard()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// envelope is the wire shape of every response body.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*AuthPayload, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	data, err := c.do(ctx, http.MethodPost, "/api/auth/register", "", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return decodeAuthPayload(data)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	data, err := c.do(ctx, http.MethodPost, "/api/auth/login", "", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return decodeAuthPayload(data)
}

func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/auth/logout", token, "application/json", nil)
	return err
}

func (c *HTTPClient) UpdateUser(ctx context.Context, token string, userID int64, fields url.Values) (json.RawMessage, error) {
	path := fmt.Sprintf("/api/users/%d", userID)
	body := strings.NewReader(fields.Encode())
	return c.do(ctx, http.MethodPut, path, token, "application/x-www-form-urlencoded", body)
}

func (c *HTTPClient) UploadImage(ctx context.Context, token string, userID int64, file schema.LocalFile) (string, error) {
	path := fmt.Sprintf("/api/users/%d/uploadImage", userID)
	return c.uploadFile(ctx, path, token, "image", file)
}

func (c *HTTPClient) UploadResume(ctx context.Context, token string, userID int64, file schema.LocalFile) (string, error) {
	path := fmt.Sprintf("/api/users/%d/uploadResume", userID)
	return c.uploadFile(ctx, path, token, "resume", file)
}

func (c *HTTPClient) ListEducation(ctx context.Context, userID int64) (json.RawMessage, error) {
	path := fmt.Sprintf("/api/education/user/%d", userID)
	return c.do(ctx, http.MethodGet, path, "", "", nil)
}

func (c *HTTPClient) AddEducation(ctx context.Context, token string, form EducationForm) (json.RawMessage, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, value := range map[string]string{
		"location":    form.Location,
		"level":       form.Level,
		"achievement": form.Achievement,
	} {
		if err := w.WriteField(field, value); err != nil {
			return nil, err
		}
	}
	if form.File != nil {
		if err := writeFilePart(w, "files", *form.File); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, "/api/education", token, w.FormDataContentType(), &buf)
}

func (c *HTTPClient) DeleteEducation(ctx context.Context, token string, educationID int64) error {
	path := fmt.Sprintf("/api/education/%d", educationID)
	_, err := c.do(ctx, http.MethodDelete, path, token, "", nil)
	return err
}

// uploadFile sends one local file as a multipart body and returns the
// remote reference from the response's single data field.
func (c *HTTPClient) uploadFile(ctx context.Context, path, token, field string, file schema.LocalFile) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := writeFilePart(w, field, file); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	data, err := c.do(ctx, http.MethodPost, path, token, w.FormDataContentType(), &buf)
	if err != nil {
		return "", err
	}
	var refs map[string]string
	if err := json.Unmarshal(data, &refs); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	ref, ok := refs[field]
	if !ok {
		return "", fmt.Errorf("upload response missing %q reference", field)
	}
	return ref, nil
}

func writeFilePart(w *multipart.Writer, field string, file schema.LocalFile) error {
	f, err := openLocal(file)
	if err != nil {
		return err
	}
	defer f.Close()

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, file.Name))
	if file.MimeType != "" {
		h.Set("Content-Type", file.MimeType)
	}
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}

func openLocal(file schema.LocalFile) (io.ReadCloser, error) {
	path := strings.TrimPrefix(file.URI, "file://")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file.Name, err)
	}
	return f, nil
}

// do performs one round trip and decodes the response envelope.
func (c *HTTPClient) do(ctx context.Context, method, path, token, contentType string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "err", err)
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	var env envelope
	if len(raw) > 0 {
		// a non-JSON body is only acceptable alongside a success status
		if err := json.Unmarshal(raw, &env); err != nil && !is2xx(resp.StatusCode) {
			return nil, &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
	}
	if env.Error != "" {
		c.log.Warn(ctx, "server reported failure", "method", method, "path", path, "request_id", requestID, "status", resp.StatusCode)
		return nil, &APIError{Status: resp.StatusCode, Message: env.Error}
	}
	if !is2xx(resp.StatusCode) {
		return nil, &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	c.log.Debug(ctx, "request completed", "method", method, "path", path, "request_id", requestID, "status", resp.StatusCode)
	return env.Data, nil
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}

func decodeAuthPayload(data json.RawMessage) (*AuthPayload, error) {
	var p AuthPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode auth payload: %w", err)
	}
	return &p, nil
}
