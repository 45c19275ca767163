package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sort"
	"strings"

	"storefront-banners/internal/core/config"
	"storefront-banners/internal/core/httpclient"
	"storefront-banners/internal/core/proxy"
	"storefront-banners/internal/features/banners/domain"
)

// maxErrorBody bounds how much of a failed response is read for the error envelope.
const maxErrorBody = 64 << 10

// HTTPBannerAPI implements ports.BannerAPI against the banner REST API.
type HTTPBannerAPI struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// baseURL has no trailing slash.
	baseURL string
	// token is sent as a bearer token on /admin endpoints.
	token string
}

// NewHTTPBannerAPI creates a new HTTPBannerAPI.
func NewHTTPBannerAPI(cfg config.BannerAPIConfig, proxySettings proxy.Settings) *HTTPBannerAPI {
	return &HTTPBannerAPI{
		client:  httpclient.NewClient(cfg.Timeout(), proxySettings),
		baseURL: strings.TrimRight(cfg.URL, "/"),
		token:   cfg.Token,
	}
}

// ListMain handles GET /banners/main.
func (a *HTTPBannerAPI) ListMain(ctx context.Context) ([]domain.Banner, error) {
	var banners []domain.Banner
	if err := a.do(ctx, http.MethodGet, "/banners/main", nil, "", &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

// ListSection handles GET /banners/section.
func (a *HTTPBannerAPI) ListSection(ctx context.Context) ([]domain.Banner, error) {
	var banners []domain.Banner
	if err := a.do(ctx, http.MethodGet, "/banners/section", nil, "", &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

// ListAdmin handles GET /admin/banners.
func (a *HTTPBannerAPI) ListAdmin(ctx context.Context) (*domain.AdminBanners, error) {
	var all domain.AdminBanners
	if err := a.do(ctx, http.MethodGet, "/admin/banners", nil, "", &all); err != nil {
		return nil, err
	}
	return &all, nil
}

// Create handles POST /admin/banners.
func (a *HTTPBannerAPI) Create(ctx context.Context, payload domain.Payload) (*domain.Banner, error) {
	body, contentType, err := encodePayload(payload)
	if err != nil {
		return nil, err
	}

	var created domain.Banner
	if err := a.do(ctx, http.MethodPost, "/admin/banners", body, contentType, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update handles PUT /admin/banners/{id}.
func (a *HTTPBannerAPI) Update(ctx context.Context, id int, payload domain.Payload) (*domain.Banner, error) {
	body, contentType, err := encodePayload(payload)
	if err != nil {
		return nil, err
	}

	var updated domain.Banner
	if err := a.do(ctx, http.MethodPut, fmt.Sprintf("/admin/banners/%d", id), body, contentType, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete handles DELETE /admin/banners/{id}.
func (a *HTTPBannerAPI) Delete(ctx context.Context, id int) error {
	return a.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/banners/%d", id), nil, "", nil)
}

// Reorder handles POST /admin/banners/reorder.
func (a *HTTPBannerAPI) Reorder(ctx context.Context, items []domain.ReorderItem) error {
	data, err := json.Marshal(struct {
		Banners []domain.ReorderItem `json:"banners"`
	}{Banners: items})
	if err != nil {
		return fmt.Errorf("failed to encode reorder request: %w", err)
	}
	return a.do(ctx, http.MethodPost, "/admin/banners/reorder", bytes.NewReader(data), "application/json", nil)
}

// HealthCheck verifies that the public banner endpoint is reachable.
func (a *HTTPBannerAPI) HealthCheck(ctx context.Context) error {
	if _, err := a.ListMain(ctx); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

// do executes a request and decodes a 2xx body into out (when non-nil).
// Non-2xx responses are returned as *domain.APIError.
func (a *HTTPBannerAPI) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if a.token != "" && strings.HasPrefix(path, "/admin/") {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(unwrapData(data), out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeError builds an APIError from the error envelope, falling back to the status text.
func decodeError(resp *http.Response) error {
	apiErr := &domain.APIError{StatusCode: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if len(data) > 0 {
		if err := json.Unmarshal(data, apiErr); err != nil {
			apiErr.Message = ""
			apiErr.Errors = nil
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}

// unwrapData strips a {"data": ...} resource envelope when the API uses one.
func unwrapData(data []byte) []byte {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return data
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return data
	}
	inner, ok := envelope["data"]
	if !ok {
		return data
	}
	if _, isBanner := envelope["id"]; isBanner {
		return data
	}
	return inner
}

// encodePayload renders a create/update payload as a request body and its content type.
func encodePayload(payload domain.Payload) (io.Reader, string, error) {
	switch p := payload.(type) {
	case domain.JSONPayload:
		data, err := json.Marshal(p)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode banner payload: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil

	case domain.MultipartPayload:
		return encodeMultipart(p)

	default:
		return nil, "", errors.New("unsupported banner payload")
	}
}

// encodeMultipart writes the fields in sorted order followed by the image part.
func encodeMultipart(p domain.MultipartPayload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(p.Fields))
	for k := range p.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := w.WriteField(k, p.Fields[k]); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", k, err)
		}
	}

	contentType := p.Image.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		domain.FieldImage, escapeQuotes(p.Image.Filename)))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := part.Write(p.Image.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write image part: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
