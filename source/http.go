package source

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/grovetools/jsonedit/codec"
	"github.com/grovetools/jsonedit/errors"
	"github.com/grovetools/jsonedit/value"
)

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 64 << 20

// HTTP fetches a document with a GET request.
type HTTP struct {
	URL     string
	Format  codec.Format
	Headers map[string]string
	Client  *http.Client

	// MaxBytes caps the response size; zero means maxBodyBytes.
	MaxBytes int64
}

func (h *HTTP) limit() int64 {
	if h.MaxBytes > 0 {
		return h.MaxBytes
	}
	return maxBodyBytes
}

func (h *HTTP) Describe() string { return h.URL }

func (h *HTTP) Fetch(ctx context.Context) (value.Value, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, errors.FetchFailure(h.URL, err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")
	for k, v := range h.Headers {
		req.Header.Set(k, v)
	}

	client := h.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.FetchFailure(h.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.FetchFailure(h.URL, fmt.Errorf("unexpected status %s", resp.Status)).
			WithDetail("status", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, h.limit()+1))
	if err != nil {
		return nil, errors.FetchFailure(h.URL, err)
	}
	if int64(len(data)) > h.limit() {
		return nil, errors.FetchFailure(h.URL, fmt.Errorf("response larger than %d bytes", h.limit())).
			WithDetail("limit", h.limit())
	}
	return decode(h.URL, h.format(resp), data)
}

func (h *HTTP) format(resp *http.Response) codec.Format {
	if h.Format != "" {
		return h.Format
	}
	if mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err == nil {
		switch mt {
		case "application/yaml", "application/x-yaml", "text/yaml":
			return codec.FormatYAML
		case "application/toml":
			return codec.FormatTOML
		}
	}
	if u, err := url.Parse(h.URL); err == nil {
		return codec.DetectFormat(u.Path)
	}
	return codec.FormatJSON
}
