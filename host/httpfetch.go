package host

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/unkn0wn-root/swkit"
)

// maxBodyBytes bounds a captured response body; offline assets are small
// and an unbounded read would let one huge response wedge an install.
const maxBodyBytes = 16 << 20 // 16 MB

// NetFetcher adapts an *http.Client to swkit.Fetcher. Relative asset
// paths (the manifest form) are resolved against Base.
type NetFetcher struct {
	Client *http.Client
	Base   string // origin, e.g. "https://app.example.com"
}

var _ swkit.Fetcher = (*NetFetcher)(nil)

func (f *NetFetcher) Fetch(ctx context.Context, id swkit.Identity) (swkit.Response, error) {
	var zero swkit.Response

	url := id.URL
	if strings.HasPrefix(url, "/") {
		url = strings.TrimSuffix(f.Base, "/") + url
	}

	method := id.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return zero, err
	}
	for name, val := range id.Vary {
		req.Header.Set(name, val)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return zero, err
	}
	if len(body) > maxBodyBytes {
		return zero, fmt.Errorf("host: response body for %s exceeds %d bytes", id.URL, maxBodyBytes)
	}

	header := make(map[string]string, len(resp.Header))
	for name := range resp.Header {
		header[name] = resp.Header.Get(name)
	}

	return swkit.Response{
		Status: resp.StatusCode,
		Header: header,
		Body:   body,
	}, nil
}

// RoundTripper exposes the worker's fetch interception as an
// http.RoundTripper, so a local http.Client can be "controlled" by the
// worker the way pages are: cached assets are served without touching the
// network, everything else passes through.
type RoundTripper struct {
	Worker *swkit.Worker
}

var _ http.RoundTripper = (*RoundTripper)(nil)

func (t *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	id := swkit.Identity{
		Method: req.Method,
		URL:    req.URL.RequestURI(),
	}

	r, err := t.Worker.HandleFetch(req.Context(), id)
	if err != nil {
		return nil, err
	}

	header := make(http.Header, len(r.Header))
	for name, val := range r.Header {
		header.Set(name, val)
	}
	return &http.Response{
		StatusCode:    r.Status,
		Status:        fmt.Sprintf("%d %s", r.Status, http.StatusText(r.Status)),
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(r.Body)),
		ContentLength: int64(len(r.Body)),
		Request:       req,
	}, nil
}
