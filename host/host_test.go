package host

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/unkn0wn-root/swkit"
	pr "github.com/unkn0wn-root/swkit/provider"
)

type memProvider struct {
	mu sync.RWMutex
	m  map[string][]byte
}

var _ pr.Provider = (*memProvider)(nil)

func newMemProvider() *memProvider { return &memProvider{m: make(map[string][]byte)} }

func (p *memProvider) Get(_ context.Context, key string) ([]byte, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	b, ok := p.m[key]
	return b, ok, nil
}

func (p *memProvider) Set(_ context.Context, key string, value []byte, _ time.Duration) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m[key] = value
	return true, nil
}

func (p *memProvider) Del(_ context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.m, key)
	return nil
}

func (p *memProvider) DelPrefix(_ context.Context, prefix string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for k := range p.m {
		if strings.HasPrefix(k, prefix) {
			delete(p.m, k)
		}
	}
	return nil
}

func (p *memProvider) Close(context.Context) error { return nil }

type countingFetcher struct {
	mu    sync.Mutex
	calls int
}

func (f *countingFetcher) Fetch(_ context.Context, id swkit.Identity) (swkit.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return swkit.Response{Status: 200, Body: []byte("asset:" + id.URL)}, nil
}

func (f *countingFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type memSurface struct {
	mu      sync.Mutex
	visible map[string]string // tag -> title
}

func newMemSurface() *memSurface { return &memSurface{visible: make(map[string]string)} }

func (s *memSurface) Show(_ context.Context, title string, opts swkit.RenderOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible[opts.Tag] = title
	return nil
}

func (s *memSurface) Close(_ context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.visible, tag)
	return nil
}

func (s *memSurface) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visible)
}

func newTestWorker(t *testing.T) (*swkit.Worker, *countingFetcher, *memSurface) {
	t.Helper()
	f := &countingFetcher{}
	s := newMemSurface()
	w, err := swkit.New(swkit.Options{
		Version:  "v1",
		Provider: newMemProvider(),
		Fetcher:  f,
		Renderer: s,
	})
	if err != nil {
		t.Fatalf("swkit.New: %v", err)
	}
	return w, f, s
}

func TestRuntimeStartActivatesWorker(t *testing.T) {
	w, _, _ := newTestWorker(t)
	r, err := New(w, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if w.State() != swkit.StateActivated {
		t.Fatalf("state=%s want activated", w.State())
	}
}

// Shutdown must wait for in-flight event handlers, and refuse events
// afterwards.
func TestRuntimeShutdownWaitsForHandlers(t *testing.T) {
	w, _, s := newTestWorker(t)
	r, err := New(w, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r.Push([]byte(`{"tag":"inflight","body":"queued"}`))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if s.count() != 1 {
		t.Fatalf("visible=%d want 1 (handler must complete before shutdown)", s.count())
	}

	r.Push([]byte(`{"tag":"late"}`)) // dropped
	if s.count() != 1 {
		t.Fatal("event accepted after shutdown")
	}
}

// RoundTripper serves precached assets without touching the fetcher again.
func TestRoundTripperServesFromCache(t *testing.T) {
	w, f, _ := newTestWorker(t)
	if err := w.HandleInstall(context.Background()); err != nil {
		t.Fatalf("HandleInstall: %v", err)
	}
	installCalls := f.count()

	client := &http.Client{Transport: &RoundTripper{Worker: w}}
	resp, err := client.Get("http://app.local/offline.html")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != 200 || string(body) != "asset:/offline.html" {
		t.Fatalf("status=%d body=%q", resp.StatusCode, body)
	}
	if f.count() != installCalls {
		t.Fatalf("cache hit issued %d extra network calls", f.count()-installCalls)
	}
}

func TestNetFetcherCapturesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/icon-192.png" {
			http.NotFound(rw, req)
			return
		}
		rw.Header().Set("Content-Type", "image/png")
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	f := &NetFetcher{Client: srv.Client(), Base: srv.URL}
	resp, err := f.Fetch(context.Background(), swkit.Identity{Method: "GET", URL: "/icon-192.png"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if resp.Status != 200 || string(resp.Body) != "png-bytes" {
		t.Fatalf("status=%d body=%q", resp.Status, resp.Body)
	}
	if resp.Header["Content-Type"] != "image/png" {
		t.Fatalf("header=%v", resp.Header)
	}
}
