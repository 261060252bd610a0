package swkit

import (
	"context"
	"errors"
	"testing"

	reg "github.com/unkn0wn-root/swkit/registry"
)

func TestInstallPrecachesManifest(t *testing.T) {
	ctx := context.Background()
	rig := newTestWorker(t, "v1", nil)
	rig.fetcher.responses["/offline.html"] = Response{
		Status: 200,
		Header: map[string]string{"Content-Type": "text/html"},
		Body:   []byte("<h1>offline</h1>"),
	}

	if err := rig.w.HandleInstall(ctx); err != nil {
		t.Fatalf("HandleInstall: %v", err)
	}
	if rig.w.State() != StateInstalled {
		t.Fatalf("state=%s want installed", rig.w.State())
	}
	if got, want := rig.fetcher.total(), len(DefaultManifest); got != want {
		t.Fatalf("network calls=%d want %d (one per manifest asset)", got, want)
	}

	// The cached offline page is served without another network call.
	resp, err := rig.w.HandleFetch(ctx, Identity{Method: "GET", URL: "/offline.html"})
	if err != nil {
		t.Fatalf("HandleFetch: %v", err)
	}
	if string(resp.Body) != "<h1>offline</h1>" || resp.Header["Content-Type"] != "text/html" {
		t.Fatalf("unexpected cached response: %+v", resp)
	}
	if rig.fetcher.count("/offline.html") != 1 {
		t.Fatalf("offline.html fetched %d times, want 1", rig.fetcher.count("/offline.html"))
	}
}

// TestInstallFailFast: one bad manifest asset sinks the whole install and
// leaves no partial generation behind.
func TestInstallFailFast(t *testing.T) {
	ctx := context.Background()
	rig := newTestWorker(t, "v1", nil)
	boom := errors.New("origin unreachable")
	rig.fetcher.errs["/icon-512.png"] = boom

	err := rig.w.HandleInstall(ctx)
	if err == nil {
		t.Fatal("install should fail when a manifest asset fails")
	}
	var ie *InstallError
	if !errors.As(err, &ie) {
		t.Fatalf("err=%T want *InstallError", err)
	}
	if ie.Asset != "/icon-512.png" || !errors.Is(err, boom) {
		t.Fatalf("InstallError=%v", ie)
	}
	if rig.w.State() != StateRedundant {
		t.Fatalf("state=%s want redundant", rig.w.State())
	}
	if n := rig.mp.len(); n != 0 {
		t.Fatalf("%d entries left after failed install, want 0", n)
	}
}

func TestActivateBeforeInstallFails(t *testing.T) {
	rig := newTestWorker(t, "v1", nil)
	err := rig.w.HandleActivate(context.Background())
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("err=%v want *TransitionError", err)
	}
}

func TestInstallTwiceFails(t *testing.T) {
	ctx := context.Background()
	rig := newTestWorker(t, "v1", nil)
	if err := rig.w.HandleInstall(ctx); err != nil {
		t.Fatalf("HandleInstall: %v", err)
	}
	if err := rig.w.HandleInstall(ctx); err == nil {
		t.Fatal("second install should fail")
	}
}

// TestActivatePurgesStaleGenerations: activating version B after version A
// removes all of A's entries and retains none of its keys; B's entries
// persist. Generation names are shared through the registry, as they
// would be through a durable one across restarts.
func TestActivatePurgesStaleGenerations(t *testing.T) {
	ctx := context.Background()
	shared := reg.NewLocal()
	mp := newMemProvider()

	v1 := newTestWorker(t, "v1", func(o *Options) {
		o.Provider = mp
		o.Registry = shared
	})
	mustInstallActivate(t, v1.w)
	if mp.countPrefix("entry:swkit:v1") != len(DefaultManifest) {
		t.Fatalf("v1 entries=%d want %d", mp.countPrefix("entry:swkit:v1"), len(DefaultManifest))
	}

	v2 := newTestWorker(t, "v2", func(o *Options) {
		o.Provider = mp
		o.Registry = shared
	})
	mustInstallActivate(t, v2.w)
	v1.w.Supersede()

	if n := mp.countPrefix("entry:swkit:v1"); n != 0 {
		t.Fatalf("v1 left %d stale entries after v2 activation", n)
	}
	if n := mp.countPrefix("entry:swkit:v2"); n != len(DefaultManifest) {
		t.Fatalf("v2 entries=%d want %d", n, len(DefaultManifest))
	}

	names, err := shared.Names(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "v2" {
		t.Fatalf("registry names=%v want [v2]", names)
	}

	// v2 serves the same path from its own generation.
	resp, err := v2.w.HandleFetch(ctx, Identity{Method: "GET", URL: "/offline.html"})
	if err != nil {
		t.Fatalf("HandleFetch: %v", err)
	}
	if resp.Status != 200 {
		t.Fatalf("status=%d", resp.Status)
	}
	if v2.fetcher.count("/offline.html") != 1 {
		t.Fatalf("offline.html should come from v2 cache, not the network")
	}
}

func TestCustomManifest(t *testing.T) {
	rig := newTestWorker(t, "v1", func(o *Options) {
		o.Manifest = []string{"/", "/app.css"}
	})
	if err := rig.w.HandleInstall(context.Background()); err != nil {
		t.Fatalf("HandleInstall: %v", err)
	}
	if rig.fetcher.total() != 2 {
		t.Fatalf("network calls=%d want 2", rig.fetcher.total())
	}
}
