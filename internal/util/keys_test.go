package util

import "testing"

func TestEntryKeyNoVary(t *testing.T) {
	k := EntryKey("entry:swkit:v1", "GET", "/offline.html", nil)
	if k != "entry:swkit:v1:GET:/offline.html" {
		t.Fatalf("key=%q", k)
	}
}

func TestEntryKeyVaryOrderInsensitive(t *testing.T) {
	a := EntryKey("p", "GET", "/x", map[string]string{"Accept": "text/html", "Accept-Language": "tr"})
	b := EntryKey("p", "GET", "/x", map[string]string{"Accept-Language": "tr", "Accept": "text/html"})
	if a != b {
		t.Fatalf("vary hash depends on map order: %q != %q", a, b)
	}

	c := EntryKey("p", "GET", "/x", map[string]string{"Accept": "application/json"})
	if a == c {
		t.Fatalf("different vary headers produced the same key %q", a)
	}
}
