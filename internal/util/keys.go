package util

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
)

// EntryKey builds the storage key for a request identity under prefix.
// Two identities with equal method, URL and vary headers map to the same
// key regardless of header map iteration order.
func EntryKey(prefix, method, url string, vary map[string]string) string {
	k := prefix + ":" + method + ":" + url
	if len(vary) == 0 {
		return k
	}
	return k + "#" + varyHash(vary)
}

// varyHash returns a short deterministic hash over sorted header pairs.
func varyHash(vary map[string]string) string {
	pairs := make([]string, 0, len(vary))
	for name, val := range vary {
		pairs = append(pairs, name+"="+val)
	}
	sort.Strings(pairs)
	sum := sha256.Sum256([]byte(strings.Join(pairs, "\n")))
	return fmt.Sprintf("%x", sum)[:16]
}
