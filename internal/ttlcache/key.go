package ttlcache

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

const keyPrefix = "cache_"

// Key builds the namespaced key for a resource. Non-empty params add a
// fingerprint so different pages of one resource do not collide.
func Key(kind, id string, params url.Values) string {
	var b strings.Builder
	b.WriteString(keyPrefix)
	b.WriteString(strings.TrimSpace(kind))
	b.WriteByte('_')
	b.WriteString(strings.TrimSpace(id))
	if len(params) > 0 {
		sum := sha256.Sum256([]byte(params.Encode()))
		b.WriteByte('_')
		b.WriteString(hex.EncodeToString(sum[:])[:16])
	}
	return b.String()
}
