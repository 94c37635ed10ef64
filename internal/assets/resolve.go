package assets

import (
	"strconv"
	"strings"
	"time"
)

// BasePath is the document-relative root every manifest path is resolved
// against. It is the same for every deployment.
const BasePath = "./"

// Resolve prefixes a manifest path with BasePath.
func Resolve(rel string) string {
	return BasePath + rel
}

// cacheToken returns the cache-defeating query for t.
func cacheToken(t time.Time) string {
	return "?v=" + strconv.FormatInt(t.UnixMilli(), 10)
}

// stripToken removes any query string from location.
func stripToken(location string) string {
	base, _, _ := strings.Cut(location, "?")
	return base
}

// withToken replaces any query string on location with a fresh token.
func withToken(location string, t time.Time) string {
	return stripToken(location) + cacheToken(t)
}
