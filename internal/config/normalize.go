package config

import (
	"log/slog"
	"strings"

	"github.com/brianhealey/assetd/internal/models"
)

// normalizeManifests trims keys and paths, strips leading "./" and "/" from
// paths (the resolver adds its own root) and drops entries left empty.
func normalizeManifests(m *models.Manifests) {
	m.Images = normalizeManifest(models.KindImage, m.Images)
	m.Sounds = normalizeManifest(models.KindSound, m.Sounds)
}

func normalizeManifest(kind models.AssetKind, in models.Manifest) models.Manifest {
	out := make(models.Manifest, len(in))
	for _, k := range in.Keys() {
		p := in[k]
		key := strings.TrimSpace(k)
		path := strings.TrimSpace(p)
		for strings.HasPrefix(path, "./") || strings.HasPrefix(path, "/") {
			path = strings.TrimPrefix(strings.TrimPrefix(path, "./"), "/")
		}
		if key == "" || path == "" {
			slog.Warn("config: dropping invalid manifest entry", "kind", kind, "key", k, "path", p)
			continue
		}
		if _, dup := out[key]; dup {
			slog.Warn("config: duplicate manifest key after trimming, keeping first", "kind", kind, "key", key)
			continue
		}
		out[key] = path
	}
	return out
}
