package assets

import (
	"strings"

	"github.com/rmorales-dev/tienda-sync/pkg/logger"
)

// PlaceholderKey is served when an image key cannot be resolved.
const PlaceholderKey = "images/placeholder.png"

// bundled is the compile-time table of image keys shipped with the demo
// catalog. Keys outside this table resolve through the base URL or fall
// back to the placeholder; there is no runtime reflection involved.
var bundled = map[string]string{
	"g502":       "images/g502.png",
	"g502x":      "images/g502x.png",
	"audi1":      "images/audi1.png",
	"pc":         "images/pc.png",
	"ps5":        "images/ps5.png",
	"sillagamer": "images/sillagamer.png",
}

// Resolver maps stored image keys to servable URLs.
type Resolver struct {
	baseURL string
}

// NewResolver creates a resolver rooted at the given asset base URL
// (CloudFront, S3, or a local static mount).
func NewResolver(baseURL string) *Resolver {
	return &Resolver{baseURL: strings.TrimRight(baseURL, "/")}
}

// Resolve returns the URL for an image key. Keys that are already URLs
// pass through untouched; unknown keys get the placeholder.
func (r *Resolver) Resolve(key string) string {
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key
	}

	if key == "" {
		return r.join(PlaceholderKey)
	}

	if path, ok := bundled[key]; ok {
		return r.join(path)
	}

	logger.Debug("Unknown image key, serving placeholder", map[string]interface{}{
		"key": key,
	})
	return r.join(PlaceholderKey)
}

func (r *Resolver) join(path string) string {
	if r.baseURL == "" {
		return "/" + path
	}
	return r.baseURL + "/" + path
}
