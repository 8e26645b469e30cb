package adapter

import "strings"

// knownBinaryMediaTypes are always sent through the binary-safe path.
var knownBinaryMediaTypes = []string{
	"audio/3gpp",
	"audio/3gpp2",
	"audio/aac",
	"audio/midi",
	"audio/mpeg",
	"audio/ogg",
	"audio/opus",
	"audio/wav",
	"audio/webm",
	"audio/x-midi",
	"image/avif",
	"image/bmp",
	"image/gif",
	"image/vnd.microsoft.icon",
	"image/heif",
	"image/jpeg",
	"image/png",
	"image/svg+xml",
	"image/tiff",
	"image/webp",
	"video/3gpp",
	"video/3gpp2",
	"video/mp2t",
	"video/mp4",
	"video/mpeg",
	"video/ogg",
	"video/x-msvideo",
	"video/webm",
}

// MediaTypes is a set of bare media types ("image/png").
type MediaTypes map[string]struct{}

// BinaryMediaTypes returns the built-in allowlist plus extra.
func BinaryMediaTypes(extra ...string) MediaTypes {
	m := make(MediaTypes, len(knownBinaryMediaTypes)+len(extra))
	for _, t := range knownBinaryMediaTypes {
		m[t] = struct{}{}
	}
	for _, t := range extra {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			m[t] = struct{}{}
		}
	}
	return m
}

// Has reports whether mediaType (no parameters) is binary.
func (m MediaTypes) Has(mediaType string) bool {
	_, ok := m[mediaType]
	return ok
}
