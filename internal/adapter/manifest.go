package adapter

import (
	"io/fs"
	"path"
	"strings"
)

// Manifest lists the static asset paths the build produced.  Requests for
// these paths bypass the router.
type Manifest struct {
	assets map[string]struct{}
}

// NewManifest builds a manifest from URL paths ("/favicon.ico").
func NewManifest(paths ...string) *Manifest {
	m := &Manifest{assets: make(map[string]struct{}, len(paths))}
	m.Add(paths...)
	return m
}

// ManifestFromFS walks fsys and registers every regular file.
func ManifestFromFS(fsys fs.FS) (*Manifest, error) {
	m := NewManifest()
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			m.assets[path.Join("/", p)] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Add registers more URL paths.
func (m *Manifest) Add(paths ...string) {
	for _, p := range paths {
		m.assets["/"+strings.TrimPrefix(p, "/")] = struct{}{}
	}
}

// Has reports whether urlPath is a known asset.  A nil Manifest has none.
func (m *Manifest) Has(urlPath string) bool {
	if m == nil {
		return false
	}
	_, ok := m.assets[urlPath]
	return ok
}

// Len reports the number of assets.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.assets)
}
