// fs.go holds tiny helpers for walking a file system when template glob
// patterns such as “**/*.html” are not available in the Go standard
// library.  The key export is CollectHTML, which returns every .html file
// under the supplied fs.FS.
package theme

import (
	"io/fs"
	"sort"
	"strings"
)

// CollectHTML walks fsys recursively and returns a sorted list of *.html
// paths.  Paths are slash-separated fs.FS names, ready for
// template.ParseFS.
func CollectHTML(fsys fs.FS) ([]string, error) {
	var files []string

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil { // propagate filesystem errors immediately
			return err
		}
		if d.IsDir() {
			return nil
		}
		// We care only about *.html files.
		if strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
