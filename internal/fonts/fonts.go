// Package fonts locates TTF/OTF files for the viewer's optional UI font.
package fonts

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Exts are the extensions considered font files.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns candidate font directories, relative to the process working directory,
// so fonts are found whether run from the repo root or from cmd/orbits.
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// ScanDir returns the paths of all font files under dir relative to dir, with forward
// slashes, sorted. A missing dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(out)
	return out, err
}

// Find resolves name to a font file. name may be a path to an existing file, or a
// family such as "Inter" or "Fira Mono" matched loosely (case, spaces, dashes and
// underscores ignored) against files under dirs. Among several matches a "Regular"
// face wins. Returns os.ErrNotExist when nothing matches.
func Find(name string, dirs ...string) (string, error) {
	if name == "" {
		return "", os.ErrNotExist
	}
	if isFont(name) {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	norm := normalize(strings.TrimSuffix(name, filepath.Ext(name)))
	var matches []string
	for _, dir := range dirs {
		list, err := ScanDir(dir)
		if err != nil {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalize(rel), norm) {
				matches = append(matches, filepath.Join(dir, filepath.FromSlash(rel)))
			}
		}
	}
	if len(matches) == 0 {
		return "", os.ErrNotExist
	}
	for _, m := range matches {
		if strings.Contains(strings.ToLower(filepath.Base(m)), "regular") {
			return m, nil
		}
	}
	return matches[0], nil
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalize lowercases and removes spaces, dashes, and underscores for loose matching.
func normalize(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}
