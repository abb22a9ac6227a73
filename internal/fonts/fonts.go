package fonts

import (
	"os"
	"path/filepath"
	"strings"
)

// Exts lists the extensions we consider as font files.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns candidate font directories: dir itself, then dir as seen from cmd/globe.
func BaseDirs(dir string) []string {
	if dir == "" {
		dir = "assets/fonts"
	}
	if filepath.IsAbs(dir) {
		return []string{dir}
	}
	return []string{dir, filepath.Join("..", "..", dir)}
}

// ScanDir returns relative paths of all font files under dir (e.g. "Cinzel/Cinzel-Regular.ttf").
// Paths use forward slashes. A missing dir yields no fonts and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, e := range Exts {
			if ext == e {
				rel, err := filepath.Rel(dir, path)
				if err != nil {
					return err
				}
				out = append(out, filepath.ToSlash(rel))
				return nil
			}
		}
		return nil
	})
	return out, err
}

// normalizeForMatch lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// FindFont searches dirs for a font file whose path matches family (e.g. "Cinzel", "Cinzel Bold").
// When several files match, one whose path contains "Regular" wins. Returns os.ErrNotExist when
// nothing matches.
func FindFont(dirs []string, family string) (fullPath string, err error) {
	norm := normalizeForMatch(family)
	if norm == "" {
		return "", os.ErrNotExist
	}
	var candidates []string
	for _, base := range dirs {
		list, walkErr := ScanDir(base)
		if walkErr != nil || len(list) == 0 {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalizeForMatch(rel), norm) {
				candidates = append(candidates, filepath.Join(base, filepath.FromSlash(rel)))
			}
		}
	}
	if len(candidates) == 0 {
		return "", os.ErrNotExist
	}
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(filepath.Base(c)), "regular") {
			return c, nil
		}
	}
	return candidates[0], nil
}

// FindFirst returns the first family in preference order that FindFont resolves, with the family name.
func FindFirst(dirs []string, families ...string) (family, fullPath string, err error) {
	for _, f := range families {
		if p, err := FindFont(dirs, f); err == nil {
			return f, p, nil
		}
	}
	return "", "", os.ErrNotExist
}
