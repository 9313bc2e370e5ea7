package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// AssetsDir is an extra directory searched after ./assets.
var AssetsDir string

var imageExtensions = []string{".tex", ".png", ".jpg", ".jpeg"}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ResolveAssetPath returns relPath itself when it exists, otherwise the
// first match under ./assets or AssetsDir. The ./assets candidate is
// returned when nothing matches.
func ResolveAssetPath(relPath string) string {
	if exists(relPath) {
		return relPath
	}

	localPath := filepath.Join("assets", relPath)
	if exists(localPath) {
		return localPath
	}

	if AssetsDir != "" {
		p := filepath.Join(AssetsDir, relPath)
		if exists(p) {
			return p
		}
	}

	return localPath
}

// FindImageFile resolves name to an image file, trying each supported
// extension when name has none. It returns "" when nothing is found.
func FindImageFile(name string) string {
	if name == "" {
		return ""
	}

	if p := ResolveAssetPath(name); exists(p) {
		return p
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	for _, ext := range imageExtensions {
		if p := ResolveAssetPath(base + ext); exists(p) {
			return p
		}
	}

	return ""
}
