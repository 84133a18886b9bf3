package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// ManifestSuffixes are the file name suffixes of import manifests
var ManifestSuffixes = []string{".imports.yaml", ".imports.yml"}

// IsManifestFile checks if a file is an import manifest
func IsManifestFile(filename string) bool {
	for _, suffix := range ManifestSuffixes {
		if strings.HasSuffix(filename, suffix) {
			return true
		}
	}
	return false
}

// FindManifests recursively finds all import manifests in a directory
func FindManifests(root string) ([]string, error) {
	var manifests []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip vendored, virtualenv and hidden directories (but not the root directory)
		if info.IsDir() && path != root {
			name := filepath.Base(path)
			if name == "vendor" || name == "node_modules" || name == "__pycache__" || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if IsManifestFile(filepath.Base(path)) {
			manifests = append(manifests, path)
		}

		return nil
	})

	return manifests, err
}

// IsDirectory checks if the given path is a directory
func IsDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// WriteFile writes content to path, creating parent directories as needed
func WriteFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}
