// Copyright Immersive Collective, 2026. All rights reserved.

// Package scan discovers input images for a batch run.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// supportedExts is the extension allow-list, matched case-insensitively.
// Anything else is silently skipped and never counted.
var supportedExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
	".gif":  true,
	".heic": true,
}

// Supported reports whether the file name carries an allow-listed
// extension.
func Supported(name string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(name))]
}

// ListImages returns the full paths of recognized images directly inside
// dir, sorted byte-wise ascending by file name. Dotfiles and
// subdirectories are skipped. A missing or unreadable directory is an
// error; the caller treats it as fatal.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !Supported(name) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}

	sort.Slice(paths, func(i, j int) bool {
		return filepath.Base(paths[i]) < filepath.Base(paths[j])
	})
	return paths, nil
}
