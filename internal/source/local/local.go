// Package local retrieves price tag images from a local folder.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/semjacko/product-harvester/internal/platform/models"
	"github.com/semjacko/product-harvester/internal/source"
)

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// Source retrieves images from a folder on local disk.
// Image ID is the file path, image data as well; files are read lazily
// by the processing stage, not here.
type Source struct {
	folderPath string
}

// NewSource returns new Source reading images from folderPath.
func NewSource(folderPath string) *Source {
	return &Source{folderPath: filepath.Clean(folderPath)}
}

// Images lists image files in the folder and returns iterator over them.
// Returns error when the folder itself can't be listed.
func (s *Source) Images(_ context.Context) (source.Iterator, error) {
	entries, err := os.ReadDir(s.folderPath)
	if err != nil {
		return nil, fmt.Errorf("can't list images folder: %w", err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := imageExtensions[ext]; !ok {
			continue
		}
		paths = append(paths, filepath.Join(s.folderPath, entry.Name()))
	}

	return &pathIterator{paths: paths}, nil
}

type pathIterator struct {
	paths []string
	next  int
}

func (it *pathIterator) Next(_ context.Context) (models.Image, error) {
	if it.next >= len(it.paths) {
		return models.Image{}, source.ErrNoMoreImages
	}
	path := it.paths[it.next]
	it.next++

	return models.Image{
		ID:   path,
		Data: path,
		Meta: metaFromFilename(path),
	}, nil
}

// metaFromFilename parses metadata encoded in the file name.
// A leading all-digit token before '_' is the expected barcode,
// e.g. "8586013438303_milk.jpg".
func metaFromFilename(path string) map[string]string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	token, _, found := strings.Cut(stem, "_")
	if !found || token == "" {
		return nil
	}
	for _, r := range token {
		if !unicode.IsDigit(r) {
			return nil
		}
	}
	return map[string]string{"barcode": token}
}
