// Package drive retrieves price tag images from a Google Drive folder.
package drive

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/semjacko/product-harvester/internal/platform/models"
	"github.com/semjacko/product-harvester/internal/source"
	drive "google.golang.org/api/drive/v3"
)

const pageSize = 8

// Source retrieves images from a Google Drive folder. Files are listed
// page by page and downloaded one by one, image data is a data URL with
// base64 encoded file content.
type Source struct {
	service  *drive.Service
	folderID string
}

// NewSource returns new Source reading images from Drive folder with folderID.
func NewSource(service *drive.Service, folderID string) *Source {
	return &Source{
		service:  service,
		folderID: folderID,
	}
}

// Images returns iterator over image files in the folder.
// The first page of the file listing is fetched eagerly, so a folder
// which can't be listed at all fails here instead of on first Next.
func (s *Source) Images(ctx context.Context) (source.Iterator, error) {
	it := &fileIterator{
		service: s.service,
		query:   fmt.Sprintf("'%s' in parents and mimeType contains 'image/'", s.folderID),
	}

	if err := it.fetchPage(ctx); err != nil {
		return nil, fmt.Errorf("can't list images in folder: %w", err)
	}

	return it, nil
}

type fileIterator struct {
	service *drive.Service
	query   string

	files     []*drive.File
	next      int
	pageToken string
	lastPage  bool
}

// Next downloads content of the next image file. A failed download
// concerns that single file only, iteration continues with the next one.
func (it *fileIterator) Next(ctx context.Context) (models.Image, error) {
	if it.next >= len(it.files) {
		if it.lastPage {
			return models.Image{}, source.ErrNoMoreImages
		}
		if err := it.fetchPage(ctx); err != nil {
			// a broken listing can't make progress anymore
			it.lastPage = true
			it.files = nil
			return models.Image{}, fmt.Errorf("can't list images in folder: %w", err)
		}
		return it.Next(ctx)
	}

	file := it.files[it.next]
	it.next++

	content, err := it.downloadFile(ctx, file)
	if err != nil {
		return models.Image{}, fmt.Errorf("can't download image %q: %w", file.Id, err)
	}

	return models.Image{
		ID:   file.Id,
		Data: fmt.Sprintf("data:%s;base64,%s", file.MimeType, content),
	}, nil
}

func (it *fileIterator) fetchPage(ctx context.Context) error {
	result, err := it.service.Files.List().
		Q(it.query).
		PageSize(pageSize).
		Fields("nextPageToken, files(id, mimeType)").
		PageToken(it.pageToken).
		Context(ctx).
		Do()
	if err != nil {
		return err
	}

	it.files = result.Files
	it.next = 0
	it.pageToken = result.NextPageToken
	it.lastPage = result.NextPageToken == ""

	return nil
}

func (it *fileIterator) downloadFile(ctx context.Context, file *drive.File) (string, error) {
	resp, err := it.service.Files.Get(file.Id).Context(ctx).Download()
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(content), nil
}
