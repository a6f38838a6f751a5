// Package source defines the image iteration contract shared by all
// image sources and provides a static in-memory source.
package source

import (
	"context"
	"errors"

	"github.com/semjacko/product-harvester/internal/platform/models"
)

// ErrNoMoreImages is returned by iterators when the sequence is exhausted.
var ErrNoMoreImages = errors.New("no more images")

//go:generate mockery --name Iterator --filename iterator.go

// Iterator is lazy, finite, non-restartable sequence of images.
// Next returns ErrNoMoreImages after the last image. Any other error
// concerns a single advance only, the iterator stays usable.
type Iterator interface {
	Next(ctx context.Context) (models.Image, error)
}

// StaticSource serves a fixed, in-memory list of images.
// It is used by the HTTP processing API and in tests.
type StaticSource struct {
	images []models.Image
}

// NewStaticSource returns new StaticSource serving provided images.
func NewStaticSource(images ...models.Image) *StaticSource {
	return &StaticSource{images: images}
}

// Images returns iterator over the source's images.
func (s *StaticSource) Images(_ context.Context) (Iterator, error) {
	return &sliceIterator{images: s.images}, nil
}

type sliceIterator struct {
	images []models.Image
	next   int
}

func (it *sliceIterator) Next(_ context.Context) (models.Image, error) {
	if it.next >= len(it.images) {
		return models.Image{}, ErrNoMoreImages
	}
	image := it.images[it.next]
	it.next++
	return image, nil
}
