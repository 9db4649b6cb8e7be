// Package asset stores images that cameras can render into.
package asset

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/kamstrup/intmap"
)

// Handle refers to an image in an Images store. The zero Handle is invalid.
type Handle uint64

// Valid reports whether h can refer to an image.
func (h Handle) Valid() bool {
	return h != 0
}

func (h Handle) String() string {
	return fmt.Sprintf("image#%d", uint64(h))
}

// Image describes an off-screen render target.
type Image struct {
	Label  string
	Size   gputypes.Extent3D
	Format gputypes.TextureFormat
}

// NewRenderImage describes a 2D color image of the given size.
func NewRenderImage(label string, width, height uint32) Image {
	return Image{
		Label: label,
		Size: gputypes.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		Format: gputypes.TextureFormatRGBA8Unorm,
	}
}

// Images is a handle-indexed image store, kept as a singleton.
type Images struct {
	images *intmap.Map[Handle, *Image]
	next   Handle
}

// NewImages creates an empty store.
func NewImages() *Images {
	return &Images{images: intmap.New[Handle, *Image](8)}
}

// Add stores img and returns its new handle.
func (s *Images) Add(img Image) Handle {
	s.next++
	s.images.Put(s.next, &img)
	return s.next
}

// Set stores img under an existing or caller-chosen handle.
func (s *Images) Set(h Handle, img Image) {
	if !h.Valid() {
		panic("asset: cannot store an image under the zero handle")
	}
	s.images.Put(h, &img)
	s.next = max(s.next, h)
}

// Get looks up an image.
func (s *Images) Get(h Handle) (*Image, bool) {
	if !h.Valid() {
		return nil, false
	}
	return s.images.Get(h)
}

// Remove drops an image. Returns false if the handle was unknown.
func (s *Images) Remove(h Handle) bool {
	return s.images.Del(h)
}

// Len returns the number of stored images.
func (s *Images) Len() int {
	return s.images.Len()
}
