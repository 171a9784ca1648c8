package services

import (
	"fmt"
	"net/http"
	"strings"

	"explorerhub/utils/errors"
)

const PlaceholderImage = "/placeholder.svg"

// Gallery is a carousel over a listing's images.
type Gallery struct {
	images []string
	index  int
}

func NewGallery(images []string) *Gallery {
	kept := make([]string, 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			kept = append(kept, img)
		}
	}
	return &Gallery{images: kept}
}

func (g *Gallery) Len() int    { return len(g.images) }
func (g *Gallery) Index() int  { return g.index }
func (g *Gallery) Empty() bool { return len(g.images) == 0 }

// Navigable reports whether previous/next controls make sense.
func (g *Gallery) Navigable() bool { return len(g.images) > 1 }

func (g *Gallery) Current() string {
	if g.Empty() {
		return PlaceholderImage
	}
	return g.images[g.index]
}

func (g *Gallery) Next() {
	if g.Empty() {
		return
	}
	g.index = g.nextIndex()
}

func (g *Gallery) Previous() {
	if g.Empty() {
		return
	}
	g.index = g.previousIndex()
}

func (g *Gallery) GoTo(i int) error {
	if i < 0 || i >= len(g.images) {
		if g.Empty() && i == 0 {
			return nil
		}
		return errors.NewAPIError("INVALID_IMAGE_INDEX", "Image index out of range", http.StatusBadRequest,
			fmt.Sprintf("index %d, gallery has %d images", i, len(g.images)))
	}
	g.index = i
	return nil
}

func (g *Gallery) nextIndex() int {
	if g.index == len(g.images)-1 {
		return 0
	}
	return g.index + 1
}

func (g *Gallery) previousIndex() int {
	if g.index == 0 {
		return len(g.images) - 1
	}
	return g.index - 1
}

type GalleryView struct {
	Images    []string `json:"images"`
	Index     int      `json:"index"`
	Current   string   `json:"current"`
	Previous  int      `json:"previous"`
	Next      int      `json:"next"`
	Total     int      `json:"total"`
	Navigable bool     `json:"navigable"`
}

func (g *Gallery) View() GalleryView {
	v := GalleryView{
		Images:    g.images,
		Index:     g.index,
		Current:   g.Current(),
		Total:     len(g.images),
		Navigable: g.Navigable(),
	}
	if !g.Empty() {
		v.Previous = g.previousIndex()
		v.Next = g.nextIndex()
	}
	return v
}
