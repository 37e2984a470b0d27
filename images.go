package folio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"net/http"
	"path"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	maxSourceSize = 10 << 20 // 10MB
)

// ErrImageNotFound is returned for names with no readable source image.
var ErrImageNotFound = errors.New("image not found")

// ProcessedImage is a project image resized for the web and encoded as JPEG.
type ProcessedImage struct {
	Data   []byte
	Width  int
	Height int
}

// processImage decodes an image from src, resizes it down to maxImageWidth
// when wider, and encodes it as JPEG.
func processImage(src io.Reader) (ProcessedImage, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return ProcessedImage{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxImageWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return ProcessedImage{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return ProcessedImage{Data: buf.Bytes(), Width: w, Height: h}, nil
}

type cachedImage struct {
	img     ProcessedImage
	fetched time.Time
}

// ImageCache resizes project images on first request and keeps the result
// in memory for ttl.
type ImageCache struct {
	mu      sync.RWMutex
	src     fs.FS
	ttl     time.Duration
	entries map[string]cachedImage
}

// NewImageCache creates a cache reading sources from src. A nil src serves
// nothing.
func NewImageCache(src fs.FS, ttl time.Duration) *ImageCache {
	return &ImageCache{src: src, ttl: ttl, entries: make(map[string]cachedImage)}
}

// Invalidate drops every cached image.
func (c *ImageCache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]cachedImage)
	c.mu.Unlock()
}

// Get returns the processed image for a bare file name.
func (c *ImageCache) Get(name string) (ProcessedImage, error) {
	if c.src == nil || name == "" || path.Base(name) != name || !fs.ValidPath(name) {
		return ProcessedImage{}, ErrImageNotFound
	}

	c.mu.RLock()
	e, ok := c.entries[name]
	c.mu.RUnlock()
	if ok && time.Since(e.fetched) < c.ttl {
		return e.img, nil
	}

	f, err := c.src.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ProcessedImage{}, ErrImageNotFound
		}
		return ProcessedImage{}, err
	}
	defer f.Close()

	img, err := processImage(io.LimitReader(f, maxSourceSize))
	if err != nil {
		return ProcessedImage{}, fmt.Errorf("%s: %w", name, err)
	}

	c.mu.Lock()
	c.entries[name] = cachedImage{img: img, fetched: time.Now()}
	c.mu.Unlock()
	return img, nil
}

// handleProjectImage serves images referenced by a project card. Names no
// project uses are not found.
func (a *App) handleProjectImage(c echo.Context) error {
	name := c.Param("name")
	referenced := false
	for _, p := range a.Library.Catalog().Projects {
		if p.Image == name {
			referenced = true
			break
		}
	}
	if !referenced {
		return echo.ErrNotFound
	}
	img, err := a.Images.Get(name)
	if err != nil {
		if errors.Is(err, ErrImageNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	return c.Blob(http.StatusOK, "image/jpeg", img.Data)
}
