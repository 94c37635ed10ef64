package api

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strconv"

	"github.com/brianhealey/assetd/internal/models"
	"github.com/patrickmn/go-cache"
	"golang.org/x/image/draw"
)

// maxPreviewWidth bounds the ?w= parameter of GET /api/images/{key}.
const maxPreviewWidth = 4096

func (h *Handlers) getImages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"images": h.assets.ImageInfos()})
}

// getImage renders the image as PNG, scaled to ?w= pixels wide if given.
// Encoded renderings are cached per key and width.
func (h *Handlers) getImage(w http.ResponseWriter, r *http.Request) {
	if !h.requireLoaded(w) {
		return
	}
	key := keyParam(r)

	width := 0
	if s := r.URL.Query().Get("w"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxPreviewWidth {
			writeError(w, models.ErrBadRequest(fmt.Sprintf("w must be an integer in [1, %d]", maxPreviewWidth)))
			return
		}
		width = n
	}

	img, ok := h.assets.Image(key)
	if !ok {
		writeError(w, models.ErrNotFound("image "+strconv.Quote(key)+" not found"))
		return
	}

	cacheKey := key + ":" + strconv.Itoa(width)
	if data, ok := h.previews.Get(cacheKey); ok {
		writePNG(w, data.([]byte))
		return
	}

	src := img.Data
	if width > 0 {
		src = scaleToWidth(src, width)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		writeError(w, models.ErrInternal("encode png: "+err.Error()))
		return
	}
	h.previews.Set(cacheKey, buf.Bytes(), cache.DefaultExpiration)
	writePNG(w, buf.Bytes())
}

// scaleToWidth resamples src to the given width, keeping the aspect ratio.
func scaleToWidth(src image.Image, width int) image.Image {
	b := src.Bounds()
	if b.Dx() == 0 {
		return src
	}
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func writePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
