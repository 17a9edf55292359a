package corlena

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// ResampleMode selects the filter used by ResizeImage.
type ResampleMode uint32

const (
	ResampleNearest    ResampleMode = iota // integer nearest-neighbor
	ResampleBilinear                       // 4-tap bilinear with edge clamp
	ResampleCatmullRom                     // Catmull-Rom via x/image/draw
)

// storedImage is an owned RGBA buffer of exactly w*h*4 bytes. It is never
// mutated after it is stored.
type storedImage struct {
	w, h int
	data []byte
}

// StoreImage copies w*h*4 bytes of rgba under id, replacing any previous
// image with that id. Surplus bytes are ignored. It returns false for a zero
// dimension or a buffer shorter than w*h*4.
func (e *Engine) StoreImage(id int32, rgba []byte, w, h uint32) bool {
	if w == 0 || h == 0 {
		return false
	}
	need := uint64(w) * uint64(h) * 4
	if uint64(len(rgba)) < need {
		return false
	}
	data := make([]byte, need)
	copy(data, rgba)
	e.images[id] = &storedImage{w: int(w), h: int(h), data: data}
	return true
}

// RemoveImage deletes image id. It returns false if it did not exist.
func (e *Engine) RemoveImage(id int32) bool {
	if _, ok := e.images[id]; !ok {
		return false
	}
	delete(e.images, id)
	return true
}

// ImageSize returns the dimensions of image id.
func (e *Engine) ImageSize(id int32) (w, h int, ok bool) {
	img, ok := e.images[id]
	if !ok {
		return 0, 0, false
	}
	return img.w, img.h, true
}

// ImageNRGBA returns a copy of image id as straight-alpha NRGBA.
func (e *Engine) ImageNRGBA(id int32) (*image.NRGBA, bool) {
	img, ok := e.images[id]
	if !ok {
		return nil, false
	}
	out := image.NewNRGBA(image.Rect(0, 0, img.w, img.h))
	copy(out.Pix, img.data)
	return out, true
}

// ResizeImage returns a new outW*outH*4 byte buffer sampled from image id.
// An unknown id or a zero output dimension yields an empty buffer. Modes
// other than bilinear and Catmull-Rom fall back to nearest-neighbor.
func (e *Engine) ResizeImage(id int32, outW, outH uint32, mode ResampleMode) []byte {
	img, ok := e.images[id]
	if !ok || outW == 0 || outH == 0 {
		return []byte{}
	}
	ow, oh := int(outW), int(outH)
	switch mode {
	case ResampleBilinear:
		return resizeBilinear(img, ow, oh)
	case ResampleCatmullRom:
		return resizeCatmullRom(img, ow, oh)
	default:
		return resizeNearest(img, ow, oh)
	}
}

// resizeNearest samples source pixel (x*sw/ow, y*sh/oh) using 64-bit integer
// arithmetic so large dimensions cannot overflow.
func resizeNearest(img *storedImage, ow, oh int) []byte {
	sw, sh := uint64(img.w), uint64(img.h)
	dst := make([]byte, ow*oh*4)
	for y := 0; y < oh; y++ {
		sy := int(uint64(y) * sh / uint64(oh))
		row := sy * img.w
		for x := 0; x < ow; x++ {
			sx := int(uint64(x) * sw / uint64(ow))
			si := (row + sx) * 4
			di := (y*ow + x) * 4
			copy(dst[di:di+4], img.data[si:si+4])
		}
	}
	return dst
}

// resizeBilinear interpolates the four neighbors of (x*sw/ow, y*sh/oh) in x
// then y. The upper neighbor is clamped to the last row/column.
func resizeBilinear(img *storedImage, ow, oh int) []byte {
	sw, sh := img.w, img.h
	dst := make([]byte, ow*oh*4)
	for y := 0; y < oh; y++ {
		gy := float64(y) * float64(sh) / float64(oh)
		y0 := int(math.Floor(gy))
		y1 := min(y0+1, sh-1)
		wy := gy - float64(y0)
		for x := 0; x < ow; x++ {
			gx := float64(x) * float64(sw) / float64(ow)
			x0 := int(math.Floor(gx))
			x1 := min(x0+1, sw-1)
			wx := gx - float64(x0)

			i00 := (y0*sw + x0) * 4
			i10 := (y0*sw + x1) * 4
			i01 := (y1*sw + x0) * 4
			i11 := (y1*sw + x1) * 4
			di := (y*ow + x) * 4
			for ch := 0; ch < 4; ch++ {
				c00 := float64(img.data[i00+ch])
				c10 := float64(img.data[i10+ch])
				c01 := float64(img.data[i01+ch])
				c11 := float64(img.data[i11+ch])
				c0 := c00 + (c10-c00)*wx
				c1 := c01 + (c11-c01)*wx
				dst[di+ch] = toByte(c0 + (c1-c0)*wy)
			}
		}
	}
	return dst
}

// resizeCatmullRom scales with the Catmull-Rom kernel, treating the stored
// bytes as straight-alpha NRGBA.
func resizeCatmullRom(img *storedImage, ow, oh int) []byte {
	src := &image.NRGBA{Pix: img.data, Stride: img.w * 4, Rect: image.Rect(0, 0, img.w, img.h)}
	dst := image.NewNRGBA(image.Rect(0, 0, ow, oh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst.Pix
}

// toByte rounds v to the nearest integer and clamps it to [0, 255].
func toByte(v float64) byte {
	v = math.Round(v)
	if !(v > 0) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
