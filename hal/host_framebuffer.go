package hal

import (
	"image"
	"sync"

	"orbitlight/gfx"
)

type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }
func (f *hostFramebuffer) Present() error      { return nil }

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := gfx.RGB565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

func (f *hostFramebuffer) snapshotRGB565(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}

// Snapshot converts an RGB565 framebuffer into a new RGBA image.
func Snapshot(fb Framebuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width(), fb.Height()))
	if fb.Format() != PixelFormatRGB565 {
		return img
	}
	src := fb.Buffer()
	if hf, ok := fb.(*hostFramebuffer); ok {
		src = make([]byte, len(hf.buf))
		hf.snapshotRGB565(src)
	}
	rgb565ToRGBA(img.Pix, src, fb.Width(), fb.Height(), fb.StrideBytes())
	return img
}

func rgb565ToRGBA(dst, src []byte, w, h, stride int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*stride + x*2
			j := (y*w + x) * 4
			if i+1 >= len(src) || j+3 >= len(dst) {
				return
			}
			r, g, b := gfx.RGB888(uint16(src[i]) | uint16(src[i+1])<<8)
			dst[j+0] = r
			dst[j+1] = g
			dst[j+2] = b
			dst[j+3] = 0xFF
		}
	}
}
