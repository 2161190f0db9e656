// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"

	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Format is the MIME type of the images sent to Stream clients.
type Format string

// Supported formats. PNG keeps the pixels sharp and is the default.
const (
	PNG  Format = "image/png"
	JPEG Format = "image/jpeg"
)

// encoders maps each Format to its encoder. Two color frames compress very
// well so PNG uses the best compression.
var encoders = map[Format]func(io.Writer, image.Image) error{
	PNG: (&png.Encoder{CompressionLevel: png.BestCompression}).Encode,
	JPEG: func(w io.Writer, img image.Image) error {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	},
}

// ParseFormat returns the Format named by a "format" URL parameter: "png",
// "jpg" or "jpeg", in any case.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	}
	return "", fmt.Errorf("preview: unknown image format %q", name)
}

// StreamOpts represents the options available for a Stream.
type StreamOpts struct {
	// W and H are the frame size; zero means 128x64.
	W, H int
	// Scale enlarges every pixel to a Scale x Scale square; zero means 4.
	Scale int
	// On and Off are the pixel colors; nil means DefaultOn and DefaultOff.
	On, Off color.Color
	// Format is used when the client does not ask for one; empty means PNG.
	Format Format
}

// Stream is an http.Handler sending the frame to clients as a
// multipart/x-mixed-replace response, and a new image each time the frame
// changes.
type Stream struct {
	scale   int
	palette color.Palette
	format  Format

	mu      sync.Mutex
	img     *image1bit.VerticalLSB
	viewers map[*viewer]struct{}
	encoded map[Format][]byte
}

type viewer struct {
	refresh   chan struct{}
	terminate chan struct{}
}

// NewStream returns a Stream showing a blank frame.
func NewStream(opts *StreamOpts) *Stream {
	if opts == nil {
		opts = &StreamOpts{}
	}
	w, h := opts.W, opts.H
	if w == 0 || h == 0 {
		w, h = 128, 64
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 4
	}
	f := opts.Format
	if _, ok := encoders[f]; !ok {
		f = PNG
	}
	return &Stream{
		scale: scale,
		palette: color.Palette{
			toNRGBA(opts.Off, DefaultOff),
			toNRGBA(opts.On, DefaultOn),
		},
		format:  f,
		img:     image1bit.NewVerticalLSB(image.Rect(0, 0, w, h)),
		viewers: map[*viewer]struct{}{},
		encoded: map[Format][]byte{},
	}
}

func (s *Stream) String() string {
	return fmt.Sprintf("Stream{%dx%d}", s.img.Rect.Dx(), s.img.Rect.Dy())
}

// Halt implements conn.Resource and ends all running client requests.
func (s *Stream) Halt() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for v := range s.viewers {
		select {
		case v.terminate <- struct{}{}:
		default:
		}
	}
	return nil
}

// ColorModel implements display.Drawer.
func (s *Stream) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer.
func (s *Stream) Bounds() image.Rectangle {
	return s.img.Rect
}

// Draw implements display.Drawer.
func (s *Stream) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	draw.Src.Draw(s.img, r, src, sp)
	s.changedLocked()
	return nil
}

// Write accepts a frame in controller RAM order (image1bit.VerticalLSB.Pix).
func (s *Stream) Write(pixels []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(pixels) != len(s.img.Pix) {
		return 0, fmt.Errorf("preview: invalid frame length; expected %d bytes, got %d bytes", len(s.img.Pix), len(pixels))
	}
	copy(s.img.Pix, pixels)
	s.changedLocked()
	return len(pixels), nil
}

func (s *Stream) changedLocked() {
	for f := range s.encoded {
		delete(s.encoded, f)
	}
	for v := range s.viewers {
		select {
		case v.refresh <- struct{}{}:
		default:
		}
	}
}

// renderLocked returns the frame scaled up and colored.
func (s *Stream) renderLocked() *image.Paletted {
	b := s.img.Rect
	out := image.NewPaletted(image.Rect(0, 0, b.Dx()*s.scale, b.Dy()*s.scale), s.palette)
	for y := 0; y < out.Rect.Dy(); y++ {
		for x := 0; x < out.Rect.Dx(); x++ {
			if s.img.BitAt(b.Min.X+x/s.scale, b.Min.Y+y/s.scale) {
				out.SetColorIndex(x, y, 1)
			}
		}
	}
	return out
}

// snapshot returns the encoded frame, caching it until the next change.
func (s *Stream) snapshot(f Format) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.encoded[f]; ok {
		return b, nil
	}
	var buf bytes.Buffer
	if err := encoders[f](&buf, s.renderLocked()); err != nil {
		return nil, err
	}
	s.encoded[f] = buf.Bytes()
	return buf.Bytes(), nil
}

// ServeHTTP handles HTTP GET requests and sends a stream of images
// representing the frame. Clients can pick the format with the "format"
// parameter ("?format=png", "?format=jpeg").
func (s *Stream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.Body.Close(); err != nil {
		log.Printf("preview: closing request body failed: %v", err)
	}
	if r.Method != http.MethodGet {
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}

	f := s.format
	if name := r.URL.Query().Get("format"); name != "" {
		var err error
		if f, err = ParseFormat(name); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	v := &viewer{
		refresh:   make(chan struct{}, 1),
		terminate: make(chan struct{}, 1),
	}
	s.mu.Lock()
	s.viewers[v] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.viewers, v)
		s.mu.Unlock()
	}()

	// Random, as generated by mime/multipart.
	boundary := multipart.NewWriter(io.Discard).Boundary()
	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary="+boundary)
	flusher, _ := w.(http.Flusher)

	// Every part is followed by its closing delimiter so clients show it right
	// away instead of waiting for the next frame.
	if _, err := fmt.Fprintf(w, "--%s\r\n", boundary); err != nil {
		return
	}
	for {
		body, err := s.snapshot(f)
		if err != nil {
			log.Printf("preview: encoding %s failed: %v", f, err)
			return
		}
		if _, err := fmt.Fprintf(w, "Content-Type: %s\r\nContent-Length: %d\r\n\r\n%s\r\n--%s\r\n", f, len(body), body, boundary); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}

		select {
		case <-v.refresh:
		case <-v.terminate:
			return
		case <-r.Context().Done():
			return
		}
	}
}

var _ display.Drawer = &Stream{}
var _ http.Handler = &Stream{}
