// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

func openStream(t *testing.T, url string) (*http.Response, *multipart.Reader) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		t.Fatal(err)
	}
	if mediaType != "multipart/x-mixed-replace" {
		t.Fatalf("Content-Type is %q", mediaType)
	}
	if len(params["boundary"]) < 50 {
		t.Fatalf("insufficient boundary %q", params["boundary"])
	}
	return resp, multipart.NewReader(resp.Body, params["boundary"])
}

func nextImage(t *testing.T, mr *multipart.Reader, wantType string) image.Image {
	t.Helper()
	part, err := mr.NextPart()
	if err != nil {
		t.Fatal(err)
	}
	if ct := part.Header.Get("Content-Type"); ct != wantType {
		t.Fatalf("part Content-Type %q, want %q", ct, wantType)
	}
	content, err := io.ReadAll(part)
	if err != nil {
		t.Fatal(err)
	}
	if l, err := strconv.Atoi(part.Header.Get("Content-Length")); err != nil || l != len(content) {
		t.Fatalf("Content-Length %q, read %d bytes", part.Header.Get("Content-Length"), len(content))
	}
	var img image.Image
	if wantType == "image/png" {
		img, err = png.Decode(bytes.NewReader(content))
	} else {
		img, err = jpeg.Decode(bytes.NewReader(content))
	}
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func sameColor(a, b color.Color) bool {
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

func TestStreamPNG(t *testing.T) {
	s := NewStream(&StreamOpts{W: 8, H: 8, Scale: 2})
	if str := s.String(); str != "Stream{8x8}" {
		t.Fatal(str)
	}
	srv := httptest.NewServer(s)
	defer srv.Close()

	resp, mr := openStream(t, srv.URL)
	defer resp.Body.Close()

	img := nextImage(t, mr, "image/png")
	if got := img.Bounds().Size(); got != (image.Point{16, 16}) {
		t.Fatalf("size %v", got)
	}
	if !sameColor(img.At(0, 0), DefaultOff) {
		t.Fatalf("At(0, 0) = %v", img.At(0, 0))
	}

	// Column 0, pixel y=1.
	frame := make([]byte, 8)
	frame[0] = 0x02
	if n, err := s.Write(frame); n != 8 || err != nil {
		t.Fatal(n, err)
	}
	img = nextImage(t, mr, "image/png")
	for _, p := range []image.Point{{0, 2}, {1, 2}, {0, 3}, {1, 3}} {
		if !sameColor(img.At(p.X, p.Y), DefaultOn) {
			t.Errorf("At(%v) = %v", p, img.At(p.X, p.Y))
		}
	}
	if !sameColor(img.At(0, 0), DefaultOff) {
		t.Errorf("At(0, 0) = %v", img.At(0, 0))
	}

	if err := s.Halt(); err != nil {
		t.Fatal(err)
	}
}

func TestStreamJPEG(t *testing.T) {
	s := NewStream(nil)
	srv := httptest.NewServer(s)
	defer srv.Close()

	resp, mr := openStream(t, srv.URL+"/?format=jpeg")
	defer resp.Body.Close()
	img := nextImage(t, mr, "image/jpeg")
	if got := img.Bounds().Size(); got != (image.Point{512, 256}) {
		t.Fatalf("size %v", got)
	}
}

func TestStreamBadRequests(t *testing.T) {
	s := NewStream(nil)
	for _, tc := range []struct {
		method, target string
		want           int
	}{
		{http.MethodGet, "/?format=bmp", http.StatusBadRequest},
		{http.MethodPost, "/", http.StatusMethodNotAllowed},
	} {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, strings.NewReader("")))
		if rec.Code != tc.want {
			t.Errorf("%s %s: status %d, want %d", tc.method, tc.target, rec.Code, tc.want)
		}
	}
}

func TestStreamWriteLength(t *testing.T) {
	s := NewStream(nil)
	if _, err := s.Write(make([]byte, 3)); err == nil {
		t.Fatal("expected error")
	}
	if err := s.Draw(s.Bounds(), image.NewUniform(color.White), image.Point{}); err != nil {
		t.Fatal(err)
	}
	if !s.img.BitAt(5, 5) {
		t.Fatal("Draw did not set pixels")
	}
}

func TestParseFormat(t *testing.T) {
	for _, tc := range []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"png", PNG, false},
		{"PNG", PNG, false},
		{"jpg", JPEG, false},
		{"jpeg", JPEG, false},
		{"gif", "", true},
		{"", "", true},
	} {
		got, err := ParseFormat(tc.name)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseFormat(%q) error = %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestStreamDefaultFormat(t *testing.T) {
	if f := NewStream(&StreamOpts{Format: "image/gif"}).format; f != PNG {
		t.Errorf("unsupported format fell back to %q", f)
	}
	s := NewStream(&StreamOpts{W: 4, H: 8, Scale: 1, Format: JPEG})
	srv := httptest.NewServer(s)
	defer srv.Close()
	resp, mr := openStream(t, srv.URL)
	defer resp.Body.Close()
	if img := nextImage(t, mr, "image/jpeg"); img.Bounds().Size() != (image.Point{4, 8}) {
		t.Fatalf("size %v", img.Bounds().Size())
	}
}
