package imageenc

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestEncodeDownscalesLongEdge(t *testing.T) {
	encoded, err := Encode(testPNG(t, 2048, 512))
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if encoded.Width != MaxEdge {
		t.Fatalf("expected width %d, got %d", MaxEdge, encoded.Width)
	}
	if encoded.Height != 256 {
		t.Fatalf("expected aspect-preserving height 256, got %d", encoded.Height)
	}
	if encoded.MediaType != "image/jpeg" {
		t.Fatalf("unexpected media type %q", encoded.MediaType)
	}
	decoded, err := jpeg.Decode(bytes.NewReader(encoded.Data))
	if err != nil {
		t.Fatalf("re-decode output: %v", err)
	}
	if decoded.Bounds().Dx() != MaxEdge {
		t.Fatalf("output bytes do not match reported width")
	}
}

func TestEncodeSmallImagePassesThrough(t *testing.T) {
	encoded, err := Encode(testPNG(t, 320, 200))
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if encoded.Width != 320 || encoded.Height != 200 {
		t.Fatalf("small image must not be resized, got %dx%d", encoded.Width, encoded.Height)
	}
}

func TestEncodeBase64RoundTrip(t *testing.T) {
	encoded, err := Encode(testPNG(t, 64, 64))
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	raw, err := base64.StdEncoding.DecodeString(encoded.Base64)
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	if !bytes.Equal(raw, encoded.Data) {
		t.Fatal("base64 form does not match raw bytes")
	}
}

func TestEncodeCorruptInput(t *testing.T) {
	if _, err := Encode([]byte("not an image")); err == nil {
		t.Fatal("expected decode error for corrupt input")
	}
}

func TestFitWithin(t *testing.T) {
	cases := []struct {
		w, h, max, wantW, wantH int
	}{
		{1024, 1024, 1024, 1024, 1024},
		{4096, 1024, 1024, 1024, 256},
		{500, 2000, 1024, 256, 1024},
		{100, 100, 1024, 100, 100},
	}
	for _, tc := range cases {
		gotW, gotH := fitWithin(tc.w, tc.h, tc.max)
		if gotW != tc.wantW || gotH != tc.wantH {
			t.Fatalf("fitWithin(%d,%d,%d) = %dx%d, want %dx%d", tc.w, tc.h, tc.max, gotW, gotH, tc.wantW, tc.wantH)
		}
	}
}
