package imageenc

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
)

const (
	// MaxEdge caps the longest edge of the transported image.
	MaxEdge = 1024
	// JPEGQuality is the re-encode quality for inline transport.
	JPEGQuality = 80
)

// Encoded is a transport-safe representation of an uploaded image: re-encoded
// JPEG bytes bounded in size, plus the base64 form providers inline into
// request bodies.
type Encoded struct {
	Data      []byte
	Base64    string
	MediaType string
	Width     int
	Height    int
}

// EncodeFile reads and encodes the image at path.
func EncodeFile(path string) (Encoded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Encoded{}, fmt.Errorf("encode image: read %s: %w", path, err)
	}
	return Encode(data)
}

// Encode re-encodes raw image bytes (JPEG, PNG, or GIF) as a bounded JPEG.
// Images whose longest edge already fits within MaxEdge pass through unresized;
// nothing is ever upscaled. Corrupt input fails with a decode error.
func Encode(data []byte) (Encoded, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Encoded{}, fmt.Errorf("encode image: decode: %w", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return Encoded{}, fmt.Errorf("encode image: decode: empty bounds %dx%d", width, height)
	}

	targetW, targetH := fitWithin(width, height, MaxEdge)
	if targetW != width || targetH != height {
		scaled := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
		draw.BiLinear.Scale(scaled, scaled.Bounds(), src, bounds, draw.Over, nil)
		src = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return Encoded{}, fmt.Errorf("encode image: jpeg encode: %w", err)
	}

	encoded := buf.Bytes()
	return Encoded{
		Data:      encoded,
		Base64:    base64.StdEncoding.EncodeToString(encoded),
		MediaType: "image/jpeg",
		Width:     targetW,
		Height:    targetH,
	}, nil
}

func fitWithin(width, height, maxEdge int) (int, int) {
	longest := width
	if height > longest {
		longest = height
	}
	if longest <= maxEdge {
		return width, height
	}
	if width >= height {
		scaled := height * maxEdge / width
		if scaled < 1 {
			scaled = 1
		}
		return maxEdge, scaled
	}
	scaled := width * maxEdge / height
	if scaled < 1 {
		scaled = 1
	}
	return scaled, maxEdge
}
