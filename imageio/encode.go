// Copyright 2025 imgaco Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/ajroetker/imgaco/grid"
)

// ErrUnknownFormat is returned when a file extension names no encoder.
var ErrUnknownFormat = errors.New("imageio: unknown image format")

// JPEGQuality is used for every JPEG written by this package.
const JPEGQuality = 90

// FieldToImage renders f as 8-bit grey. Values are clamped to [0, 1]; with
// normalize the field is first divided by its maximum.
func FieldToImage(f *grid.Field, normalize bool) *image.Gray {
	w, h := f.Width(), f.Height()
	scale := 1.0
	if normalize {
		if _, hi := f.MinMax(); hi > 0 {
			scale = 1 / hi
		}
	}
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := range h {
		dst := img.Pix[y*img.Stride : y*img.Stride+w]
		for x, v := range f.Row(y) {
			dst[x] = toByte(v * scale)
		}
	}
	return img
}

// RGBToImage renders a three-plane field as 8-bit RGB. Each channel is
// clamped to [0, 1]; with normalize all planes are divided by the largest
// value of any plane.
func RGBToImage(f3 *grid.Field3, normalize bool) *image.RGBA {
	w, h := f3.Width(), f3.Height()
	scale := 1.0
	if normalize {
		var hi float64
		for i := range 3 {
			_, phi := f3.Plane(i).MinMax()
			hi = max(hi, phi)
		}
		if hi > 0 {
			scale = 1 / hi
		}
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			r, g, b := f3.At(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: toByte(r * scale),
				G: toByte(g * scale),
				B: toByte(b * scale),
				A: 0xff,
			})
		}
	}
	return img
}

func toByte(v float64) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 1:
		return 0xff
	}
	return uint8(v*255 + 0.5)
}

// Format returns the encoder name for path's extension: "bmp", "png" or
// "jpeg".
func Format(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".bmp":
		return "bmp", nil
	case ".png":
		return "png", nil
	case ".jpg", ".jpeg":
		return "jpeg", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// Encode writes img to w in the named format.
func Encode(w io.Writer, format string, img image.Image) error {
	switch format {
	case "bmp":
		return bmp.Encode(w, img)
	case "png":
		return png.Encode(w, img)
	case "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Save writes img to path, choosing the encoder from the extension.
func Save(path string, img image.Image) (err error) {
	format, err := Format(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := Encode(f, format, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
