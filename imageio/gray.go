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

// Package imageio converts between image files and the luminance and
// pheromone fields of the simulation.
//
// Decoding accepts BMP, PNG and JPEG. Luminance uses the Rec. 601 weights
// and lies in [0, 1].
package imageio

import (
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"os"

	_ "golang.org/x/image/bmp" // register decoder

	"github.com/ajroetker/imgaco/grid"
)

// Rec. 601 luma weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Gray is a luminance raster backed by a grid.Field.
type Gray struct {
	*grid.Field
}

// Luminance returns the luminance at (x, y).
func (g Gray) Luminance(x, y int) float64 {
	return g.At(x, y)
}

// Load reads and decodes the image file at path.
func Load(path string) (Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return Gray{}, err
	}
	defer f.Close()
	g, err := Decode(f)
	if err != nil {
		return Gray{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return g, nil
}

// Decode reads a BMP, PNG or JPEG image from r.
func Decode(r io.Reader) (Gray, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return Gray{}, err
	}
	return FromImage(img)
}

// FromImage converts img to luminance. An image without pixels returns an
// error wrapping grid.ErrEmptyField.
func FromImage(img image.Image) (Gray, error) {
	b := img.Bounds()
	f, err := grid.NewField(b.Dx(), b.Dy())
	if err != nil {
		return Gray{}, err
	}
	if g, ok := img.(*image.Gray); ok {
		for y := range b.Dy() {
			row := f.Row(y)
			off := g.PixOffset(b.Min.X, b.Min.Y+y)
			src := g.Pix[off : off+b.Dx()]
			for x, v := range src {
				row[x] = float64(v) / 255
			}
		}
		return Gray{f}, nil
	}
	for y := range b.Dy() {
		row := f.Row(y)
		for x := range row {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			row[x] = (lumaR*float64(r) + lumaG*float64(g) + lumaB*float64(bl)) / 0xffff
		}
	}
	return Gray{f}, nil
}
