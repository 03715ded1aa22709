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

// Package trace turns colony walks into debug output: numbered image dumps
// of every move round, or a single MJPEG video.
package trace

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ajroetker/imgaco/aco"
	"github.com/ajroetker/imgaco/imageio"
)

// Ant markers.
var (
	LiveColor = color.RGBA{R: 0xff, A: 0xff}
	DeadColor = color.RGBA{B: 0xff, A: 0xff}
)

// Render draws the frame's pheromone field in grey, scaled so the strongest
// trail is white, and marks live ants red and dead ants blue.
func Render(f aco.Frame) *image.RGBA {
	grey := imageio.FieldToImage(f.Env.NormalizedPheromone(), false)
	img := image.NewRGBA(grey.Bounds())
	draw.Draw(img, img.Bounds(), grey, image.Point{}, draw.Src)
	for _, a := range f.Agents {
		p := a.Position()
		c := DeadColor
		if a.Alive() {
			c = LiveColor
		}
		img.SetRGBA(p.X, p.Y, c)
	}
	return img
}

// upscale enlarges img by an integer factor without smoothing, so single
// ant pixels stay sharp.
func upscale(img *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(out, out.Bounds(), img, b, draw.Src, nil)
	return out
}

// addLabel draws text with its baseline at (x, y).
func addLabel(img *image.RGBA, x, y int, label string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(label)
}
