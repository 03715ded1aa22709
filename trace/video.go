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

package trace

import (
	"bytes"
	"fmt"
	"image/color"
	"image/jpeg"

	"github.com/icza/mjpeg"

	"github.com/ajroetker/imgaco/aco"
)

// Video encodes frames into a Motion JPEG AVI file. Each frame carries a
// "step S / move M" caption.
type Video struct {
	aw    mjpeg.AviWriter
	scale int
	buf   bytes.Buffer
	n     int
}

var _ aco.FrameSink = (*Video)(nil)

// NewVideo creates path for a width×height grid. Every frame is enlarged
// by scale (at least 1) and played back at fps.
func NewVideo(path string, width, height, scale, fps int) (*Video, error) {
	scale = max(scale, 1)
	aw, err := mjpeg.New(path, int32(width*scale), int32(height*scale), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("creating video %s: %w", path, err)
	}
	return &Video{aw: aw, scale: scale}, nil
}

// WriteFrame renders, captions and appends f.
func (v *Video) WriteFrame(f aco.Frame) error {
	img := upscale(Render(f), v.scale)
	addLabel(img, 4, 13, fmt.Sprintf("step %d / move %d", f.Step, f.Move), color.White)

	v.buf.Reset()
	if err := jpeg.Encode(&v.buf, img, &jpeg.Options{Quality: 75}); err != nil {
		return err
	}
	if err := v.aw.AddFrame(v.buf.Bytes()); err != nil {
		return err
	}
	v.n++
	return nil
}

// Count returns the number of frames written.
func (v *Video) Count() int { return v.n }

// Close finalises the AVI index. The video is unreadable until it is called.
func (v *Video) Close() error {
	return v.aw.Close()
}
