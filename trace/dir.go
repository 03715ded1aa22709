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
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ajroetker/imgaco/aco"
	"github.com/ajroetker/imgaco/imageio"
)

// Dir writes every frame as frameNNNN.bmp into a directory. The counter
// belongs to the sink, so frames from consecutive steps never collide.
type Dir struct {
	path string
	n    int
}

var _ aco.FrameSink = (*Dir)(nil)

// NewDir creates path if needed and returns a sink writing into it.
func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, err
	}
	return &Dir{path: path}, nil
}

// WriteFrame renders f and writes the next numbered file.
func (d *Dir) WriteFrame(f aco.Frame) error {
	name := filepath.Join(d.path, fmt.Sprintf("frame%04d.bmp", d.n))
	d.n++
	return imageio.Save(name, Render(f))
}

// Count returns the number of frames written.
func (d *Dir) Count() int { return d.n }

// Every forwards only the frames whose move round is a multiple of n.
func Every(n int, sink aco.FrameSink) aco.FrameSink {
	if n <= 1 {
		return sink
	}
	return every{n: n, sink: sink}
}

type every struct {
	n    int
	sink aco.FrameSink
}

func (e every) WriteFrame(f aco.Frame) error {
	if f.Move%e.n != 0 {
		return nil
	}
	return e.sink.WriteFrame(f)
}

// Tee forwards every frame to all sinks and joins their errors.
func Tee(sinks ...aco.FrameSink) aco.FrameSink {
	return tee(sinks)
}

type tee []aco.FrameSink

func (t tee) WriteFrame(f aco.Frame) error {
	var errs []error
	for _, s := range t {
		if err := s.WriteFrame(f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
