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

package main

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/imgaco/aco"
	"github.com/ajroetker/imgaco/imageio"
)

// writeSquare writes a w×w PNG with a bright square on a dark background.
func writeSquare(t *testing.T, dir string, w int) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, w))
	for y := w / 4; y < 3*w/4; y++ {
		for x := w / 4; x < 3*w/4; x++ {
			img.SetGray(x, y, color.Gray{Y: 220})
		}
	}
	path := filepath.Join(dir, "square.png")
	require.NoError(t, imageio.Save(path, img))
	return path
}

func execCmd(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(args)
	err = execute(root, &errOut)
	return out.String(), errOut.String(), err
}

func TestRun_Outputs(t *testing.T) {
	dir := t.TempDir()
	input := writeSquare(t, dir, 32)
	output := filepath.Join(dir, "edges.bmp")
	plot := filepath.Join(dir, "plot.png")
	hist := filepath.Join(dir, "hist.png")
	dists := filepath.Join(dir, "dists")
	frames := filepath.Join(dir, "frames")
	video := filepath.Join(dir, "walk.avi")

	stdout, stderr, err := execCmd(t, "run", input, "-o", output,
		"--ants", "16", "--steps", "3", "--step-length", "8", "--workers", "2",
		"--normalize",
		"--plot", plot, "--histogram", hist, "--distributions", dists,
		"--frames", frames, "--video", video, "--frame-every", "4",
		"--log-level", "debug", "--log-format", "json")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "3 steps of 16 ants over 32x32 pixels")
	assert.Contains(t, stderr, `"run_id"`)
	assert.Contains(t, stderr, "step complete")

	g, err := imageio.Load(output)
	require.NoError(t, err)
	assert.Equal(t, 32, g.Width())
	assert.Equal(t, 32, g.Height())

	for _, path := range []string{
		plot, hist, video,
		filepath.Join(dists, "gamma0.50.bmp"),
		filepath.Join(dists, "gamma1.50.bmp"),
		filepath.Join(dists, "gamma1.00.bmp"),
		filepath.Join(frames, "frame0000.bmp"),
	} {
		info, err := os.Stat(path)
		if assert.NoError(t, err, path) {
			assert.Positive(t, info.Size(), path)
		}
	}
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := writeSquare(t, dir, 16)
	cfgPath := filepath.Join(dir, "params.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("ants: 4\nsteps: 2\nseeding: uniform\n"), 0o644))

	stdout, stderr, err := execCmd(t, "run", input, "-o", filepath.Join(dir, "out.png"),
		"--config", cfgPath, "--steps", "1", "--log-level", "error")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "1 steps of 4 ants")
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	input := writeSquare(t, dir, 8)
	badCfg := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badCfg, []byte("antz: 4\n"), 0o644))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing output", []string{"run", input}, "output"},
		{"missing input", []string{"run", filepath.Join(dir, "nope.png"), "-o", filepath.Join(dir, "o.png")}, "nope.png"},
		{"bad extension", []string{"run", input, "-o", filepath.Join(dir, "o.gif")}, "unknown image format"},
		{"invalid config", []string{"run", input, "-o", filepath.Join(dir, "o.png"), "--rate", "2"}, "evaporation_rate"},
		{"unknown yaml key", []string{"run", input, "-o", filepath.Join(dir, "o.png"), "--config", badCfg}, "antz"},
		{"bad log level", []string{"run", input, "-o", filepath.Join(dir, "o.png"), "--log-level", "loud"}, "loud"},
		{"block seeding distributions", []string{"run", input, "-o", filepath.Join(dir, "o.png"),
			"--seeding", "block", "--block-size", "4", "--steps", "1", "--log-level", "error",
			"--distributions", filepath.Join(dir, "d")}, "gamma seeding"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := execCmd(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := execCmd(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "imgaco dev")
	assert.Contains(t, stdout, "cpu=")
}

func TestOverrideConfig(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var flags aco.Config
	configFlags(fs, &flags)
	require.NoError(t, fs.Parse([]string{"--beta", "3", "--edge", "mirror", "--seed-gammas", "1,2"}))

	cfg := aco.DefaultConfig()
	cfg.Ants = 7
	cfg.VisibilityWeight = 9
	overrideConfig(fs, &cfg, flags)

	assert.Equal(t, 7, cfg.Ants, "unset flags must keep file values")
	assert.Equal(t, 3.0, cfg.VisibilityWeight)
	assert.Equal(t, "mirror", cfg.Edge)
	assert.Equal(t, []float64{1, 2}, cfg.SeedGammas)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, aco.DefaultConfig(), cfg)

	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, aco.DefaultConfig(), cfg)

	require.NoError(t, os.WriteFile(path, []byte("evaporation_rate: 0.25\nseed_gammas: [2]\n"), 0o644))
	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.EvaporationRate)
	assert.Equal(t, []float64{2}, cfg.SeedGammas)
	assert.Equal(t, aco.DefaultConfig().Ants, cfg.Ants)
}
