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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ajroetker/imgaco/aco"
	"github.com/ajroetker/imgaco/imageio"
	"github.com/ajroetker/imgaco/internal/logging"
	"github.com/ajroetker/imgaco/internal/parallel"
	"github.com/ajroetker/imgaco/report"
	"github.com/ajroetker/imgaco/trace"
)

type runOptions struct {
	output     string
	configPath string
	flags      aco.Config
	normalize  bool

	framesDir  string
	videoPath  string
	videoScale int
	videoFPS   int
	frameEvery int

	plotPath      string
	histogramPath string
	histogramBins int
	distDir       string

	logLevel  string
	logFormat string
}

func newRunCmd(out, errOut io.Writer) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run INPUT -o OUTPUT",
		Short: "Run the colony over INPUT and write the pheromone field to OUTPUT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			overrideConfig(cmd.Flags(), &cfg, opts.flags)
			return runColony(cmd.Context(), args[0], cfg, opts, out, errOut)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&opts.output, "output", "o", "", "output image (.bmp, .png or .jpg)")
	fs.StringVar(&opts.configPath, "config", "", "YAML file of tunables; flags override it")
	configFlags(fs, &opts.flags)
	fs.BoolVar(&opts.normalize, "normalize", false, "scale the output so the strongest trail is white")
	fs.StringVar(&opts.framesDir, "frames", "", "directory for a BMP of every move round")
	fs.StringVar(&opts.videoPath, "video", "", "MJPEG AVI of the walk")
	fs.IntVar(&opts.videoScale, "video-scale", 2, "video pixel enlargement")
	fs.IntVar(&opts.videoFPS, "fps", 15, "video frame rate")
	fs.IntVar(&opts.frameEvery, "frame-every", 1, "keep every Nth move round in frames and video")
	fs.StringVar(&opts.plotPath, "plot", "", "PNG plot of pheromone statistics per step")
	fs.StringVar(&opts.histogramPath, "histogram", "", "PNG histogram of the final pheromone field")
	fs.IntVar(&opts.histogramBins, "bins", 20, "histogram bins")
	fs.StringVar(&opts.distDir, "distributions", "", "directory for the gamma seeding distributions")
	fs.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	fs.StringVar(&opts.logFormat, "log-format", "text", "text or json")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runColony(ctx context.Context, input string, cfg aco.Config, opts *runOptions, out, errOut io.Writer) (err error) {
	if _, err := imageio.Format(opts.output); err != nil {
		return err
	}
	level, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	log := logging.NewSlogLogger(logging.Config{Level: level, Format: opts.logFormat, Output: errOut}).
		With("run_id", uuid.NewString())

	img, err := imageio.Load(input)
	if err != nil {
		return err
	}
	log.Info("starting",
		"input", input,
		"width", img.Width(),
		"height", img.Height(),
		"cpu", parallel.Features())

	sink, closeSink, err := openSinks(opts, img.Width(), img.Height())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeSink(); err == nil {
			err = cerr
		}
	}()

	colonyOpts := []aco.Option{aco.WithLogger(log)}
	if sink != nil {
		colonyOpts = append(colonyOpts, aco.WithFrameSink(sink))
	}
	colony, err := aco.NewColony(img, cfg, colonyOpts...)
	if err != nil {
		return err
	}
	defer colony.Close()

	start := time.Now()
	if err := colony.Run(cfg.Steps); err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := writeOutputs(ctx, colony, opts); err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(out, "%d steps of %d ants over %dx%d pixels in %v, wrote %s\n",
		colony.StepsDone(), populationOf(colony), img.Width(), img.Height(),
		elapsed.Round(time.Millisecond), opts.output)
	return nil
}

func populationOf(c *aco.Colony) int {
	if stats := c.Stats(); len(stats) > 0 {
		return stats[0].Ants
	}
	return 0
}

// openSinks builds the frame sink requested by opts, or nil. The returned
// close function is always safe to call.
func openSinks(opts *runOptions, width, height int) (aco.FrameSink, func() error, error) {
	var sinks []aco.FrameSink
	closeFn := func() error { return nil }

	if opts.framesDir != "" {
		dir, err := trace.NewDir(opts.framesDir)
		if err != nil {
			return nil, closeFn, err
		}
		sinks = append(sinks, dir)
	}
	if opts.videoPath != "" {
		video, err := trace.NewVideo(opts.videoPath, width, height, opts.videoScale, opts.videoFPS)
		if err != nil {
			return nil, closeFn, err
		}
		sinks = append(sinks, video)
		closeFn = video.Close
	}

	switch len(sinks) {
	case 0:
		return nil, closeFn, nil
	case 1:
		return trace.Every(opts.frameEvery, sinks[0]), closeFn, nil
	}
	return trace.Every(opts.frameEvery, trace.Tee(sinks...)), closeFn, nil
}

// writeOutputs writes the result image and the optional reports
// concurrently.
func writeOutputs(ctx context.Context, colony *aco.Colony, opts *runOptions) error {
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		return imageio.Save(opts.output, imageio.RGBToImage(colony.PheromoneImage(), opts.normalize))
	})
	if opts.plotPath != "" {
		g.Go(func() error {
			return writeFile(opts.plotPath, func(w io.Writer) error {
				return report.Convergence(colony.Stats(), w)
			})
		})
	}
	if opts.histogramPath != "" {
		g.Go(func() error {
			return writeFile(opts.histogramPath, func(w io.Writer) error {
				return report.Histogram(colony.Environment().PheromoneField(), opts.histogramBins, w)
			})
		})
	}
	if opts.distDir != "" {
		g.Go(func() error {
			return writeDistributions(opts.distDir, colony.Distributions())
		})
	}
	return g.Wait()
}

// writeDistributions saves every seeding pmf as gamma<G>.bmp, scaled so
// its most likely cell is white.
func writeDistributions(dir string, dists []*aco.Distribution) error {
	if len(dists) == 0 {
		return errors.New("no seeding distributions: --distributions needs gamma seeding")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, d := range dists {
		name := filepath.Join(dir, fmt.Sprintf("gamma%.2f.bmp", d.Gamma()))
		if err := imageio.Save(name, imageio.FieldToImage(d.PMF(), true)); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
