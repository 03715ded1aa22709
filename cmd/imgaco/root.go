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
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ajroetker/imgaco/internal/parallel"
)

// version is set at link time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "imgaco",
		Short:         "Ant colony edge extraction for images",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.AddCommand(newRunCmd(out, errOut), newVersionCmd(out))

	// SilenceUsage hides usage for run failures; flag errors still get it.
	root.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w\n\n%s", err, c.UsageString())
	})
	return root
}

// execute runs root and prints any error to errOut.
func execute(root *cobra.Command, errOut io.Writer) error {
	err := root.Execute()
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
	}
	return err
}

func newVersionCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version and detected CPU features",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			pool := parallel.New(0)
			defer pool.Close()
			_, err := fmt.Fprintf(out, "imgaco %s %s/%s workers=%d cpu=%s\n",
				version, runtime.GOOS, runtime.GOARCH, pool.NumWorkers(), parallel.Features())
			return err
		},
	}
}
