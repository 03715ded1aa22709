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

// Package parallel provides a persistent, reusable worker pool for the
// data-parallel loops of the simulation: per-row field updates, per-ant moves
// and per-worker partial sums. A Pool is created once per colony and reused
// for every step, so no goroutines are spawned inside the hot loops.
//
// Usage:
//
//	pool := parallel.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.Rows(height, func(y0, y1 int) {
//	    for y := y0; y < y1; y++ {
//	        processRow(y)
//	    }
//	})
//
// Loops must not be nested: a worker that submits more work to its own pool
// can block forever. A nil or closed Pool runs every loop sequentially.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem represents a single chunk of a parallel operation.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a new worker pool with the specified number of workers.
// If numWorkers <= 0, WorkersFromEnv decides, falling back to GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = WorkersFromEnv()
	}
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool, 1 for a nil pool.
func (p *Pool) NumWorkers() int {
	if p == nil {
		return 1
	}
	return p.numWorkers
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

func (p *Pool) sequential() bool {
	return p == nil || p.closed.Load() || p.numWorkers == 1
}

// Rows executes fn over [0, n) split into one contiguous range per worker.
// It is meant for loops over field rows, where every index costs the same.
// Blocks until all work completes.
func (p *Pool) Rows(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if p.sequential() {
		fn(0, n)
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 {
		fn(0, n)
		return
	}
	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := range workers {
		start := i * chunkSize
		end := min(start+chunkSize, n)
		if start >= n {
			wg.Done()
			continue
		}
		p.workC <- workItem{
			fn:      func() { fn(start, end) },
			barrier: &wg,
		}
	}
	wg.Wait()
}

// Each executes fn for every index in [0, n) using atomic work stealing.
// Used for ants, whose cost per index varies with how long each one lives.
// Blocks until all work completes.
func (p *Pool) Each(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if p.sequential() {
		for i := range n {
			fn(i)
		}
		return
	}

	workers := min(p.numWorkers, n)
	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.workC <- workItem{
			fn: func() {
				for {
					i := int(next.Add(1)) - 1
					if i >= n {
						return
					}
					fn(i)
				}
			},
			barrier: &wg,
		}
	}
	wg.Wait()
}

// Sum splits [0, n) like Rows, lets every chunk return a partial sum and
// reduces the partials in chunk order, so the result does not depend on
// which worker finished first.
func (p *Pool) Sum(n int, fn func(start, end int) float64) float64 {
	if n <= 0 {
		return 0
	}
	if p.sequential() {
		return fn(0, n)
	}

	workers := min(p.numWorkers, n)
	chunkSize := (n + workers - 1) / workers
	partials := make([]float64, workers)
	p.Rows(workers, func(w0, w1 int) {
		for w := w0; w < w1; w++ {
			start := w * chunkSize
			end := min(start+chunkSize, n)
			if start < end {
				partials[w] = fn(start, end)
			}
		}
	})

	var total float64
	for _, s := range partials {
		total += s
	}
	return total
}
