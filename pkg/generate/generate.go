// Copyright 2025 KrakLabs
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
//
// SPDX-License-Identifier: Apache-2.0

package generate

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kraklabs/seqdiag/pkg/sequence"
	"github.com/kraklabs/seqdiag/pkg/sourcemodel"
)

// Options configures a Generator.
type Options struct {
	// Workers bounds the number of units traversed at once.
	// Defaults to GOMAXPROCS.
	Workers int

	// OnUnit is called after each unit is traversed. It is called from
	// worker goroutines and must be safe for concurrent use.
	OnUnit func(path string)
}

// Request describes one diagram to build.
type Request struct {
	Name   string
	Units  []string
	Filter sequence.Filter
}

// Result is a finalized diagram with run statistics.
type Result struct {
	Diagram  *sequence.Diagram
	Units    int
	Duration time.Duration
}

// Generator loads translation units through a provider and builds diagrams.
// A Generator may be reused, but not for concurrent Generate calls that
// share an OnUnit callback which is not concurrency-safe.
type Generator struct {
	provider sourcemodel.Provider
	opts     Options
	logger   *slog.Logger
}

// New creates a generator reading units from provider.
func New(provider sourcemodel.Provider, opts Options, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Generator{provider: provider, opts: opts, logger: logger}
}

// Generate builds and finalizes the requested diagram.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	fragments, err := g.traverse(ctx, req)
	if err != nil {
		return nil, err
	}

	d := sequence.NewDiagram(req.Name)
	for i, f := range fragments {
		if err := d.Merge(f); err != nil {
			return nil, fmt.Errorf("merge %s: %w", req.Units[i], err)
		}
	}
	d.Finalize()

	stats := d.Stats()
	res := &Result{Diagram: d, Units: len(req.Units), Duration: time.Since(start)}
	g.logger.Info("generate.diagram.done",
		"diagram", req.Name,
		"units", res.Units,
		"participants", stats.Participants,
		"events", stats.Events,
		"duration", res.Duration,
	)
	return res, nil
}

// traverse builds one fragment per unit. Fragment i belongs to req.Units[i].
func (g *Generator) traverse(ctx context.Context, req Request) ([]*sequence.Diagram, error) {
	fragments := make([]*sequence.Diagram, len(req.Units))
	if len(req.Units) == 0 {
		return fragments, nil
	}

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(min(g.opts.Workers, len(req.Units)))

	for i, path := range req.Units {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}

			tu, err := g.provider.Load(egctx, path)
			if err != nil {
				g.logger.Warn("generate.unit.load.error", "path", path, "err", err)
				return fmt.Errorf("load %s: %w", path, err)
			}

			b := sequence.NewBuilder(req.Name, req.Filter, g.logger)
			if err := b.Build(tu); err != nil {
				return fmt.Errorf("build %s: %w", path, err)
			}

			// Each goroutine owns slot i.
			fragments[i] = b.Fragment()

			g.logger.Debug("generate.unit.done", "diagram", req.Name, "path", path)
			if g.opts.OnUnit != nil {
				g.opts.OnUnit(path)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	// Cancellation that raced the last unit still abandons the run.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fragments, nil
}
