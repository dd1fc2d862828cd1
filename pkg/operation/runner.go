// Copyright 2025 walteh LLC
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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 OperationRunner executes operations
type OperationRunner struct {
	logger  *zerolog.Logger
	async   bool
	workers int
}

// 🏗️ NewRunner creates a new runner. In async mode at most workers operations run at once.
func NewRunner(logger *zerolog.Logger, async bool, workers int) *OperationRunner {
	if workers < 1 {
		workers = 1
	}
	return &OperationRunner{
		logger:  logger,
		async:   async,
		workers: workers,
	}
}

// 🏃 Run executes all operations and returns the first error.
// After a failure no further operation is started.
func (r *OperationRunner) Run(ctx context.Context, ops ...Operation) error {
	r.logger.Debug().Int("operations", len(ops)).Bool("async", r.async).Int("workers", r.workers).Msg("running operations")
	if r.async {
		return r.runAsync(ctx, ops)
	}
	return r.runSync(ctx, ops)
}

// 🔄 runSync runs operations one after another
func (r *OperationRunner) runSync(ctx context.Context, ops []Operation) error {
	for _, op := range ops {
		op := op
		if err := ctx.Err(); err != nil {
			return errors.Errorf("operation cancelled: %w", err)
		}
		if err := op.Execute(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ⚡ runAsync runs operations on a bounded errgroup; the first failure cancels the rest
func (r *OperationRunner) runAsync(ctx context.Context, ops []Operation) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for _, op := range ops {
		op := op
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Errorf("operation cancelled: %w", err)
			}
			return op.Execute(gctx)
		})
	}

	return g.Wait()
}
