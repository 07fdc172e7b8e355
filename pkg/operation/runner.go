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

// 🏃 Runner executes a fix operation, optionally under a cancellable
// group. Files are always processed sequentially inside the operation;
// async only detaches the operation itself so context cancellation is
// honored.
type Runner struct {
	logger *zerolog.Logger
	async  bool
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger, async bool) *Runner {
	return &Runner{
		logger: logger,
		async:  async,
	}
}

// 🏃 Run executes the operation
func (r *Runner) Run(ctx context.Context, op *FixOperation) (*Report, error) {
	if r.async {
		return r.runAsync(ctx, op)
	}
	return op.Execute(ctx)
}

// ⚡ runAsync runs the operation in an errgroup with context cancellation
func (r *Runner) runAsync(ctx context.Context, op *FixOperation) (*Report, error) {
	g, ctx := errgroup.WithContext(ctx)

	var report *Report
	g.Go(func() error {
		var err error
		report, err = op.Execute(ctx)
		if err != nil {
			return errors.Errorf("executing operation: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("operation cancelled: %w", err)
	}
	return report, nil
}
