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
	"io"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/whamdup/pkg/blueprint"
	"github.com/walteh/whamdup/pkg/library"
	"github.com/walteh/whamdup/pkg/log"
	"github.com/walteh/whamdup/pkg/prompt"
)

// ErrDeclined is returned when the user refuses to replace an existing copy.
var ErrDeclined = errors.Base("replacing an existing blueprint was declined")

// 🔧 Options tune how a Plan is carried out
type Options struct {
	Prompter prompt.Prompter // asked before replacing existing copies
	Logger   *log.Logger     // console output, discarded when nil
	Async    bool
	Workers  int
}

// 📦 Result describes a finished duplication
type Result struct {
	Identity *blueprint.IdentityRecord
	Summary  log.Summary
}

// 🪄 Duplicate writes plan.NumCopies renumbered copies of plan.Blueprint.
//
// Every overwrite question is asked before the first copy is written, so declining
// one leaves the library untouched.
func Duplicate(ctx context.Context, plan Plan, opts Options) (*Result, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	console := opts.Logger
	if console == nil {
		console = log.New(io.Discard, zerolog.Disabled)
	}
	prompter := opts.Prompter
	if prompter == nil {
		prompter = prompt.NonInteractive{}
	}

	src, rec, err := loadSource(ctx, plan, console)
	if err != nil {
		return nil, err
	}

	ops := make([]Operation, 0, plan.NumCopies)
	for _, number := range plan.Numbers() {
		name := rec.CopyName(number)
		replace, err := mayReplace(ctx, plan, prompter, name)
		if err != nil {
			return nil, err
		}
		ops = append(ops, &copyOperation{
			lib:     plan.Library,
			src:     src,
			rec:     rec,
			name:    name,
			number:  number,
			replace: replace,
			console: console,
		})
	}

	console.StartDuplicate(ctx, log.DuplicateOperation{
		Source:     plan.Blueprint,
		Library:    plan.Library.Root(),
		FirstIndex: plan.FirstIndex,
		Count:      plan.NumCopies,
	})

	runner := NewRunner(zerolog.Ctx(ctx), opts.Async, opts.Workers)
	runErr := runner.Run(ctx, ops...)
	summary := console.EndDuplicate(ctx)

	if runErr != nil {
		return nil, errors.Errorf("duplicating %q: %w", plan.Blueprint, runErr)
	}
	return &Result{Identity: rec, Summary: summary}, nil
}

// loadSource reads and validates the source blueprint.
func loadSource(ctx context.Context, plan Plan, console *log.Logger) (*library.Blueprint, *blueprint.IdentityRecord, error) {
	src, err := plan.Library.Load(ctx, plan.Blueprint)
	if err != nil {
		return nil, nil, err
	}

	rec, err := blueprint.ExtractIdentity(ctx, src.Data)
	if err != nil {
		return nil, nil, errors.Errorf("reading identity of %q: %w", plan.Blueprint, err)
	}

	if src.Name != rec.DisplayName() {
		console.Warningf("blueprint %q should be in a folder called %q; copies are named after the display name", src.Name, rec.DisplayName())
	}
	return src, rec, nil
}

// mayReplace decides up front whether an existing copy called name may be replaced.
func mayReplace(ctx context.Context, plan Plan, p prompt.Prompter, name string) (bool, error) {
	exists, err := plan.Library.Exists(name)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}
	if plan.Force {
		return true, nil
	}

	ok, err := p.Confirm(ctx, "Replace all contents of the existing blueprint \""+name+"\"?")
	if err != nil {
		return false, err
	}
	if !ok {
		return false, errors.WithDetails(errors.Errorf("%w: %s", ErrDeclined, name), "name", name)
	}
	return true, nil
}

// ✏️ copyOperation renders and writes one copy
type copyOperation struct {
	lib     *library.Library
	src     *library.Blueprint
	rec     *blueprint.IdentityRecord
	name    string
	number  int
	replace bool
	console *log.Logger
}

// Execute renders the copy and writes it into the library
func (op *copyOperation) Execute(ctx context.Context) error {
	entry := log.CopyOperation{Name: op.name, Number: op.number, Items: len(op.rec.ItemNames())}

	status, err := op.write(ctx)
	if err != nil {
		entry.Status = "failed"
		entry.IsFailed = true
		op.console.LogCopyOperation(ctx, entry)
		return errors.Errorf("writing copy %q: %w", op.name, err)
	}

	entry.Status = status.String()
	entry.IsNew = status == library.StatusNew
	entry.IsReplaced = status == library.StatusReplaced
	op.console.LogCopyOperation(ctx, entry)
	return nil
}

func (op *copyOperation) write(ctx context.Context) (library.CopyStatus, error) {
	data, err := blueprint.RewriteWithNewIdentity(ctx, op.src.Data, op.rec, op.number)
	if err != nil {
		return library.StatusUnknown, err
	}

	return op.lib.WriteCopy(ctx, library.CopyRequest{
		Name:      op.name,
		Data:      data,
		BOM:       op.src.BOM,
		Thumbnail: op.src.Thumbnail,
		Replace:   op.replace,
	})
}
