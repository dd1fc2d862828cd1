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
	"slices"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/whamdup/pkg/config"
	"github.com/walteh/whamdup/pkg/library"
	"github.com/walteh/whamdup/pkg/log"
	"github.com/walteh/whamdup/pkg/prompt"
)

// 📂 ResolveLibrary returns the library at folder, or asks for one when folder is
// empty, offering the game's default location. A folder given up front must be valid.
func ResolveLibrary(ctx context.Context, p prompt.Prompter, logger *log.Logger, folder string) (*library.Library, error) {
	if folder != "" {
		ok, err := library.IsValidLocation(folder)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.Errorf("%q is not a blueprint folder: it should hold folders that each contain a %s", folder, library.BlueprintFile)
		}
		return library.New(folder), nil
	}

	def, err := library.DefaultLocation()
	if err != nil {
		logger.Warningf("could not locate the game's blueprint folder: %v", err)
	}

	for {
		answer, err := p.Text(ctx, "Blueprint folder", def)
		if err != nil {
			return nil, err
		}
		ok, err := library.IsValidLocation(answer)
		if err != nil {
			return nil, err
		}
		if ok {
			return library.New(answer), nil
		}
		logger.Warningf("%q is not valid: it should hold folders that each contain a %s", answer, library.BlueprintFile)
	}
}

// 🧩 ResolvePlan completes cfg into a Plan, asking for every value it lacks.
func ResolvePlan(ctx context.Context, p prompt.Prompter, lib *library.Library, cfg *config.Config) (Plan, error) {
	plan := Plan{
		Library:    lib,
		Blueprint:  cfg.Blueprint,
		FirstIndex: cfg.FirstIndex,
		NumCopies:  cfg.NumCopies,
		Force:      cfg.Force,
	}

	names, err := lib.List(ctx)
	if err != nil {
		return Plan{}, err
	}
	if len(names) == 0 {
		return Plan{}, errors.Errorf("%s holds no blueprints", lib.Root())
	}

	if plan.Blueprint == "" {
		i, err := p.Choose(ctx, "Blueprint to duplicate", names)
		if err != nil {
			return Plan{}, err
		}
		plan.Blueprint = names[i]
	} else if !slices.Contains(names, plan.Blueprint) {
		return Plan{}, errors.Errorf("blueprint %q does not exist in %s", plan.Blueprint, lib.Root())
	}

	if plan.FirstIndex == 0 {
		plan.FirstIndex, err = p.Number(ctx, "Starting number of the copies", config.MinIndex, config.MaxIndex)
		if err != nil {
			return Plan{}, err
		}
	}

	if plan.NumCopies == 0 {
		plan.NumCopies, err = p.Number(ctx, "How many copies", config.MinIndex, config.MaxIndex)
		if err != nil {
			return Plan{}, err
		}
	}

	return plan, plan.Validate()
}
