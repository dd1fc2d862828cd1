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
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/walteh/whamdup/pkg/blueprint"
)

// 🔍 PreviewResult is the rendering of the first copy of a plan, not written to disk.
type PreviewResult struct {
	Identity *blueprint.IdentityRecord
	Name     string // folder name the copy would get
	Number   int
	Exists   bool // a blueprint with that name is already in the library
	Diff     string
	Changes  int // number of changed lines
}

// 👀 Preview renders the copy numbered plan.FirstIndex and diffs it line by line
// against the source.
func Preview(ctx context.Context, plan Plan) (*PreviewResult, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	src, err := plan.Library.Load(ctx, plan.Blueprint)
	if err != nil {
		return nil, err
	}
	rec, err := blueprint.ExtractIdentity(ctx, src.Data)
	if err != nil {
		return nil, err
	}

	out, err := blueprint.RewriteWithNewIdentity(ctx, src.Data, rec, plan.FirstIndex)
	if err != nil {
		return nil, err
	}

	name := rec.CopyName(plan.FirstIndex)
	exists, err := plan.Library.Exists(name)
	if err != nil {
		return nil, err
	}

	diff, changes := lineDiff(string(src.Data), string(out))
	return &PreviewResult{
		Identity: rec,
		Name:     name,
		Number:   plan.FirstIndex,
		Exists:   exists,
		Diff:     diff,
		Changes:  changes,
	}, nil
}

// lineDiff returns a unified-style listing of the changed lines between a and b.
func lineDiff(a, b string) (string, int) {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var (
		sb      strings.Builder
		changes int
	)
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(strings.TrimRight(line, "\r\n"))
			sb.WriteByte('\n')
			if prefix == "+ " {
				changes++
			}
		}
	}
	return sb.String(), changes
}
