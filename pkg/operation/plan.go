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
	"fmt"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/whamdup/pkg/config"
	"github.com/walteh/whamdup/pkg/library"
)

// 📋 Plan is a fully resolved duplication run.
type Plan struct {
	Library    *library.Library
	Blueprint  string // source blueprint folder name
	FirstIndex int    // number of the first copy
	NumCopies  int
	Force      bool // replace existing copies without asking
}

// Validate checks that every value of the plan is set and in range.
func (p Plan) Validate() error {
	switch {
	case p.Library == nil:
		return errors.Errorf("plan has no library")
	case p.Blueprint == "":
		return errors.Errorf("plan has no blueprint")
	case p.FirstIndex < config.MinIndex || p.FirstIndex > config.MaxIndex:
		return errors.Errorf("first index must be between %d and %d, got %d", config.MinIndex, config.MaxIndex, p.FirstIndex)
	case p.NumCopies < config.MinIndex || p.NumCopies > config.MaxIndex:
		return errors.Errorf("number of copies must be between %d and %d, got %d", config.MinIndex, config.MaxIndex, p.NumCopies)
	}
	return nil
}

// Numbers returns the missile numbers of the copies in order.
func (p Plan) Numbers() []int {
	numbers := make([]int, p.NumCopies)
	for i := range numbers {
		numbers[i] = p.FirstIndex + i
	}
	return numbers
}

func (p Plan) String() string {
	copies := "copies"
	if p.NumCopies == 1 {
		copies = "copy"
	}
	return fmt.Sprintf("%d %s of %q starting at %d", p.NumCopies, copies, p.Blueprint, p.FirstIndex)
}
