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

package blueprint

import (
	"gitlab.com/tozd/go/errors"
)

// 🚨 Failure classes. Every error returned by this package wraps exactly one of them.
var (
	// ErrStructuralParse means the document is not well formed or holds an event we do not handle.
	ErrStructuralParse = errors.Base("structural parse error")

	// ErrMissingField means a required field is absent, duplicated or empty.
	ErrMissingField = errors.Base("missing field")

	// ErrConsistency means the numbering of the blueprint does not agree with itself.
	ErrConsistency = errors.Base("inconsistent numbering")

	// ErrFormatShape means the payload's missile number line is not "Missile number=<digits>".
	ErrFormatShape = errors.Base("unexpected payload shape")
)

// fieldError wraps base and attaches the field and offending value as error details.
func fieldError(base error, field, value, format string, args ...any) error {
	err := errors.Errorf("%w: "+format, append([]any{base}, args...)...)
	return errors.WithDetails(err, "field", field, "value", value)
}

// offsetError wraps base for failures tied to a position in the source document.
func offsetError(base error, offset int64, format string, args ...any) error {
	err := errors.Errorf("%w: "+format, append([]any{base}, args...)...)
	return errors.WithDetails(err, "offset", offset)
}
