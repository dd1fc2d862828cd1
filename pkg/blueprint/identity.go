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
	"fmt"
	"slices"

	"github.com/rs/zerolog"
)

// 🪪 IdentityRecord is the validated numbering of one blueprint document.
// It is built only by ExtractIdentity and never changes afterwards.
type IdentityRecord struct {
	subtypeID   string
	displayName string
	groupName   string
	itemNames   []string
	numericID   int
}

// SubtypeID returns the Subtype attribute of the blueprint's Id element.
func (r *IdentityRecord) SubtypeID() string { return r.subtypeID }

// DisplayName returns the grid's display name.
func (r *IdentityRecord) DisplayName() string { return r.displayName }

// GroupName returns the name of the block group.
func (r *IdentityRecord) GroupName() string { return r.groupName }

// ItemNames returns the custom names of the grouped blocks in document order.
func (r *IdentityRecord) ItemNames() []string { return slices.Clone(r.itemNames) }

// NumericID returns the number shared by the subtype, display name, group name and payload.
func (r *IdentityRecord) NumericID() int { return r.numericID }

// ItemPrefix returns the prefix every item name starts with, e.g. "(Missile Group 42) ".
func (r *IdentityRecord) ItemPrefix() string { return itemPrefix(r.groupName) + " " }

// CopyName returns the display name the blueprint gets when renumbered to id.
func (r *IdentityRecord) CopyName(id int) string { return withNumber(r.displayName, id) }

func (r *IdentityRecord) String() string {
	return fmt.Sprintf("%s #%d (%s, %d items)", r.displayName, r.numericID, r.groupName, len(r.itemNames))
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler
func (r *IdentityRecord) MarshalZerologObject(e *zerolog.Event) {
	e.Str("subtype", r.subtypeID).
		Str("display_name", r.displayName).
		Str("group_name", r.groupName).
		Int("items", len(r.itemNames)).
		Int("number", r.numericID)
}

func itemPrefix(groupName string) string {
	return "(" + groupName + ")"
}
