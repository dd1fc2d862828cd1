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
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Element and attribute names of the Space Engineers blueprint format.
const (
	elemShipBlueprint = "ShipBlueprint"
	elemID            = "Id"
	elemCubeGrid      = "CubeGrid"
	elemDisplayName   = "DisplayName"
	elemBlockGroup    = "MyObjectBuilder_BlockGroup"
	elemName          = "Name"
	elemCubeBlock     = "MyObjectBuilder_CubeBlock"
	elemCustomName    = "CustomName"
	attrSubtype       = "Subtype"
)

// 🎯 fieldSite is a place in the document that carries part of the identity.
type fieldSite int

const (
	siteNone fieldSite = iota
	siteIdentity
	siteDisplayName
	siteGroupName
	siteItemName
)

// siteOf classifies an element by its own local name and its parent's.
func siteOf(parent, name string) fieldSite {
	switch {
	case parent == elemShipBlueprint && name == elemID:
		return siteIdentity
	case parent == elemCubeGrid && name == elemDisplayName:
		return siteDisplayName
	case parent == elemBlockGroup && name == elemName:
		return siteGroupName
	case parent == elemCubeBlock && name == elemCustomName:
		return siteItemName
	default:
		return siteNone
	}
}

// extraction accumulates raw field values while the document is streamed.
type extraction struct {
	subtypeID       string
	haveSubtypeID   bool
	displayName     string
	haveDisplayName bool
	groupName       string
	haveGroupName   bool
	payload         string
	havePayload     bool
	itemNames       []string
}

// 🔍 ExtractIdentity streams data once and returns its validated identity.
//
// No partial record is ever returned: any structural problem, missing or duplicated
// field, or disagreement between the four numbers fails the whole extraction.
func ExtractIdentity(ctx context.Context, data []byte) (*IdentityRecord, error) {
	logger := zerolog.Ctx(ctx)

	x, err := scanFields(data)
	if err != nil {
		return nil, err
	}

	rec, err := x.validate()
	if err != nil {
		return nil, err
	}

	logger.Debug().Object("identity", rec).Msg("found blueprint identity")
	return rec, nil
}

func scanFields(data []byte) (*extraction, error) {
	var (
		x     extraction
		stack elementStack
		cur   = newCursor(data)
	)

	for {
		ev, err := cur.Next()
		if err != nil {
			return nil, err
		}

		switch ev.kind {
		case eventDocumentStart:
			if stack.depth() != 0 {
				return nil, offsetError(ErrStructuralParse, ev.offset, "document start inside an element")
			}

		case eventStartElement:
			parent := stack.top()
			switch siteOf(parent, ev.name) {
			case siteIdentity:
				if x.haveSubtypeID {
					return nil, fieldError(ErrMissingField, "subtype", x.subtypeID, "more than one <%s> in <%s>", elemID, elemShipBlueprint)
				}
				subtype, ok := ev.attr(attrSubtype)
				if !ok {
					return nil, fieldError(ErrMissingField, "subtype", "", "<%s> has no %s attribute", elemID, attrSubtype)
				}
				x.subtypeID = subtype
				x.haveSubtypeID = true
				stack.push(ev.name)

			case siteDisplayName:
				if x.haveDisplayName {
					return nil, fieldError(ErrMissingField, "display_name", x.displayName, "more than one <%s> in <%s>", elemDisplayName, elemCubeGrid)
				}
				text, _, err := cur.ReadElementText(ev)
				if err != nil {
					return nil, err
				}
				x.displayName = text
				x.haveDisplayName = true

			case siteGroupName:
				if x.haveGroupName {
					return nil, fieldError(ErrMissingField, "group_name", x.groupName, "more than one block group defined")
				}
				text, _, err := cur.ReadElementText(ev)
				if err != nil {
					return nil, err
				}
				x.groupName = text
				x.haveGroupName = true

			case siteItemName:
				text, _, err := cur.ReadElementText(ev)
				if err != nil {
					return nil, err
				}
				x.itemNames = append(x.itemNames, text)

			default:
				stack.push(ev.name)
			}

		case eventEndElement:
			if _, ok := stack.pop(); !ok {
				return nil, offsetError(ErrStructuralParse, ev.offset, "closing </%s> with no open element", ev.name)
			}

		case eventText:
			if containsMarker(ev.text) {
				if x.havePayload {
					return nil, fieldError(ErrMissingField, "payload", string(ev.text), "more than one text block mentions %q", missileNumberMarker)
				}
				x.payload = string(ev.text)
				x.havePayload = true
			}

		case eventDocumentEnd:
			if stack.depth() != 0 {
				return nil, offsetError(ErrStructuralParse, ev.offset, "document ended with %d open elements", stack.depth())
			}
			return &x, nil

		default:
			return nil, offsetError(ErrStructuralParse, ev.offset, "unsupported %s event", ev.kind)
		}
	}
}

// validate checks the collected fields and builds the record.
func (x *extraction) validate() (*IdentityRecord, error) {
	switch {
	case !x.haveSubtypeID:
		return nil, fieldError(ErrMissingField, "subtype", "", "missing <%s %s=\"...\"> in <%s>", elemID, attrSubtype, elemShipBlueprint)
	case !x.haveDisplayName:
		return nil, fieldError(ErrMissingField, "display_name", "", "missing <%s> in <%s>", elemDisplayName, elemCubeGrid)
	case !x.haveGroupName:
		return nil, fieldError(ErrMissingField, "group_name", "", "missing block group over the items")
	case len(x.itemNames) == 0:
		return nil, fieldError(ErrMissingField, "item_names", "", "found no named blocks")
	case !x.havePayload:
		return nil, fieldError(ErrMissingField, "payload", "", "missing the WHAM custom data")
	}

	prefix := itemPrefix(x.groupName) + " "
	for _, name := range x.itemNames {
		if !strings.HasPrefix(name, prefix) {
			return nil, fieldError(ErrConsistency, "item_name", name, "item %q is missing the group prefix %q", name, prefix)
		}
	}

	subtypeNumber, err := numericSuffix("subtype", x.subtypeID)
	if err != nil {
		return nil, err
	}
	displayNumber, err := numericSuffix("display_name", x.displayName)
	if err != nil {
		return nil, err
	}
	groupNumber, err := numericSuffix("group_name", x.groupName)
	if err != nil {
		return nil, err
	}
	payloadNumber, err := parseMissileNumber(x.payload)
	if err != nil {
		return nil, err
	}

	if subtypeNumber != displayNumber || displayNumber != groupNumber || groupNumber != payloadNumber {
		return nil, fieldError(ErrConsistency, "numbering", x.displayName,
			"subtype, display name, group name and custom data disagree: %d vs. %d vs. %d vs. %d",
			subtypeNumber, displayNumber, groupNumber, payloadNumber)
	}

	return &IdentityRecord{
		subtypeID:   x.subtypeID,
		displayName: x.displayName,
		groupName:   x.groupName,
		itemNames:   x.itemNames,
		numericID:   groupNumber,
	}, nil
}
