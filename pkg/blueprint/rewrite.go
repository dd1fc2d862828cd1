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
	"bytes"
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔢 renumbering holds the replacement strings for one target number.
type renumbering struct {
	newID         int
	subtypeID     string
	displayName   string
	groupName     string
	oldItemPrefix string
	newItemPrefix string
}

func newRenumbering(rec *IdentityRecord, newID int) renumbering {
	groupName := withNumber(rec.groupName, newID)
	return renumbering{
		newID:         newID,
		subtypeID:     withNumber(rec.subtypeID, newID),
		displayName:   withNumber(rec.displayName, newID),
		groupName:     groupName,
		oldItemPrefix: itemPrefix(rec.groupName),
		newItemPrefix: itemPrefix(groupName),
	}
}

// itemName swaps the group prefix at the start of name, keeping the rest verbatim.
func (r renumbering) itemName(name string) (string, error) {
	if !strings.HasPrefix(name, r.oldItemPrefix) {
		return "", fieldError(ErrConsistency, "item_name", name, "item %q does not start with %q", name, r.oldItemPrefix)
	}
	return r.newItemPrefix + name[len(r.oldItemPrefix):], nil
}

// ✏️ RewriteWithNewIdentity re-streams data and returns a copy renumbered to newID.
//
// Every event outside the identity fields is copied from the source bytes unchanged.
// On any failure no output is returned.
func RewriteWithNewIdentity(ctx context.Context, data []byte, rec *IdentityRecord, newID int) ([]byte, error) {
	if rec == nil {
		return nil, errors.Errorf("%w: identity record is required", ErrMissingField)
	}
	if newID < 0 {
		return nil, fieldError(ErrConsistency, "new_id", strconv.Itoa(newID), "new number %d is negative", newID)
	}

	logger := zerolog.Ctx(ctx).With().Int("old_number", rec.numericID).Int("new_number", newID).Logger()
	r := newRenumbering(rec, newID)

	var (
		out   bytes.Buffer
		stack elementStack
		cur   = newCursor(data)
	)
	out.Grow(len(data) + 64)

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
			out.Write(ev.raw)

		case eventStartElement:
			parent := stack.top()
			switch siteOf(parent, ev.name) {
			case siteIdentity:
				if _, ok := ev.attr(attrSubtype); !ok {
					return nil, fieldError(ErrMissingField, "subtype", "", "<%s> has no %s attribute", elemID, attrSubtype)
				}
				tag, err := replaceSubtype(ev.raw, r.subtypeID)
				if err != nil {
					return nil, err
				}
				out.Write(tag)
				stack.push(ev.name)

			case siteDisplayName:
				if err := rewriteText(cur, &out, ev, func(string) (string, error) { return r.displayName, nil }); err != nil {
					return nil, err
				}

			case siteGroupName:
				if err := rewriteText(cur, &out, ev, func(string) (string, error) { return r.groupName, nil }); err != nil {
					return nil, err
				}

			case siteItemName:
				if err := rewriteText(cur, &out, ev, r.itemName); err != nil {
					return nil, err
				}

			default:
				out.Write(ev.raw)
				stack.push(ev.name)
			}

		case eventEndElement:
			if _, ok := stack.pop(); !ok {
				return nil, offsetError(ErrStructuralParse, ev.offset, "closing </%s> with no open element", ev.name)
			}
			out.Write(ev.raw)

		case eventText:
			if !containsMarker(ev.text) {
				out.Write(ev.raw)
				break
			}
			payload, err := rewritePayload(ev.raw, ev.text, newID)
			if err != nil {
				return nil, err
			}
			logger.Debug().Int("payload_bytes", len(payload)).Msg("renumbering custom data")
			out.Write(payload)

		case eventDocumentEnd:
			if stack.depth() != 0 {
				return nil, offsetError(ErrStructuralParse, ev.offset, "document ended with %d open elements", stack.depth())
			}
			out.Write(ev.raw)
			return normalizeOutput(out.Bytes()), nil

		default:
			return nil, offsetError(ErrStructuralParse, ev.offset, "unsupported %s event", ev.kind)
		}
	}
}

// rewriteText consumes the text of start's element and writes the element back with
// the text returned by replace.
func rewriteText(cur *cursor, out *bytes.Buffer, start event, replace func(string) (string, error)) error {
	text, end, err := cur.ReadElementText(start)
	if err != nil {
		return err
	}
	text, err = replace(text)
	if err != nil {
		return err
	}

	if start.selfClosing {
		out.Write(openTag(start.raw))
		textEscaper.WriteString(out, text)
		out.WriteString("</" + qualifiedName(start.raw) + ">")
		return nil
	}

	out.Write(start.raw)
	textEscaper.WriteString(out, text)
	out.Write(end.raw)
	return nil
}

var subtypeAttr = regexp.MustCompile(`\s` + attrSubtype + `\s*=\s*(?:"[^"]*"|'[^']*')`)

// replaceSubtype rewrites the Subtype value inside a raw start tag, keeping its quoting.
func replaceSubtype(tag []byte, value string) ([]byte, error) {
	locs := subtypeAttr.FindAllIndex(tag, -1)
	if len(locs) != 1 {
		return nil, fieldError(ErrStructuralParse, "subtype", string(tag), "cannot locate a single %s attribute in %s", attrSubtype, tag)
	}
	start, end := locs[0][0], locs[0][1]
	quote := tag[end-1]
	open := bytes.IndexByte(tag[start:end], quote) + start

	var out bytes.Buffer
	out.Grow(len(tag) + len(value))
	out.Write(tag[:open+1])
	out.WriteString(escapeAttr(value, quote))
	out.Write(tag[end-1:])
	return out.Bytes(), nil
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeAttr(value string, quote byte) string {
	value = strings.NewReplacer("&", "&amp;", "<", "&lt;").Replace(value)
	if quote == '\'' {
		return strings.ReplaceAll(value, "'", "&apos;")
	}
	return strings.ReplaceAll(value, `"`, "&quot;")
}

// openTag turns a self-closing tag like <Name /> into <Name>.
func openTag(raw []byte) []byte {
	body := bytes.TrimRight(bytes.TrimSuffix(raw, []byte("/>")), " \t\r\n")
	return append(bytes.Clone(body), '>')
}

// qualifiedName returns the element name, prefix included, of a raw start tag.
func qualifiedName(raw []byte) string {
	name := bytes.TrimPrefix(raw, []byte("<"))
	if i := bytes.IndexAny(name, " \t\r\n/>"); i >= 0 {
		name = name[:i]
	}
	return string(name)
}
