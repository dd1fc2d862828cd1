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
	"encoding/xml"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🧭 eventKind is the kind of a structural event produced by the cursor
type eventKind int

const (
	eventInvalid eventKind = iota
	eventDocumentStart
	eventStartElement
	eventEndElement
	eventText
	eventComment
	eventProcInst
	eventDirective
	eventDocumentEnd
)

func (k eventKind) String() string {
	switch k {
	case eventDocumentStart:
		return "document start"
	case eventStartElement:
		return "start element"
	case eventEndElement:
		return "end element"
	case eventText:
		return "text"
	case eventComment:
		return "comment"
	case eventProcInst:
		return "processing instruction"
	case eventDirective:
		return "directive"
	case eventDocumentEnd:
		return "document end"
	default:
		return "invalid"
	}
}

// 📍 event is one step of the stream. raw is the exact source bytes the event was read from.
type event struct {
	kind        eventKind
	name        string // local name for element events
	attrs       []xml.Attr
	text        []byte // decoded character data
	raw         []byte
	offset      int64
	selfClosing bool
}

// attr returns the value of the un-namespaced attribute local.
func (e event) attr(local string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// 🧭 cursor walks a document once, handing out events together with their source bytes.
//
// After ReadElementText the cursor sits past the element's close event; callers must
// not expect to see that close event from Next.
type cursor struct {
	src    []byte
	dec    *xml.Decoder
	offset int64
	opened bool
	closed bool
}

func newCursor(src []byte) *cursor {
	dec := xml.NewDecoder(bytes.NewReader(src))
	dec.Strict = true
	return &cursor{src: src, dec: dec}
}

// Next returns the next event. The first event is always eventDocumentStart and the
// last one eventDocumentEnd; calling Next after that returns io.EOF.
// Comments, processing instructions and directives are reported as they are; it is
// up to the caller to reject them.
func (c *cursor) Next() (event, error) {
	if !c.opened {
		c.opened = true
		return c.documentStart()
	}
	if c.closed {
		return event{}, io.EOF
	}

	tok, err := c.dec.Token()
	if errors.Is(err, io.EOF) {
		c.closed = true
		return event{kind: eventDocumentEnd, raw: c.src[c.offset:], offset: c.offset}, nil
	}
	if err != nil {
		return event{}, offsetError(ErrStructuralParse, c.offset, "reading xml: %v", err)
	}

	end := c.dec.InputOffset()
	ev := event{raw: c.src[c.offset:end], offset: c.offset}
	c.offset = end

	switch t := tok.(type) {
	case xml.StartElement:
		ev.kind = eventStartElement
		ev.name = t.Name.Local
		ev.attrs = t.Attr
		ev.selfClosing = bytes.HasSuffix(ev.raw, []byte("/>"))
	case xml.EndElement:
		ev.kind = eventEndElement
		ev.name = t.Name.Local
	case xml.CharData:
		ev.kind = eventText
		ev.text = bytes.Clone(t)
	case xml.Comment:
		ev.kind = eventComment
	case xml.ProcInst:
		ev.kind = eventProcInst
	case xml.Directive:
		ev.kind = eventDirective
	default:
		return event{}, offsetError(ErrStructuralParse, ev.offset, "unsupported token %T", tok)
	}

	return ev, nil
}

// documentStart returns the first event. A leading <?xml ...?> declaration belongs to it;
// any later processing instruction is an event of its own.
func (c *cursor) documentStart() (event, error) {
	ev := event{kind: eventDocumentStart}
	if !hasDeclaration(c.src) {
		return ev, nil
	}

	tok, err := c.dec.Token()
	if err != nil {
		return event{}, offsetError(ErrStructuralParse, 0, "reading xml declaration: %v", err)
	}
	if pi, ok := tok.(xml.ProcInst); !ok || pi.Target != "xml" {
		return event{}, offsetError(ErrStructuralParse, 0, "malformed xml declaration")
	}

	c.offset = c.dec.InputOffset()
	ev.raw = c.src[:c.offset]
	return ev, nil
}

func hasDeclaration(src []byte) bool {
	const decl = "<?xml"
	if !bytes.HasPrefix(src, []byte(decl)) || len(src) == len(decl) {
		return false
	}
	switch src[len(decl)] {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

// ReadElementText reads the text content of the element whose start event was just
// returned by Next, consuming everything up to and including its close event.
// Anything but character data inside is an error.
func (c *cursor) ReadElementText(start event) (string, event, error) {
	var sb strings.Builder
	for {
		ev, err := c.Next()
		if err != nil {
			return "", event{}, err
		}
		switch ev.kind {
		case eventText:
			sb.Write(ev.text)
		case eventEndElement:
			return sb.String(), ev, nil
		case eventStartElement:
			return "", event{}, offsetError(ErrStructuralParse, ev.offset, "element <%s> inside text-only element <%s>", ev.name, start.name)
		default:
			return "", event{}, offsetError(ErrStructuralParse, ev.offset, "unexpected %s inside <%s>", ev.kind, start.name)
		}
	}
}

// 📚 elementStack tracks the local names of the currently open elements.
type elementStack struct {
	names []string
}

func (s *elementStack) push(name string) { s.names = append(s.names, name) }

func (s *elementStack) pop() (string, bool) {
	if len(s.names) == 0 {
		return "", false
	}
	top := s.names[len(s.names)-1]
	s.names = s.names[:len(s.names)-1]
	return top, true
}

// top returns the innermost open element, or "" at document level.
func (s *elementStack) top() string {
	if len(s.names) == 0 {
		return ""
	}
	return s.names[len(s.names)-1]
}

func (s *elementStack) depth() int { return len(s.names) }
