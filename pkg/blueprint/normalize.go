package blueprint

import (
	"bytes"
)

var (
	quoteEntity  = []byte("&quot;")
	literalQuote = []byte(`"`)
)

// normalizeOutput matches the byte shape the game writes and expects to load:
// every self-closing tag ends in exactly " />", and &quot; in character data is a
// literal quote. Comments, CDATA sections, processing instructions and attribute
// values are left alone.
func normalizeOutput(b []byte) []byte {
	out := make([]byte, 0, len(b)+len(b)/32)

	for i := 0; i < len(b); {
		if b[i] != '<' {
			j := bytes.IndexByte(b[i:], '<')
			if j < 0 {
				j = len(b)
			} else {
				j += i
			}
			out = append(out, bytes.ReplaceAll(b[i:j], quoteEntity, literalQuote)...)
			i = j
			continue
		}

		var j int
		switch rest := b[i:]; {
		case bytes.HasPrefix(rest, []byte("<!--")):
			j = skipPast(b, i, "-->")
		case bytes.HasPrefix(rest, []byte("<![CDATA[")):
			j = skipPast(b, i, "]]>")
		case bytes.HasPrefix(rest, []byte("<?")):
			j = skipPast(b, i, "?>")
		case bytes.HasPrefix(rest, []byte("<!")):
			j = skipPast(b, i, ">")
		default:
			j = tagEnd(b, i)
			out = appendTag(out, b[i:j])
			i = j
			continue
		}
		out = append(out, b[i:j]...)
		i = j
	}

	return out
}

// skipPast returns the index just after the first terminator at or after i, or len(b).
func skipPast(b []byte, i int, terminator string) int {
	j := bytes.Index(b[i:], []byte(terminator))
	if j < 0 {
		return len(b)
	}
	return i + j + len(terminator)
}

// tagEnd returns the index just after the '>' closing the tag that starts at i.
// A '>' inside a quoted attribute value does not end the tag.
func tagEnd(b []byte, i int) int {
	var inQuote byte
	for j := i + 1; j < len(b); j++ {
		switch c := b[j]; {
		case inQuote != 0:
			if c == inQuote {
				inQuote = 0
			}
		case c == '"' || c == '\'':
			inQuote = c
		case c == '>':
			return j + 1
		}
	}
	return len(b)
}

func appendTag(out, tag []byte) []byte {
	body, ok := bytes.CutSuffix(tag, []byte("/>"))
	if !ok {
		return append(out, tag...)
	}
	out = append(out, bytes.TrimRight(body, " \t\r\n")...)
	return append(out, " />"...)
}
