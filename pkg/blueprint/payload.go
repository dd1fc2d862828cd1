package blueprint

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// missileNumberMarker identifies the WHAM custom data among all text of a blueprint.
const missileNumberMarker = "Missile number="

var missileNumberLine = regexp.MustCompile(`^Missile number=(\d+)$`)

// missileNumberSpan is the byte range of the digits on the payload's marker line.
type missileNumberSpan struct {
	start, end int
}

func containsMarker(text []byte) bool {
	return strings.Contains(string(text), missileNumberMarker)
}

// findMissileNumber locates the one line of payload reading "Missile number=<digits>".
// A trailing carriage return on the line is allowed. Any other line mentioning the
// marker, or more than one marker line, is a shape error.
func findMissileNumber(payload string) (missileNumberSpan, error) {
	var (
		span  missileNumberSpan
		count int
	)

	for start := 0; start <= len(payload); {
		end := strings.IndexByte(payload[start:], '\n')
		if end < 0 {
			end = len(payload)
		} else {
			end += start
		}

		line := strings.TrimSuffix(payload[start:end], "\r")
		if strings.Contains(line, missileNumberMarker) {
			count++
			m := missileNumberLine.FindStringSubmatchIndex(line)
			if m == nil {
				return missileNumberSpan{}, fieldError(ErrFormatShape, "payload", line, "line %q is not of the form %q", line, missileNumberMarker+"<number>")
			}
			span = missileNumberSpan{start: start + m[2], end: start + m[3]}
		}

		if end == len(payload) {
			break
		}
		start = end + 1
	}

	switch {
	case count == 0:
		return missileNumberSpan{}, fieldError(ErrFormatShape, "payload", payload, "no line starting with %q", missileNumberMarker)
	case count > 1:
		return missileNumberSpan{}, fieldError(ErrFormatShape, "payload", payload, "%d lines mention %q, expected one", count, missileNumberMarker)
	}

	return span, nil
}

// parseMissileNumber returns the number on the payload's marker line.
func parseMissileNumber(payload string) (int, error) {
	span, err := findMissileNumber(payload)
	if err != nil {
		return 0, err
	}
	digits := payload[span.start:span.end]
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fieldError(ErrFormatShape, "payload", digits, "missile number %q does not fit: %v", digits, err)
	}
	return n, nil
}

// rewritePayload renumbers the payload text node whose source bytes are raw and whose
// decoded text is text. Only the bytes of the digits change: character references,
// line endings and a surrounding CDATA section are kept as written.
func rewritePayload(raw, text []byte, newID int) ([]byte, error) {
	body, offset, cdata := raw, 0, false
	if inner, ok := bytes.CutPrefix(raw, cdataOpen); ok {
		if inner, ok = bytes.CutSuffix(inner, cdataClose); ok {
			body, offset, cdata = inner, len(cdataOpen), true
		}
	}

	decoded, rawAt, err := mapCharData(body, cdata)
	if err != nil {
		return nil, err
	}
	if decoded != string(text) {
		return nil, fieldError(ErrStructuralParse, "payload", string(raw), "payload source %q does not decode to its text", raw)
	}

	span, err := findMissileNumber(decoded)
	if err != nil {
		return nil, err
	}
	start, end := rawAt[span.start], rawAt[span.end]
	if start < 0 || end < 0 {
		return nil, fieldError(ErrFormatShape, "payload", decoded, "missile number is split inside a character reference")
	}

	out := make([]byte, 0, len(raw)+8)
	out = append(out, raw[:offset+start]...)
	out = strconv.AppendInt(out, int64(newID), 10)
	return append(out, raw[offset+end:]...), nil
}

var (
	cdataOpen  = []byte("<![CDATA[")
	cdataClose = []byte("]]>")
)

// mapCharData decodes character data the way encoding/xml does and records, for every
// decoded byte, the source offset it starts at (-1 for bytes inside a multi-byte
// unit). The extra last entry is len(raw). Outside CDATA references are resolved; in
// both, a literal \r or \r\n becomes \n.
func mapCharData(raw []byte, cdata bool) (string, []int, error) {
	var (
		out   = make([]byte, 0, len(raw))
		rawAt = make([]int, 0, len(raw)+1)
	)
	emit := func(decoded string, at int) {
		for i := 0; i < len(decoded); i++ {
			if i == 0 {
				rawAt = append(rawAt, at)
			} else {
				rawAt = append(rawAt, -1)
			}
		}
		out = append(out, decoded...)
	}

	for i := 0; i < len(raw); {
		switch c := raw[i]; {
		case c == '&' && !cdata:
			decoded, n, ok := decodeReference(raw[i:])
			if !ok {
				return "", nil, offsetError(ErrStructuralParse, int64(i), "undecodable reference in %q", raw)
			}
			emit(decoded, i)
			i += n
		case c == '\r':
			emit("\n", i)
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i += 2
			} else {
				i++
			}
		default:
			emit(string(c), i)
			i++
		}
	}

	rawAt = append(rawAt, len(raw))
	return string(out), rawAt, nil
}

// decodeReference resolves the entity or character reference at the start of b and
// returns its text and source length.
func decodeReference(b []byte) (string, int, bool) {
	end := bytes.IndexByte(b, ';')
	if end < 2 {
		return "", 0, false
	}
	name := string(b[1:end])

	switch name {
	case "lt":
		return "<", end + 1, true
	case "gt":
		return ">", end + 1, true
	case "amp":
		return "&", end + 1, true
	case "apos":
		return "'", end + 1, true
	case "quot":
		return `"`, end + 1, true
	}

	digits, base := strings.CutPrefix(name, "#x")
	if base {
		n, err := strconv.ParseUint(digits, 16, 32)
		if err != nil || n > unicode.MaxRune {
			return "", 0, false
		}
		return string(rune(n)), end + 1, true
	}
	if digits, ok := strings.CutPrefix(name, "#"); ok {
		n, err := strconv.ParseUint(digits, 10, 32)
		if err != nil || n > unicode.MaxRune {
			return "", 0, false
		}
		return string(rune(n)), end + 1, true
	}
	return "", 0, false
}
