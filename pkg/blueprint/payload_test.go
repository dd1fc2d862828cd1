package blueprint

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMissileNumber(t *testing.T) {
	tests := []struct {
		name        string
		payload     string
		want        int
		wantErr     bool
		errContains string
	}{
		{name: "only_line", payload: "Missile number=12", want: 12},
		{name: "middle_line", payload: "[WHAM]\nMissile number=3\nFire ticks=10\n", want: 3},
		{name: "crlf", payload: "[WHAM]\r\nMissile number=3\r\n", want: 3},
		{name: "zero", payload: "Missile number=0\n", want: 0},
		{name: "leading_zeros", payload: "Missile number=007\n", want: 7},
		{name: "no_marker", payload: "[WHAM]\nFire ticks=10\n", wantErr: true, errContains: "no line starting with"},
		{name: "empty_number", payload: "Missile number=\n", wantErr: true, errContains: `line "Missile number="`},
		{name: "negative", payload: "Missile number=-4\n", wantErr: true},
		{name: "indented", payload: "  Missile number=4\n", wantErr: true},
		{name: "trailing_space", payload: "Missile number=4 \n", wantErr: true},
		{name: "two_lines", payload: "Missile number=4\nMissile number=4\n", wantErr: true, errContains: "2 lines mention"},
		{name: "overflow", payload: "Missile number=99999999999999999999999\n", wantErr: true, errContains: "does not fit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMissileNumber(tt.payload)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrFormatShape)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRewritePayload(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		newID int
		want  string
	}{
		{name: "middle_line", raw: "[WHAM]\nMissile number=42\nFire ticks=10\n", newID: 7, want: "[WHAM]\nMissile number=7\nFire ticks=10\n"},
		{name: "last_line_without_newline", raw: "a\nMissile number=1", newID: 1000, want: "a\nMissile number=1000"},
		{name: "crlf_kept", raw: "Missile number=5\r\nx=5\r\n", newID: 6, want: "Missile number=6\r\nx=5\r\n"},
		{name: "leading_zeros_dropped", raw: "Missile number=042\n", newID: 43, want: "Missile number=43\n"},
		{
			name:  "line_breaks_as_references",
			raw:   "[WHAM]&#xD;&#xA;Missile number=42&#xD;&#xA;Fire ticks=10&#xD;&#xA;",
			newID: 7,
			want:  "[WHAM]&#xD;&#xA;Missile number=7&#xD;&#xA;Fire ticks=10&#xD;&#xA;",
		},
		{
			name:  "carriage_return_reference",
			raw:   "[WHAM]\nMissile number=42&#13;\nFire ticks=10",
			newID: 8,
			want:  "[WHAM]\nMissile number=8&#13;\nFire ticks=10",
		},
		{name: "digits_as_references", raw: "x &amp; y\nMissile number=&#52;&#50;\n", newID: 7, want: "x &amp; y\nMissile number=7\n"},
		{name: "entities_elsewhere_kept", raw: "Target 42 &amp; &quot;more&quot;\nMissile number=42\n", newID: 1, want: "Target 42 &amp; &quot;more&quot;\nMissile number=1\n"},
		{name: "cdata", raw: "<![CDATA[Missile number=3\n<raw> &amp;]]>", newID: 4, want: "<![CDATA[Missile number=4\n<raw> &amp;]]>"},
		{name: "cdata_crlf", raw: "<![CDATA[Missile number=3\r\n]]>", newID: 40, want: "<![CDATA[Missile number=40\r\n]]>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rewritePayload([]byte(tt.raw), decodeCharData(t, tt.raw), tt.newID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))

			n, err := parseMissileNumber(string(decodeCharData(t, string(got))))
			require.NoError(t, err, "renumbered payload should parse again")
			assert.Equal(t, tt.newID, n)
		})
	}
}

func TestRewritePayloadErrors(t *testing.T) {
	_, err := rewritePayload([]byte("Missile number=1"), []byte("Missile number=2"), 3)
	assert.ErrorIs(t, err, ErrStructuralParse, "source bytes and text must agree")

	raw := "Missile number=1 2\n"
	_, err = rewritePayload([]byte(raw), decodeCharData(t, raw), 3)
	assert.ErrorIs(t, err, ErrFormatShape)
}

// decodeCharData returns the text encoding/xml reads for raw inside an element.
func decodeCharData(t *testing.T, raw string) []byte {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader("<a>" + raw + "</a>"))
	dec.Strict = true

	var text []byte
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return text
		}
		require.NoError(t, err)
		if cd, ok := tok.(xml.CharData); ok {
			text = append(text, cd...)
		}
	}
}
