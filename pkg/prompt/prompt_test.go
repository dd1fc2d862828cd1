package prompt

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(t *testing.T, input string) (*Console, *bytes.Buffer) {
	t.Helper()
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	out := &bytes.Buffer{}
	return NewConsole(strings.NewReader(input), out), out
}

func TestConsoleNumber(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       int
		wantErr    error
		wantOutput []string
	}{
		{name: "plain", input: "5\n", want: 5},
		{name: "surrounding_space", input: "  12 \n", want: 12},
		{name: "no_trailing_newline", input: "7", want: 7},
		{
			name:       "retries_on_letters",
			input:      "five\n5\n",
			want:       5,
			wantOutput: []string{"please enter digits only"},
		},
		{
			name:       "retries_out_of_range",
			input:      "0\n10000\n9999\n",
			want:       9999,
			wantOutput: []string{"please enter a number from 1 to 9999"},
		},
		{name: "negative_is_not_digits", input: "-3\n3\n", want: 3, wantOutput: []string{"digits only"}},
		{name: "quit", input: "q\n", wantErr: ErrQuit},
		{name: "quit_word", input: "QUIT\n", wantErr: ErrQuit},
		{name: "end_of_input", input: "", wantErr: ErrQuit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out := newTestConsole(t, tt.input)

			got, err := c.Number(context.Background(), "First index", 1, 9999)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "First index (1-9999):")
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestConsoleText(t *testing.T) {
	c, out := newTestConsole(t, "\n\nHoming Missile 1\n")
	got, err := c.Text(context.Background(), "Blueprint", "")
	require.NoError(t, err)
	assert.Equal(t, "Homing Missile 1", got)
	assert.Equal(t, 2, strings.Count(out.String(), "please enter a value"))

	c, out = newTestConsole(t, "\n")
	got, err = c.Text(context.Background(), "Blueprint folder", "/games/local")
	require.NoError(t, err)
	assert.Equal(t, "/games/local", got, "empty answer takes the default")
	assert.Contains(t, out.String(), "Blueprint folder [/games/local]:")
}

func TestConsoleChoose(t *testing.T) {
	items := []string{"Homing Missile 1", "Rover", "Homing Drone"}

	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "by_number", input: "2\n", want: 1},
		{name: "by_name", input: "Homing Drone\n", want: 2},
		{name: "retry", input: "4\nabc\n1\n", want: 0},
		{name: "quit", input: "q\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out := newTestConsole(t, tt.input)

			got, err := c.Choose(context.Background(), "Blueprint", items)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrQuit)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			for _, item := range items {
				assert.Contains(t, out.String(), item, "table should list every item")
			}
		})
	}

	c, _ := newTestConsole(t, "1\n")
	_, err := c.Choose(context.Background(), "Blueprint", nil)
	assert.Error(t, err)
}

func TestConsoleConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "yes_word", input: "Yes\n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "default_no", input: "\n", want: false},
		{name: "retry", input: "maybe\ny\n", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestConsole(t, tt.input)
			got, err := c.Confirm(context.Background(), "Overwrite?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNonInteractive(t *testing.T) {
	ctx := context.Background()
	var p Prompter = NonInteractive{}

	_, err := p.Number(ctx, "First index", 1, 9999)
	assert.ErrorIs(t, err, ErrNotInteractive)
	assert.Contains(t, err.Error(), "First index")

	_, err = p.Choose(ctx, "Blueprint", []string{"a"})
	assert.ErrorIs(t, err, ErrNotInteractive)

	_, err = p.Confirm(ctx, "Overwrite?")
	assert.ErrorIs(t, err, ErrNotInteractive)

	_, err = p.Text(ctx, "Folder", "/default")
	assert.ErrorIs(t, err, ErrNotInteractive, "defaults are not taken silently")
}

func TestIsInteractiveEnvOverride(t *testing.T) {
	t.Setenv(EnvNonInteractive, "1")
	assert.False(t, IsInteractive())
	assert.IsType(t, NonInteractive{}, Detect())
}
