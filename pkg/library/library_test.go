package library

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	root := t.TempDir()
	writeBlueprint(t, root, "Homing Missile 2", map[string]string{BlueprintFile: "<a/>"})
	writeBlueprint(t, root, "Homing Missile 1", map[string]string{BlueprintFile: "<a/>", ThumbnailFile: "png"})
	writeBlueprint(t, root, "Rover", map[string]string{BlueprintFile: "<a/>"})
	writeBlueprint(t, root, "Empty", map[string]string{"notes.txt": "x"})
	writeBlueprint(t, root, "Nested/Deep", map[string]string{BlueprintFile: "<a/>"})

	lib := New(root)
	names, err := lib.List(testContext(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"Homing Missile 1", "Homing Missile 2", "Rover"}, names)
}

func TestMatch(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"Homing Missile 1", "Homing Missile 2", "Rover", "Homing Drone"} {
		writeBlueprint(t, root, name, map[string]string{BlueprintFile: "<a/>"})
	}
	lib := New(root)

	tests := []struct {
		name    string
		pattern string
		want    []string
		wantErr bool
	}{
		{name: "star", pattern: "Homing Missile *", want: []string{"Homing Missile 1", "Homing Missile 2"}},
		{name: "class", pattern: "Homing*[12]", want: []string{"Homing Missile 1", "Homing Missile 2"}},
		{name: "alternatives", pattern: "{Rover,Homing Drone}", want: []string{"Homing Drone", "Rover"}},
		{name: "exact", pattern: "Rover", want: []string{"Rover"}},
		{name: "none", pattern: "Tank*", want: nil},
		{name: "invalid", pattern: "Homing[", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lib.Match(testContext(t), tt.pattern)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsValidLocation(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, root string)
		want  bool
	}{
		{
			name: "first_folder_has_blueprint",
			setup: func(t *testing.T, root string) {
				writeBlueprint(t, root, "A", map[string]string{BlueprintFile: "<a/>"})
				writeBlueprint(t, root, "B", map[string]string{"x": "y"})
			},
			want: true,
		},
		{
			name: "first_folder_without_blueprint",
			setup: func(t *testing.T, root string) {
				writeBlueprint(t, root, "A", map[string]string{"x": "y"})
				writeBlueprint(t, root, "B", map[string]string{BlueprintFile: "<a/>"})
			},
			want: false,
		},
		{
			name:  "empty",
			setup: func(t *testing.T, root string) {},
			want:  false,
		},
		{
			name: "files_only",
			setup: func(t *testing.T, root string) {
				require.NoError(t, os.WriteFile(filepath.Join(root, BlueprintFile), nil, 0o644))
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			tt.setup(t, root)

			got, err := IsValidLocation(root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := IsValidLocation(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.False(t, got, "a missing folder is not a library")
}

func TestDefaultLocation(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/home/engineer/.config")
	t.Setenv("HOME", "/home/engineer")
	t.Setenv("AppData", `C:\Users\engineer\AppData\Roaming`)

	loc, err := DefaultLocation()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(loc, filepath.Join("SpaceEngineers", "Blueprints", "local")), "unexpected location %q", loc)
}

func TestExistsRejectsPaths(t *testing.T) {
	lib := New(t.TempDir())
	for _, name := range []string{"", ".", "..", "a/b", `a\b`} {
		_, err := lib.Exists(name)
		assert.Error(t, err, "name %q should be rejected", name)
	}
}
