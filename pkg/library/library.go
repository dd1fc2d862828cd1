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

package library

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Files of a blueprint folder.
const (
	BlueprintFile = "bp.sbc"
	CacheFile     = "bp.sbcB5"
	ThumbnailFile = "thumb.png"
)

// 📚 Library is a folder of blueprint folders, such as the game's local blueprints.
type Library struct {
	root string
}

// 🏭 New creates a library rooted at root
func New(root string) *Library {
	return &Library{root: filepath.Clean(root)}
}

// Root returns the library folder.
func (l *Library) Root() string {
	return l.root
}

// 🏠 DefaultLocation returns where the game keeps local blueprints for this user.
// The folder is not checked for existence.
func DefaultLocation() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Errorf("locating user config dir: %w", err)
	}
	return filepath.Join(dir, "SpaceEngineers", "Blueprints", "local"), nil
}

// 🔍 IsValidLocation reports whether root looks like a blueprint library: it has at
// least one sub folder and the first one holds a bp.sbc.
func IsValidLocation(root string) (bool, error) {
	entries, err := os.ReadDir(root)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, errors.Errorf("reading library folder: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := os.Stat(filepath.Join(root, entry.Name(), BlueprintFile))
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		if err != nil {
			return false, errors.Errorf("checking first blueprint: %w", err)
		}
		return !info.IsDir(), nil
	}

	return false, nil
}

// 📋 List returns the names of all blueprint folders, sorted.
func (l *Library) List(ctx context.Context) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(l.root), "*/"+BlueprintFile, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Errorf("listing blueprints in %s: %w", l.root, err)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, path.Dir(m))
	}
	slices.Sort(names)

	zerolog.Ctx(ctx).Debug().Str("root", l.root).Int("count", len(names)).Msg("listed blueprints")
	return names, nil
}

// 🎯 Match returns the blueprint names matching a glob pattern such as "Homing Missile *".
func (l *Library) Match(ctx context.Context, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Errorf("invalid pattern %q", pattern)
	}

	names, err := l.List(ctx)
	if err != nil {
		return nil, err
	}

	var matched []string
	for _, name := range names {
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return nil, errors.Errorf("matching %q: %w", pattern, err)
		}
		if ok {
			matched = append(matched, name)
		}
	}
	return matched, nil
}

// Exists reports whether the blueprint folder name already holds a bp.sbc.
func (l *Library) Exists(name string) (bool, error) {
	dir, err := l.dir(name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(filepath.Join(dir, BlueprintFile))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, errors.Errorf("checking %s: %w", name, err)
	}
	return true, nil
}

// dir returns the folder of blueprint name, refusing names that leave the library.
func (l *Library) dir(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", errors.Errorf("invalid blueprint name %q", name)
	}
	return filepath.Join(l.root, name), nil
}
