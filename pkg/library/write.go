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
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrExists is returned by WriteCopy when the copy folder already has a different
// bp.sbc and replacing it was not allowed.
var ErrExists = errors.Base("blueprint already exists")

// 📊 CopyStatus is the outcome of writing one copy.
type CopyStatus int

const (
	StatusUnknown   CopyStatus = iota
	StatusNew                  // folder had no bp.sbc
	StatusReplaced             // an older bp.sbc was removed
	StatusUnchanged            // bp.sbc already had the same bytes
)

// String returns a string representation of CopyStatus
func (s CopyStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusReplaced:
		return "replaced"
	case StatusUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// 📝 CopyRequest describes one copy to write into the library.
type CopyRequest struct {
	Name      string
	Data      []byte
	BOM       bool
	Thumbnail string // source thumb.png to copy, optional
	Replace   bool   // allow replacing an existing, different bp.sbc
}

// 💾 WriteCopy writes a blueprint folder.
//
// When an existing bp.sbc is replaced, the game's cache bp.sbcB5 and the old
// thumb.png are removed with it so the game rebuilds them.
func (l *Library) WriteCopy(ctx context.Context, req CopyRequest) (CopyStatus, error) {
	logger := zerolog.Ctx(ctx).With().Str("name", req.Name).Logger()

	dir, err := l.dir(req.Name)
	if err != nil {
		return StatusUnknown, err
	}
	target := filepath.Join(dir, BlueprintFile)

	content, err := encode(req.Data, req.BOM)
	if err != nil {
		return StatusUnknown, err
	}

	// read before anything is removed, the thumbnail may live in the target folder
	var thumb []byte
	if req.Thumbnail != "" {
		thumb, err = os.ReadFile(req.Thumbnail)
		if err != nil {
			return StatusUnknown, errors.Errorf("reading thumbnail: %w", err)
		}
	}

	status := StatusNew
	existing, err := os.ReadFile(target)
	switch {
	case err == nil:
		if bytes.Equal(existing, content) {
			logger.Debug().Msg("copy already up to date")
			return StatusUnchanged, nil
		}
		if !req.Replace {
			return StatusUnknown, errors.WithDetails(errors.Errorf("%w: %s", ErrExists, req.Name), "path", target)
		}
		for _, name := range []string{BlueprintFile, CacheFile, ThumbnailFile} {
			if err := os.Remove(filepath.Join(dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
				return StatusUnknown, errors.Errorf("removing old %s: %w", name, err)
			}
		}
		status = StatusReplaced
	case errors.Is(err, os.ErrNotExist):
	default:
		return StatusUnknown, errors.Errorf("reading existing copy: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return StatusUnknown, errors.Errorf("creating copy folder: %w", err)
	}

	if err := writeFileAtomic(target, content); err != nil {
		return StatusUnknown, err
	}

	if thumb != nil {
		if err := writeFileAtomic(filepath.Join(dir, ThumbnailFile), thumb); err != nil {
			return StatusUnknown, errors.Errorf("copying thumbnail: %w", err)
		}
	}

	logger.Debug().Stringer("status", status).Int("bytes", len(content)).Msg("wrote copy")
	return status, nil
}

// writeFileAtomic writes content next to path and renames it into place.
func writeFileAtomic(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Errorf("setting temp file mode: %w", err)
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("renaming temp file: %w", err)
	}
	return nil
}
