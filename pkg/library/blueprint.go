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
	"golang.org/x/text/encoding/unicode"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// 📄 Blueprint is the content of one blueprint folder.
type Blueprint struct {
	Name string
	// Data is the bp.sbc document without a byte order mark.
	Data []byte
	// BOM records whether bp.sbc started with a UTF-8 byte order mark.
	BOM bool
	// Thumbnail is the path of thumb.png, or "" when the folder has none.
	Thumbnail string
}

// 📖 Load reads blueprint name from the library.
func (l *Library) Load(ctx context.Context, name string) (*Blueprint, error) {
	dir, err := l.dir(name)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(filepath.Join(dir, BlueprintFile))
	if err != nil {
		return nil, errors.Errorf("reading blueprint %q: %w", name, err)
	}

	bp := &Blueprint{Name: name, Data: raw}
	if bytes.HasPrefix(raw, utf8BOM) {
		data, err := unicode.UTF8BOM.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, errors.Errorf("decoding blueprint %q: %w", name, err)
		}
		bp.Data = data
		bp.BOM = true
	}

	thumb := filepath.Join(dir, ThumbnailFile)
	if _, err := os.Stat(thumb); err == nil {
		bp.Thumbnail = thumb
	}

	zerolog.Ctx(ctx).Debug().
		Str("name", name).
		Int("bytes", len(bp.Data)).
		Bool("bom", bp.BOM).
		Bool("thumbnail", bp.Thumbnail != "").
		Msg("loaded blueprint")

	return bp, nil
}

// encode returns data as it is stored on disk.
func encode(data []byte, bom bool) ([]byte, error) {
	if !bom {
		return data, nil
	}
	out, err := unicode.UTF8BOM.NewEncoder().Bytes(data)
	if err != nil {
		return nil, errors.Errorf("encoding with byte order mark: %w", err)
	}
	return out, nil
}
