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

package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestParserRegistration tests the parser registration system
func TestParserRegistration(t *testing.T) {
	originalParsers := parsers
	defer func() {
		parsers = originalParsers
	}()

	parsers = nil

	mockParser := &struct {
		Parser
		canParse bool
	}{
		canParse: true,
	}

	Register(mockParser)
	assert.Len(t, parsers, 1, "should have 1 parser registered")
	assert.Equal(t, mockParser, parsers[0], "registered parser should match")
}

// 🧪 TestParserSelection tests parser selection by file extension
func TestParserSelection(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Parser
	}{
		{name: "yaml_file", filename: ".whamdup.yaml", want: &YAMLParser{}},
		{name: "yml_file", filename: ".whamdup.yml", want: &YAMLParser{}},
		{name: "hcl_file", filename: ".whamdup.hcl", want: &HCLParser{}},
		{name: "unknown_extension", filename: ".whamdup.json", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got, "should return nil for unknown extension")
				return
			}
			require.NotNil(t, got, "should return a parser")
			assert.IsType(t, tt.want, got, "should return correct parser type")
		})
	}
}

// 🧪 TestHCLParsing tests HCL config parsing
func TestHCLParsing(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid_hcl",
			config: `
blueprint_folder = "/games/se/local"
blueprint        = "Homing Missile 1"
first_index      = 2
num_copies       = 4
force            = true
async            = true
workers          = 2
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/games/se/local", cfg.BlueprintFolder)
				assert.Equal(t, "Homing Missile 1", cfg.Blueprint)
				assert.Equal(t, 2, cfg.FirstIndex)
				assert.Equal(t, 4, cfg.NumCopies)
				assert.True(t, cfg.Force)
				assert.True(t, cfg.Async)
				assert.Equal(t, 2, cfg.Workers)
			},
		},
		{
			name:   "default_folder_variable",
			config: `blueprint_folder = "${default_blueprint_folder}/missiles"`,
			check: func(t *testing.T, cfg *Config) {
				assert.Contains(t, cfg.BlueprintFolder, "missiles")
			},
		},
		{
			name: "invalid_hcl_syntax",
			config: `
blueprint =
`,
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name: "invalid_block_type",
			config: `
unknown_block {
  foo = "bar"
}`,
			wantErr:     true,
			errContains: "decoding HCL",
		},
		{
			name:        "wrong_type",
			config:      `num_copies = "many"`,
			wantErr:     true,
			errContains: "decoding HCL",
		},
	}

	parser := &HCLParser{}
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parser.Parse(ctx, []byte(tt.config))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

// 🧪 TestValidateDefaults tests default filling and path normalization
func TestValidateDefaults(t *testing.T) {
	cfg := &Config{BlueprintFolder: "/games/./se//local/"}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "/games/se/local", cfg.BlueprintFolder, "folder should be cleaned")
	assert.Equal(t, DefaultWorkers, cfg.Workers, "workers should be defaulted")
}
