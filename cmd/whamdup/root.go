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

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/whamdup/cmd/whamdup/opts"
	"github.com/walteh/whamdup/pkg/config"
	"github.com/walteh/whamdup/pkg/log"
	"github.com/walteh/whamdup/pkg/prompt"
)

// rootFlags are the persistent flags shared by every command
type rootFlags struct {
	configFile      string
	envFile         string
	blueprintFolder string
	debug           bool
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "config file path (default: .whamdup.yaml, .whamdup.yml or .whamdup.hcl if present)")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "environment file to load")
	cmd.PersistentFlags().StringVarP(&flags.blueprintFolder, "blueprint-folder", "f", "", "folder holding the blueprints")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
}

// setupLogging puts a zerolog logger on ctx based on flags
func setupLogging(ctx context.Context, debug bool) context.Context {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

// initRootOpts loads configuration and fills in the shared options.
// Precedence is flags, then environment, then config file, then defaults.
func initRootOpts(ctx context.Context, cmd *cobra.Command, flags *rootFlags, o *opts.RootOpts) error {
	if err := config.LoadDotEnv(ctx, flags.envFile); err != nil {
		return err
	}

	path := flags.configFile
	if path == "" {
		found, err := config.Discover(".")
		if err != nil {
			return err
		}
		path = found
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(ctx, path)
		if err != nil {
			return errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}
	if cmd.Flags().Changed("blueprint-folder") {
		cfg.BlueprintFolder = flags.blueprintFolder
	}
	if err := cfg.Validate(); err != nil {
		return errors.Errorf("validating config: %w", err)
	}

	consoleLevel := zerolog.Disabled
	if flags.debug {
		consoleLevel = zerolog.DebugLevel
	}

	o.Config = cfg
	o.Console = log.New(cmd.OutOrStdout(), consoleLevel)
	o.Interactive = prompt.IsInteractive()
	if o.Interactive {
		o.Prompter = prompt.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())
	} else {
		o.Prompter = prompt.NonInteractive{}
	}

	zerolog.Ctx(ctx).Debug().
		Str("config", cfg.Location()).
		Str("settings", cfg.String()).
		Bool("interactive", o.Interactive).
		Msg("options ready")
	return nil
}
