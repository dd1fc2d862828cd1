package commands

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/whamdup/cmd/whamdup/opts"
	"github.com/walteh/whamdup/pkg/library"
	"github.com/walteh/whamdup/pkg/operation"
)

// openLibrary resolves the blueprint folder. Without a terminal there is nobody to
// ask, so the game's default location is used when none is configured.
func openLibrary(ctx context.Context, o *opts.RootOpts) (*library.Library, error) {
	folder := o.Config.BlueprintFolder
	if folder == "" && !o.Interactive {
		def, err := library.DefaultLocation()
		if err != nil {
			return nil, errors.Errorf("no blueprint folder configured: %w", err)
		}
		folder = def
	}
	return operation.ResolveLibrary(ctx, o.Prompter, o.Console, folder)
}
