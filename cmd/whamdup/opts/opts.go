package opts

import (
	"github.com/walteh/whamdup/pkg/config"
	"github.com/walteh/whamdup/pkg/log"
	"github.com/walteh/whamdup/pkg/prompt"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config      *config.Config
	Console     *log.Logger
	Prompter    prompt.Prompter
	Interactive bool
}
