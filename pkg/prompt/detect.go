package prompt

import (
	"os"

	"golang.org/x/term"
)

// EnvNonInteractive forces non-interactive mode when set to 1.
const EnvNonInteractive = "WHAMDUP_NON_INTERACTIVE"

// IsInteractive reports whether a person can answer prompts: stdin and stdout are
// terminals and neither WHAMDUP_NON_INTERACTIVE=1 nor CI is set.
func IsInteractive() bool {
	if os.Getenv(EnvNonInteractive) == "1" || os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Detect returns a Console on the process terminal, or NonInteractive.
func Detect() Prompter {
	if IsInteractive() {
		return NewConsole(os.Stdin, os.Stdout)
	}
	return NonInteractive{}
}
