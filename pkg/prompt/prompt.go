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

package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrQuit is returned when the user answers q or quit, or input ends.
	ErrQuit = errors.Base("quit")

	// ErrNotInteractive is returned by NonInteractive for every question.
	ErrNotInteractive = errors.Base("input required but not running interactively")
)

// 💬 Prompter asks the user for the values a run still needs.
type Prompter interface {
	// Text asks for a line of text; an empty answer yields def.
	Text(ctx context.Context, msg, def string) (string, error)
	// Number asks for an integer in [min, max].
	Number(ctx context.Context, msg string, min, max int) (int, error)
	// Choose shows items as a numbered table and returns the index picked.
	Choose(ctx context.Context, msg string, items []string) (int, error)
	// Confirm asks a yes/no question; an empty answer is no.
	Confirm(ctx context.Context, msg string) (bool, error)
}

// 🖥️ Console is a line based Prompter.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

var _ Prompter = (*Console)(nil)

// 🏭 NewConsole creates a console reading answers from in and writing to out
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// ask prints msg and returns the trimmed answer.
func (c *Console) ask(ctx context.Context, msg string) (string, error) {
	fmt.Fprint(c.out, pterm.FgCyan.Sprint("? ")+msg+" ")

	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		fmt.Fprintln(c.out)
		if errors.Is(err, io.EOF) {
			return "", errors.Errorf("%w: end of input", ErrQuit)
		}
		return "", errors.Errorf("reading answer: %w", err)
	}

	answer := strings.TrimSpace(line)
	zerolog.Ctx(ctx).Debug().Str("question", msg).Str("answer", answer).Msg("prompt answered")

	switch strings.ToLower(answer) {
	case "q", "quit":
		return "", ErrQuit
	}
	return answer, nil
}

func (c *Console) complain(format string, args ...any) {
	fmt.Fprint(c.out, pterm.Error.Sprintfln(format, args...))
}

// 📝 Text asks for a line of text
func (c *Console) Text(ctx context.Context, msg, def string) (string, error) {
	if def != "" {
		msg = fmt.Sprintf("%s [%s]", msg, def)
	}
	for {
		answer, err := c.ask(ctx, msg+":")
		if err != nil {
			return "", err
		}
		if answer == "" {
			answer = def
		}
		if answer != "" {
			return answer, nil
		}
		c.complain("please enter a value")
	}
}

// 🔢 Number asks for an integer in [min, max]
func (c *Console) Number(ctx context.Context, msg string, min, max int) (int, error) {
	for {
		answer, err := c.ask(ctx, fmt.Sprintf("%s (%d-%d):", msg, min, max))
		if err != nil {
			return 0, err
		}
		n, ok := parseNumber(answer)
		switch {
		case !ok:
			c.complain("please enter digits only")
		case n < min || n > max:
			c.complain("please enter a number from %d to %d", min, max)
		default:
			return n, nil
		}
	}
}

// 📋 Choose shows items as a numbered table and returns the index picked
func (c *Console) Choose(ctx context.Context, msg string, items []string) (int, error) {
	if len(items) == 0 {
		return 0, errors.Errorf("nothing to choose from")
	}

	data := pterm.TableData{{"#", "Name"}}
	for i, item := range items {
		data = append(data, []string{strconv.Itoa(i + 1), item})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return 0, errors.Errorf("rendering choices: %w", err)
	}
	fmt.Fprintln(c.out, table)

	for {
		answer, err := c.ask(ctx, fmt.Sprintf("%s (1-%d):", msg, len(items)))
		if err != nil {
			return 0, err
		}
		for i, item := range items {
			if answer == item {
				return i, nil
			}
		}
		n, ok := parseNumber(answer)
		switch {
		case !ok:
			c.complain("please enter the number of an entry")
		case n < 1 || n > len(items):
			c.complain("please enter a number from %d to %d", 1, len(items))
		default:
			return n - 1, nil
		}
	}
}

// ✅ Confirm asks a yes/no question
func (c *Console) Confirm(ctx context.Context, msg string) (bool, error) {
	for {
		answer, err := c.ask(ctx, msg+" [y/N]:")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		}
		c.complain("please answer y or n")
	}
}

// parseNumber accepts only ASCII digits.
func parseNumber(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// 🚫 NonInteractive fails every question, for runs without a terminal.
type NonInteractive struct{}

var _ Prompter = NonInteractive{}

func (NonInteractive) Text(ctx context.Context, msg, def string) (string, error) {
	return "", errors.Errorf("%w: %s", ErrNotInteractive, msg)
}

func (NonInteractive) Number(ctx context.Context, msg string, min, max int) (int, error) {
	return 0, errors.Errorf("%w: %s", ErrNotInteractive, msg)
}

func (NonInteractive) Choose(ctx context.Context, msg string, items []string) (int, error) {
	return 0, errors.Errorf("%w: %s", ErrNotInteractive, msg)
}

func (NonInteractive) Confirm(ctx context.Context, msg string) (bool, error) {
	return false, errors.Errorf("%w: %s", ErrNotInteractive, msg)
}
