// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

// Package term holds the small console helpers shared by the long-running
// operations: TTY detection and a message spinner.
package term

import (
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/theckman/yacspin"
)

// IsTTY reports whether stdout is an interactive terminal.
func IsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// StartSpinner starts a console spinner and returns a function for updating
// its message and another to stop it. Both are no-ops off a TTY.
func StartSpinner(prefix string) (update func(string), done func()) {
	update = func(string) {}
	done = func() {}

	if IsTTY() {
		spinner, err := yacspin.New(yacspin.Config{
			CharSet:         yacspin.CharSets[11],
			Frequency:       300 * time.Millisecond,
			Message:         "",
			Prefix:          prefix,
			Suffix:          " ",
			SuffixAutoColon: false,
		})
		if err != nil {
			return update, done
		}
		_ = spinner.Start()

		update = func(msg string) {
			spinner.Message(msg)
		}
		done = func() {
			_ = spinner.Stop()
		}
	}

	return update, done
}
