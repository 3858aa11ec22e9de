// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package main

import (
	"os"

	"github.com/dndtiles/dndtiles/internal/cli"
)

func main() {
	if err := cli.Execute(os.Args[1:]); err != nil {
		cli.PrintError(err)
		os.Exit(1)
	}
}
