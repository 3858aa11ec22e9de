// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package term

import "github.com/charmbracelet/glamour"

// RenderMarkdown renders markdown for the terminal. theme is a glamour
// style name; empty or "auto" picks one from the terminal background.
// Any rendering failure falls back to the raw text.
func RenderMarkdown(content, theme string, width int) string {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if theme != "" && theme != "auto" {
		opts = []glamour.TermRendererOption{glamour.WithStylePath(theme)}
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil || renderer == nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}

	return rendered
}
