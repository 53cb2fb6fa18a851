// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/urfave/cli/v3"

	"github.com/drvctl/drvctl/internal/config"
)

// Render writes the report as a three-column table honoring the color,
// titles and padding options of the command. Output is written to w. If w
// is nil, os.Stdout is used.
func Render(r Report, cmd *cli.Command, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	if r.Identical() {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if cmd.Bool("color") {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	var rows [][]string
	for _, field := range r.Fields {
		rows = append(rows, []string{field.Field, field.Left, field.Right})
	}

	pad := cmd.Int("padding")
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if cmd.Bool("titles") {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers("field", "left", "right").BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	fmt.Fprintln(w, r.Summary())
}

// getColors returns configured color values for table rendering. Each color
// is selected based on terminal background color and brightness so that we
// can make sure output is reasonably visible for all(?) terminal themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// Use the explicit color if found in the config and leave it up to the
	// user to choose appropriate colors for their theme. If not found, pick
	// a reasonable default based on terminal background.
	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
