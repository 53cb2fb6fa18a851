// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
)

// SelectDerivations lets the user pick exactly two derivation files from the
// given paths. It returns nil if the selection was aborted.
func SelectDerivations(paths []string) []string {
	p := tea.NewProgram(model{items: paths})
	m, _ := p.Run()
	return m.(model).selected
}

type model struct {
	items    []string
	cursor   int
	selected []string
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "w":
			return m, tea.WindowSize()
		case "q", "esc":
			m.selected = nil
			return m, tea.Quit
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case " ":
			if contains(m.selected, m.items[m.cursor]) {
				// Remove item from selected
				for i, v := range m.selected {
					if v == m.items[m.cursor] {
						m.selected = append(m.selected[:i], m.selected[i+1:]...)
						break
					}
				}
			} else if len(m.selected) < 2 {
				m.selected = append(m.selected, m.items[m.cursor])
			}
		case "enter":
			if len(m.selected) == 2 {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	s := "Select two derivations:\n\n"
	for i, path := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		if contains(m.selected, path) {
			mark = "x"
		}

		s += fmt.Sprintf("%s [%s] %s\n", cursor, mark, filepath.Base(path))
	}
	return s + "\nSPACE: toggle, ENTER: go, Q/ESCAPE: quit\n"
}

func contains(paths []string, path string) bool {
	for _, p := range paths {
		if p == path {
			return true
		}
	}
	return false
}
