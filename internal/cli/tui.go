package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/worldsvg/pkg/render/layers"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// LayerPickerModel is the bubbletea model for choosing which layers to
// write. All layers start selected.
type LayerPickerModel struct {
	Layers    []layers.Summary
	Cursor    int
	Selected  map[string]bool
	Confirmed bool
}

// NewLayerPickerModel creates a picker with every layer selected.
func NewLayerPickerModel(summaries []layers.Summary) LayerPickerModel {
	sel := make(map[string]bool, len(summaries))
	for _, s := range summaries {
		sel[s.Name] = true
	}
	return LayerPickerModel{Layers: summaries, Selected: sel}
}

func (m LayerPickerModel) Init() tea.Cmd {
	return nil
}

func (m LayerPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Layers)-1 {
			m.Cursor++
		}
	case " ", "x":
		if len(m.Layers) > 0 {
			name := m.Layers[m.Cursor].Name
			m.Selected[name] = !m.Selected[name]
		}
	case "a":
		all := len(m.Chosen()) < len(m.Layers)
		for _, s := range m.Layers {
			m.Selected[s.Name] = all
		}
	case "enter":
		m.Confirmed = true
		return m, tea.Quit
	}
	return m, nil
}

// Chosen returns the selected layer names in display order.
func (m LayerPickerModel) Chosen() []string {
	var names []string
	for _, s := range m.Layers {
		if m.Selected[s.Name] {
			names = append(names, s.Name)
		}
	}
	return names
}

func (m LayerPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Layers"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ write  q quit"))
	b.WriteString("\n\n")

	for i, s := range m.Layers {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		box := "[ ]"
		if m.Selected[s.Name] {
			box = StyleSuccess.Render("[x]")
		}

		line := fmt.Sprintf("%s%s %-16s %s", cursor, box, s.Name, listDimStyle.Render(fmt.Sprintf("%d elements", s.Elements)))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d selected]", len(m.Chosen()), len(m.Layers))))
	return b.String()
}

// pickLayers runs the picker and returns the chosen layers, or nil when the
// user quits without confirming.
func pickLayers(ctx context.Context, summaries []layers.Summary) ([]string, error) {
	final, err := tea.NewProgram(NewLayerPickerModel(summaries), tea.WithContext(ctx)).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(LayerPickerModel)
	if !ok || !m.Confirmed {
		return nil, nil
	}
	return m.Chosen(), nil
}

// layerTable renders layer summaries as a bordered table.
func layerTable(summaries []layers.Summary) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		rows[i] = []string{s.Name, fmt.Sprintf("%d", s.Elements), s.File}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Layer", "Elements", "File").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 1 {
				return base.Foreground(colorCyan).Align(lipgloss.Right)
			}
			if row >= 0 && row < len(summaries) && summaries[row].Name == layers.Composite {
				return base.Foreground(colorGreen)
			}
			return base
		})
	return t.Render()
}
