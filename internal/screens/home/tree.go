package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"lurnix/internal/ui/theme"
)

// renderTree draws the module/lesson tree with a scrolling window
// around the cursor.
func (h *HomeScreen) renderTree(width, height int) string {
	var b strings.Builder

	greeting := fmt.Sprintf("  Welcome back, %s. Pick a lesson to continue.", h.deps.Profile.Name)
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(greeting))
	b.WriteString("\n\n")

	// Reserve the greeting lines, show a window of rows around the cursor.
	visible := height - 3
	if visible < 1 {
		visible = 1
	}
	start := 0
	if h.cursor >= visible {
		start = h.cursor - visible + 1
	}
	end := start + visible
	if end > len(h.rows) {
		end = len(h.rows)
	}

	for i := start; i < end; i++ {
		b.WriteString(h.renderRow(h.rows[i], i == h.cursor))
		b.WriteString("\n")
	}

	return b.String()
}

func (h *HomeScreen) renderRow(row treeRow, selected bool) string {
	switch row.kind {
	case rowModule:
		m := h.course.Modules[row.moduleIndex]
		marker := "▸"
		if h.expanded[row.moduleIndex] {
			marker = "▾"
		}
		line := fmt.Sprintf("  %s %s  %s", marker, m.Code, m.Name)
		if selected {
			return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line)
		}
		return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(line)

	case rowAsset:
		a := h.course.Modules[row.moduleIndex].Assets[row.assetIndex]
		prefix := "      "
		if selected {
			prefix = "    ▸ "
		}
		line := prefix + a.Name
		if selected {
			return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line)
		}
		return lipgloss.NewStyle().Foreground(theme.Text).Render(line)

	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("      (no lessons in this module yet)")
	}
}
