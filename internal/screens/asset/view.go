package asset

import (
	"strings"

	"charm.land/lipgloss/v2"

	"lurnix/internal/ui/components"
	"lurnix/internal/ui/theme"
)

func (a *AssetScreen) View(width, height int) string {
	if a.pickingLanguage {
		return a.viewLanguagePicker(width, height)
	}

	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Render(a.sel.Asset.Name))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(a.sel.Module.Code + " · " + a.sel.Module.Name))
	b.WriteString("\n")
	b.WriteString(a.variantBadge())
	b.WriteString("\n\n")

	for _, line := range a.noticeLines() {
		b.WriteString(line)
		b.WriteString("\n")
	}

	body := components.HTMLToText(a.activeContent())
	if strings.TrimSpace(body) == "" {
		body = "This lesson has no content yet."
	}
	wrapped := lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(body)

	// Scroll window over the wrapped body. Everything above it is a
	// fixed-height header region.
	head := b.String()
	avail := height - lipgloss.Height(head) - 1
	if avail < 3 {
		avail = 3
	}
	lines := strings.Split(wrapped, "\n")
	maxScroll := len(lines) - avail
	if maxScroll < 0 {
		maxScroll = 0
	}
	if a.scroll > maxScroll {
		a.scroll = maxScroll
	}
	end := a.scroll + avail
	if end > len(lines) {
		end = len(lines)
	}
	b.WriteString(strings.Join(lines[a.scroll:end], "\n"))

	if maxScroll > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("↑↓ scroll"))
	}

	return lipgloss.NewStyle().Width(width).PaddingLeft(2).PaddingTop(1).Render(b.String())
}

// variantBadge labels which content version is on display, with the
// busy states taking priority over the settled ones.
func (a *AssetScreen) variantBadge() string {
	busy := lipgloss.NewStyle().Foreground(theme.Secondary).Italic(true)
	switch {
	case a.personalizing:
		return busy.Render("Personalizing for you...")
	case a.translating:
		return busy.Render("Translating...")
	case a.resolvingQuiz:
		return busy.Render("Preparing the module quiz...")
	}

	badge := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	switch a.Variant() {
	case VariantPersonalized:
		return badge.Render("Personalized for you")
	case VariantTranslated:
		return badge.Render("Translated · " + a.language)
	default:
		return theme.Hint.Render("Original · " + a.originalLanguage())
	}
}

func (a *AssetScreen) noticeLines() []string {
	warn := lipgloss.NewStyle().Foreground(theme.Accent)
	fail := lipgloss.NewStyle().Foreground(theme.Error)
	dismiss := theme.Hint.Render(" (D to dismiss)")

	var lines []string
	if a.notice != "" {
		lines = append(lines, warn.Render(a.notice)+dismiss, "")
	}
	if a.translateErr != "" {
		lines = append(lines, fail.Render(a.translateErr)+dismiss, "")
	}
	if a.quizErr != "" {
		lines = append(lines, fail.Render("Could not open the quiz: "+a.quizErr)+dismiss, "")
	}
	return lines
}

func (a *AssetScreen) viewLanguagePicker(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Read this lesson in..."))
	b.WriteString("\n\n")

	options := append([]string{a.originalLanguage() + " (original)"}, languages...)
	for i, opt := range options {
		if i == a.languageCursor {
			b.WriteString(theme.Selected.Render("▸ " + opt))
		} else {
			b.WriteString(theme.Unselected.Render("  " + opt))
		}
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(components.Card(b.String(), components.ContentWidth(width)))
}
