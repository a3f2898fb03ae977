package interview

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"lurnix/internal/interview"
	"lurnix/internal/ui/components"
	"lurnix/internal/ui/theme"
)

func (i *InterviewScreen) View(width, height int) string {
	if i.confirmingExit {
		return components.ModalFrame(
			theme.Title.Render("End the interview?")+"\n\n"+
				theme.Body.Render("Your progress so far will be lost.")+"\n\n"+
				theme.Hint.Render("Y to end, N to continue"),
			width, height)
	}

	cw := components.ContentWidth(width)
	var body string
	switch i.phase {
	case phaseSetup:
		body = i.viewSetup()
	case phaseGenerating:
		body = i.viewGenerating()
	case phaseActive:
		body = i.viewActive(cw)
	case phaseCompleted:
		return i.viewCompleted(width, height)
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(components.Card(lipgloss.NewStyle().Width(cw).Render(body), cw))
}

func (i *InterviewScreen) viewSetup() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Mock Interview"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Topic: " + i.title))
	b.WriteString("\n\n")

	if i.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(i.errMsg))
		b.WriteString("\n\n")
	}

	b.WriteString(setupRow("Difficulty", difficulties[i.difficulty], i.field == fieldDifficulty))
	b.WriteString("\n")
	b.WriteString(setupRow("Questions", fmt.Sprintf("%d", interview.QuestionCounts[i.countIdx]), i.field == fieldQuestions))
	b.WriteString("\n")

	audioValue := "off"
	if i.audio {
		audioValue = "on"
	}
	if !i.deps.Speech.Available() {
		audioValue = "unavailable"
	}
	b.WriteString(setupRow("Audio", audioValue, i.field == fieldAudio))
	b.WriteString("\n\n")

	b.WriteString(theme.Hint.Render("Questions are spoken aloud and never shown in advance."))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Enter to start"))
	return b.String()
}

func setupRow(label, value string, active bool) string {
	line := fmt.Sprintf("%-12s [%s]", label, value)
	if active {
		return theme.Selected.Render("▸ " + line)
	}
	return theme.Unselected.Render("  " + line)
}

func (i *InterviewScreen) viewGenerating() string {
	return theme.Title.Render("Preparing your interview...") + "\n\n" +
		theme.Hint.Render("Writing questions about "+i.title)
}

func (i *InterviewScreen) viewActive(cw int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Mock Interview"))
	b.WriteString("  ")
	b.WriteString(theme.Hint.Render(interview.FormatClock(i.session.Elapsed())))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", i.session.Index()+1, i.session.Total()),
		float64(i.session.ProgressPercent())/100, false, cw).View())
	b.WriteString("\n\n")

	if i.notice != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render("Using practice questions: " + i.notice))
		b.WriteString("\n\n")
	}

	if i.audio {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render("🔊 Listen to the interviewer..."))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Ctrl+R to hear the question again"))
	} else {
		// Audio off is the accessibility path: show the text instead.
		b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(i.session.Current().Question))
	}
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Render("Your answer:"))
	b.WriteString("\n")
	b.WriteString(i.answer.View())
	return b.String()
}

func (i *InterviewScreen) viewCompleted(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(theme.Title.Render("Interview complete"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%d questions · %s",
		i.session.Total(), interview.FormatClock(i.session.Elapsed()))))
	b.WriteString("\n")
	if i.savedPath != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("Transcript saved to " + i.savedPath))
		b.WriteString("\n")
	}
	if i.saveErr != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("Could not save transcript: " + i.saveErr))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	qStyle := lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true)
	aStyle := lipgloss.NewStyle().Width(cw).Foreground(theme.TextDim)
	sStyle := lipgloss.NewStyle().Width(cw).Foreground(theme.Secondary)

	var review strings.Builder
	for qi, q := range i.session.Questions() {
		review.WriteString(qStyle.Render(fmt.Sprintf("%d. %s", qi+1, q.Question)))
		review.WriteString("\n")
		answer := i.session.Answer(qi)
		if answer == "" {
			answer = "(no answer)"
		}
		review.WriteString(aStyle.Render("You: " + answer))
		review.WriteString("\n")
		review.WriteString(sStyle.Render("Sample: " + q.SampleAnswer))
		review.WriteString("\n\n")
	}

	head := b.String()
	avail := height - lipgloss.Height(head) - 2
	if avail < 3 {
		avail = 3
	}
	lines := strings.Split(strings.TrimRight(review.String(), "\n"), "\n")
	maxScroll := len(lines) - avail
	if maxScroll < 0 {
		maxScroll = 0
	}
	if i.reviewScroll > maxScroll {
		i.reviewScroll = maxScroll
	}
	end := i.reviewScroll + avail
	if end > len(lines) {
		end = len(lines)
	}
	b.WriteString(strings.Join(lines[i.reviewScroll:end], "\n"))

	return lipgloss.NewStyle().Width(width).PaddingLeft(2).PaddingTop(1).Render(b.String())
}
