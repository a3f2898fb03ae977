// Package home implements the course overview screen: the module and
// lesson tree the learner navigates after signing in.
package home

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"lurnix/internal/api"
	"lurnix/internal/course"
	"lurnix/internal/profile"
	"lurnix/internal/router"
	"lurnix/internal/screen"
	"lurnix/internal/ui/layout"
	"lurnix/internal/ui/theme"
)

type courseLoadedMsg struct {
	course *course.Course
	err    error
}

// rowKind distinguishes tree rows under the cursor.
type rowKind int

const (
	rowModule rowKind = iota
	rowAsset
	rowPlaceholder
)

type treeRow struct {
	kind        rowKind
	moduleIndex int
	assetIndex  int
}

// Deps are the collaborators the home screen needs.
type Deps struct {
	Client   *api.Client
	CourseID string
	Profile  profile.Profile
	Session  SessionStore
	// OpenAsset builds the lesson viewer for a selection.
	OpenAsset func(c *course.Course, sel course.Selection) screen.Screen
	// EditProfile builds the preference update form.
	EditProfile func(p profile.Profile) screen.Screen
	// SignIn builds the login screen, used after logout.
	SignIn func() screen.Screen
}

// SessionStore is the slice of the session layer home needs.
type SessionStore interface {
	Clear() error
}

// HomeScreen shows the course tree.
type HomeScreen struct {
	deps     Deps
	course   *course.Course
	expanded map[int]bool
	rows     []treeRow
	cursor   int
	loading  bool
	errMsg   string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen. The course loads asynchronously on Init.
func New(deps Deps) *HomeScreen {
	return &HomeScreen{
		deps:     deps,
		expanded: map[int]bool{},
		loading:  true,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadCourse()
}

func (h *HomeScreen) loadCourse() tea.Cmd {
	client := h.deps.Client
	courseID := h.deps.CourseID
	return func() tea.Msg {
		c, err := client.GetCourseAssets(context.Background(), courseID)
		return courseLoadedMsg{course: c, err: err}
	}
}

func (h *HomeScreen) Title() string { return "Courses" }

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.errMsg != "" {
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "U", Description: "Preferences"},
		{Key: "X", Description: "Sign out"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case courseLoadedMsg:
		h.loading = false
		if msg.err != nil {
			h.errMsg = msg.err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.course = msg.course
		// First module opens by default so the screen is not a wall of
		// collapsed headers.
		if len(h.course.Modules) > 0 {
			h.expanded[0] = true
		}
		h.rebuildRows()
		return h, nil

	case tea.KeyMsg:
		return h.handleKey(msg)
	}
	return h, nil
}

func (h *HomeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if h.errMsg != "" {
		if key == "r" || key == "R" {
			h.loading = true
			h.errMsg = ""
			return h, h.loadCourse()
		}
		return h, nil
	}

	switch key {
	case "u", "U":
		next := h.deps.EditProfile(h.deps.Profile)
		return h, func() tea.Msg { return router.PushScreenMsg{Screen: next} }

	case "x", "X":
		if err := h.deps.Session.Clear(); err != nil {
			h.errMsg = "Sign out failed: " + err.Error()
			return h, nil
		}
		next := h.deps.SignIn()
		return h, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}

	if h.course == nil {
		return h, nil
	}

	switch key {
	case "up", "k":
		h.moveCursor(-1)
	case "down", "j":
		h.moveCursor(1)
	case "enter", "right":
		return h.activate()
	case "left":
		// Collapse the module the cursor is in.
		if row := h.currentRow(); row != nil {
			h.expanded[row.moduleIndex] = false
			h.rebuildRows()
			h.cursorToModule(row.moduleIndex)
		}
	}
	return h, nil
}

func (h *HomeScreen) activate() (screen.Screen, tea.Cmd) {
	row := h.currentRow()
	if row == nil {
		return h, nil
	}

	switch row.kind {
	case rowModule:
		h.expanded[row.moduleIndex] = !h.expanded[row.moduleIndex]
		h.rebuildRows()

	case rowAsset:
		sel, ok := h.course.Select(row.moduleIndex, row.assetIndex)
		if !ok {
			return h, nil
		}
		next := h.deps.OpenAsset(h.course, sel)
		return h, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
	return h, nil
}

func (h *HomeScreen) currentRow() *treeRow {
	if h.cursor < 0 || h.cursor >= len(h.rows) {
		return nil
	}
	return &h.rows[h.cursor]
}

// rebuildRows flattens the tree into the visible row list.
func (h *HomeScreen) rebuildRows() {
	h.rows = h.rows[:0]
	for mi, m := range h.course.Modules {
		h.rows = append(h.rows, treeRow{kind: rowModule, moduleIndex: mi})
		if !h.expanded[mi] {
			continue
		}
		if len(m.Assets) == 0 {
			h.rows = append(h.rows, treeRow{kind: rowPlaceholder, moduleIndex: mi})
			continue
		}
		for ai := range m.Assets {
			h.rows = append(h.rows, treeRow{kind: rowAsset, moduleIndex: mi, assetIndex: ai})
		}
	}
	if h.cursor >= len(h.rows) {
		h.cursor = len(h.rows) - 1
	}
	if h.cursor < 0 {
		h.cursor = 0
	}
}

// moveCursor steps the cursor, skipping placeholder rows.
func (h *HomeScreen) moveCursor(dir int) {
	i := h.cursor
	for {
		i += dir
		if i < 0 || i >= len(h.rows) {
			return
		}
		if h.rows[i].kind != rowPlaceholder {
			h.cursor = i
			return
		}
	}
}

func (h *HomeScreen) cursorToModule(moduleIndex int) {
	for i, row := range h.rows {
		if row.kind == rowModule && row.moduleIndex == moduleIndex {
			h.cursor = i
			return
		}
	}
}

func (h *HomeScreen) View(width, height int) string {
	if h.loading {
		return centered(width, height,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Loading course content..."))
	}
	if h.errMsg != "" {
		body := lipgloss.NewStyle().Foreground(theme.Error).Render("Could not load the course.") +
			"\n\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.errMsg) +
			"\n\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render("Press R to retry.")
		return centered(width, height, body)
	}
	if h.course == nil || len(h.course.Modules) == 0 {
		return centered(width, height,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("This course has no modules yet."))
	}
	return h.renderTree(width, height)
}

func centered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
