// Package asset implements the lesson viewer: original content plus
// on-demand personalized and translated variants, with navigation to
// the next lesson or the module quiz.
package asset

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"lurnix/internal/api"
	"lurnix/internal/course"
	"lurnix/internal/profile"
	"lurnix/internal/quiz"
	"lurnix/internal/router"
	"lurnix/internal/screen"
	"lurnix/internal/ui/layout"
)

// Variant identifies which content version is currently displayed.
// Precedence when several exist: personalized, then translated, then
// the original.
type Variant int

const (
	VariantOriginal Variant = iota
	VariantTranslated
	VariantPersonalized
)

// languages offered by the translation selector. The first entry
// always maps back to the asset's own language and issues no request.
var languages = []string{"Hindi", "Tamil", "Telugu", "Bengali", "Marathi"}

type personalizedMsg struct {
	token int
	resp  *api.PersonalizedAssetResponse
	err   error
}

type translatedMsg struct {
	token    int
	language string
	resp     *api.TranslatedAssetResponse
	err      error
}

type quizResolvedMsg struct {
	token int
	quiz  *quiz.Quiz
	err   error
}

// Deps are the collaborators the viewer needs.
type Deps struct {
	Client  *api.Client
	Profile profile.Profile
	// OpenQuiz builds the quiz popup for a resolved module quiz.
	OpenQuiz func(q quiz.Quiz, moduleName string) screen.Screen
	// OpenInterview builds the mock-interview screen seeded with the
	// lesson currently on display.
	OpenInterview func(topic, title, content string) screen.Screen
}

// AssetScreen displays one lesson and its variants.
type AssetScreen struct {
	deps   Deps
	course *course.Course
	sel    course.Selection

	personalized string
	translated   string
	language     string

	// Request tokens, one per async slot. A response is applied only
	// when its token still matches; anything older is stale.
	personalizeToken int
	translateToken   int
	quizToken        int

	personalizing bool
	translating   bool
	resolvingQuiz bool

	notice       string
	translateErr string
	quizErr      string

	pickingLanguage bool
	languageCursor  int

	scroll int
}

var _ screen.Screen = (*AssetScreen)(nil)
var _ screen.KeyHintProvider = (*AssetScreen)(nil)

// New creates a viewer for the selected asset.
func New(deps Deps, c *course.Course, sel course.Selection) *AssetScreen {
	return &AssetScreen{deps: deps, course: c, sel: sel}
}

func (a *AssetScreen) Init() tea.Cmd { return nil }

func (a *AssetScreen) Title() string { return a.sel.Asset.Name }

func (a *AssetScreen) KeyHints() []layout.KeyHint {
	if a.pickingLanguage {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Language"},
			{Key: "Enter", Description: "Translate"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	nextLabel := "Next lesson"
	if a.sel.LastInModule {
		nextLabel = "Module quiz"
	}
	return []layout.KeyHint{
		{Key: "P", Description: "Personalize"},
		{Key: "T", Description: "Translate"},
		{Key: "O", Description: "Original"},
		{Key: "N", Description: nextLabel},
		{Key: "I", Description: "Interview"},
		{Key: "Esc", Description: "Back"},
	}
}

// Variant reports which content version is on display.
func (a *AssetScreen) Variant() Variant {
	switch {
	case a.personalized != "":
		return VariantPersonalized
	case a.translated != "":
		return VariantTranslated
	default:
		return VariantOriginal
	}
}

// activeContent is the raw content of the displayed variant.
func (a *AssetScreen) activeContent() string {
	switch a.Variant() {
	case VariantPersonalized:
		return a.personalized
	case VariantTranslated:
		return a.translated
	default:
		return a.sel.Asset.Content
	}
}

// setSelection swaps the viewer to a new asset. Variants belong to a
// single visit and never carry over.
func (a *AssetScreen) setSelection(sel course.Selection) {
	a.sel = sel
	a.personalized = ""
	a.translated = ""
	a.language = ""
	a.notice = ""
	a.translateErr = ""
	a.quizErr = ""
	a.scroll = 0
	a.personalizing = false
	a.translating = false
	a.resolvingQuiz = false
	// Bump every token so in-flight responses for the previous asset
	// are discarded on arrival.
	a.personalizeToken++
	a.translateToken++
	a.quizToken++
}

func (a *AssetScreen) personalize() tea.Cmd {
	if a.sel.Asset.Code == "" {
		a.notice = "This lesson has no content code, so it cannot be personalized."
		return nil
	}
	a.personalizeToken++
	token := a.personalizeToken
	a.personalizing = true
	a.notice = ""

	client := a.deps.Client
	code := a.sel.Asset.Code
	p := a.deps.Profile
	return func() tea.Msg {
		resp, err := client.GetPersonalizedAsset(context.Background(), code, p.Domain, p.Hobbies, p.LearningStyle)
		return personalizedMsg{token: token, resp: resp, err: err}
	}
}

func (a *AssetScreen) translate(language string) tea.Cmd {
	a.translateToken++
	token := a.translateToken
	a.translating = true
	a.translateErr = ""

	client := a.deps.Client
	code := a.sel.Asset.Code
	return func() tea.Msg {
		resp, err := client.TranslateAsset(context.Background(), code, language)
		return translatedMsg{token: token, language: language, resp: resp, err: err}
	}
}

// resolveQuiz fetches the module's stored quizzes, generating them
// first when none exist yet.
func (a *AssetScreen) resolveQuiz() tea.Cmd {
	a.quizToken++
	token := a.quizToken
	a.resolvingQuiz = true
	a.quizErr = ""

	client := a.deps.Client
	courseID := a.course.ID
	moduleCode := a.sel.Module.Code
	return func() tea.Msg {
		ctx := context.Background()
		list, err := client.GetQuizzesByCourse(ctx, courseID, moduleCode, 1, 1)
		if err != nil {
			return quizResolvedMsg{token: token, err: err}
		}
		if len(list.Quizzes) > 0 {
			q, ok := firstUsable(list.Quizzes)
			if !ok {
				return quizResolvedMsg{token: token, err: fmt.Errorf("no quiz available for module %s", moduleCode)}
			}
			return quizResolvedMsg{token: token, quiz: q}
		}

		gen, err := client.GenerateQuizzes(ctx, api.GenerateQuizzesRequest{
			CourseID:     courseID,
			ModuleCode:   moduleCode,
			NumQuestions: 5,
			Difficulty:   "medium",
		})
		if err != nil {
			return quizResolvedMsg{token: token, err: err}
		}
		if q, ok := firstUsable(gen.GeneratedQuizzes); ok {
			return quizResolvedMsg{token: token, quiz: q}
		}
		if !gen.Success && len(gen.Errors) > 0 {
			return quizResolvedMsg{token: token, err: fmt.Errorf("quiz generation: %s", gen.Errors[0])}
		}

		// Generation reported success without returning the quizzes
		// inline, so fetch again.
		list, err = client.GetQuizzesByCourse(ctx, courseID, moduleCode, 1, 1)
		if err != nil {
			return quizResolvedMsg{token: token, err: err}
		}
		q, ok := firstUsable(list.Quizzes)
		if !ok {
			return quizResolvedMsg{token: token, err: fmt.Errorf("no quiz available for module %s", moduleCode)}
		}
		return quizResolvedMsg{token: token, quiz: q}
	}
}

// firstUsable returns the first quiz that actually has questions; the
// backend can hold a stored quiz whose question list is empty.
func firstUsable(quizzes []quiz.Quiz) (*quiz.Quiz, bool) {
	for i := range quizzes {
		if len(quizzes[i].Questions) > 0 {
			return &quizzes[i], true
		}
	}
	return nil, false
}

func (a *AssetScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case personalizedMsg:
		if msg.token != a.personalizeToken {
			return a, nil
		}
		a.personalizing = false
		if msg.err != nil {
			a.notice = "Personalization is unavailable right now: " + msg.err.Error()
			return a, nil
		}
		if !msg.resp.Displayable() {
			a.notice = "No personalized version exists for your preferences yet."
			return a, nil
		}
		a.personalized = msg.resp.Asset.Content
		a.scroll = 0
		return a, nil

	case translatedMsg:
		if msg.token != a.translateToken {
			return a, nil
		}
		a.translating = false
		if msg.err != nil {
			a.translateErr = "Translation failed: " + msg.err.Error()
			a.language = ""
			return a, nil
		}
		a.translated = msg.resp.Asset.Content
		a.language = msg.language
		a.scroll = 0
		return a, nil

	case quizResolvedMsg:
		if msg.token != a.quizToken {
			return a, nil
		}
		a.resolvingQuiz = false
		if msg.err != nil {
			a.quizErr = msg.err.Error()
			return a, nil
		}
		next := a.deps.OpenQuiz(*msg.quiz, a.sel.Module.Name)
		return a, func() tea.Msg { return router.PushScreenMsg{Screen: next} }

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *AssetScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if a.pickingLanguage {
		return a.handleLanguageKey(key)
	}

	switch key {
	case "esc":
		return a, func() tea.Msg { return router.PopScreenMsg{} }

	case "p", "P":
		if a.personalizing {
			return a, nil
		}
		return a, a.personalize()

	case "t", "T":
		if a.translating {
			return a, nil
		}
		a.pickingLanguage = true
		a.languageCursor = 0
		return a, nil

	case "o", "O":
		// Back to the original content, dropping both variants.
		a.personalized = ""
		a.translated = ""
		a.language = ""
		a.scroll = 0
		return a, nil

	case "d", "D":
		a.notice = ""
		a.translateErr = ""
		a.quizErr = ""
		return a, nil

	case "n", "N":
		return a.next()

	case "i", "I":
		next := a.deps.OpenInterview(topicSlug(a.sel.Asset.Name), a.sel.Asset.Name, a.activeContent())
		return a, func() tea.Msg { return router.PushScreenMsg{Screen: next} }

	case "up", "k":
		if a.scroll > 0 {
			a.scroll--
		}
	case "down", "j":
		a.scroll++
	}
	return a, nil
}

func (a *AssetScreen) handleLanguageKey(key string) (screen.Screen, tea.Cmd) {
	// Index 0 is the asset's own language; real targets follow.
	total := len(languages) + 1
	switch key {
	case "esc":
		a.pickingLanguage = false
	case "up", "k":
		if a.languageCursor > 0 {
			a.languageCursor--
		}
	case "down", "j":
		if a.languageCursor < total-1 {
			a.languageCursor++
		}
	case "enter":
		a.pickingLanguage = false
		if a.languageCursor == 0 {
			// Selecting the original language is a pure local reset.
			a.translated = ""
			a.language = ""
			a.translateErr = ""
			a.scroll = 0
			return a, nil
		}
		return a, a.translate(languages[a.languageCursor-1])
	}
	return a, nil
}

func (a *AssetScreen) next() (screen.Screen, tea.Cmd) {
	if a.sel.LastInModule {
		if a.resolvingQuiz {
			return a, nil
		}
		return a, a.resolveQuiz()
	}
	sel, ok := a.course.Next(a.sel)
	if !ok {
		return a, nil
	}
	a.setSelection(sel)
	return a, nil
}

// originalLanguage labels the asset's own language in the selector.
func (a *AssetScreen) originalLanguage() string {
	lang := a.sel.Asset.Language
	if lang == "" {
		return "English"
	}
	return strings.ToUpper(lang[:1]) + lang[1:]
}

// topicSlug turns a lesson name into the kebab-case topic key expected
// by the interview generator.
func topicSlug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastDash := true
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
