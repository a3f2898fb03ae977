package asset

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lurnix/internal/api"
	"lurnix/internal/config"
	"lurnix/internal/course"
	"lurnix/internal/profile"
	"lurnix/internal/quiz"
	"lurnix/internal/router"
	"lurnix/internal/screen"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testCourse() *course.Course {
	return &course.Course{
		ID:   "course-1",
		Name: "Generative AI",
		Modules: []course.Module{
			{
				ID:   "m1",
				Code: "MOD1",
				Name: "Foundations",
				Assets: []course.Asset{
					{ID: "a1", Code: "A1", Name: "What is Generative AI", Content: "<p>Intro</p>", Language: "english"},
					{ID: "a2", Code: "A2", Name: "Transformers", Content: "<p>Attention</p>", Language: "english"},
				},
			},
		},
	}
}

func testScreen(t *testing.T, handler http.Handler) (*AssetScreen, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	counting := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if handler != nil {
			handler.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(counting)
	t.Cleanup(srv.Close)

	client := api.New(config.Config{
		UserAPIBaseURL:    srv.URL,
		ContentAPIBaseURL: srv.URL,
	}, nil)

	c := testCourse()
	sel, ok := c.Select(0, 0)
	require.True(t, ok)

	deps := Deps{
		Client:  client,
		Profile: profile.Profile{Domain: "engineering-student", Hobbies: "cricket", LearningStyle: "storytelling"},
	}
	return New(deps, c, sel), &calls
}

// drive runs a returned command, if any, and feeds its message back in.
func drive(t *testing.T, s *AssetScreen, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if msg == nil {
		return
	}
	next, _ := s.Update(msg)
	require.Same(t, s, next)
}

func TestSelectingOriginalLanguageClearsTranslationWithoutRequest(t *testing.T) {
	s, calls := testScreen(t, nil)
	s.translated = "anuvaad"
	s.language = "Hindi"

	s.Update(keyPress('t'))
	require.True(t, s.pickingLanguage)

	// Cursor starts on the original language; enter must stay local.
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.False(t, s.pickingLanguage)
	assert.Equal(t, VariantOriginal, s.Variant())
	assert.Empty(t, s.language)
	assert.Equal(t, int32(0), calls.Load())
}

func TestTranslateIssuesOneRequestAndApplies(t *testing.T) {
	s, calls := testScreen(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/content-transformer/translateAsset", r.URL.Path)
		assert.Equal(t, "A1", r.URL.Query().Get("code"))
		assert.Equal(t, "Hindi", r.URL.Query().Get("language"))
		json.NewEncoder(w).Encode(api.TranslatedAssetResponse{
			Asset: course.Asset{Content: "<p>Anuvaadit paath</p>"},
		})
	}))

	s.Update(keyPress('t'))
	s.Update(specialKey(tea.KeyDown))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	drive(t, s, cmd)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, VariantTranslated, s.Variant())
	assert.Equal(t, "Hindi", s.language)
	assert.Contains(t, s.activeContent(), "Anuvaadit")
}

func TestTranslateFailureRevertsSelector(t *testing.T) {
	s, _ := testScreen(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"translator down"}`, http.StatusBadGateway)
	}))

	s.Update(keyPress('t'))
	s.Update(specialKey(tea.KeyDown))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	drive(t, s, cmd)

	assert.Equal(t, VariantOriginal, s.Variant())
	assert.Empty(t, s.language)
	assert.NotEmpty(t, s.translateErr)
}

func TestPersonalizeReplacesContentWhenDisplayable(t *testing.T) {
	s, _ := testScreen(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/content-transformer/getAsset", r.URL.Path)
		assert.Equal(t, "engineering-student", r.URL.Query().Get("domain"))
		assert.Equal(t, "cricket", r.URL.Query().Get("hobby"))
		assert.Equal(t, "storytelling", r.URL.Query().Get("style"))
		json.NewEncoder(w).Encode(api.PersonalizedAssetResponse{
			Asset:     course.Asset{Content: "<p>Imagine a cricket match</p>"},
			MatchType: api.MatchGenerated,
		})
	}))

	_, cmd := s.Update(keyPress('p'))
	require.NotNil(t, cmd)
	drive(t, s, cmd)

	assert.Equal(t, VariantPersonalized, s.Variant())
	assert.Contains(t, s.activeContent(), "cricket match")
}

func TestPersonalizeNonDisplayableShowsNoticeKeepsOriginal(t *testing.T) {
	s, _ := testScreen(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.PersonalizedAssetResponse{
			Asset:     course.Asset{Content: "half-baked"},
			MatchType: "partial",
		})
	}))

	_, cmd := s.Update(keyPress('p'))
	drive(t, s, cmd)

	assert.Equal(t, VariantOriginal, s.Variant())
	assert.NotEmpty(t, s.notice)

	s.Update(keyPress('d'))
	assert.Empty(t, s.notice)
}

func TestPersonalizeFailureIsDismissibleNotice(t *testing.T) {
	s, _ := testScreen(t, nil)

	_, cmd := s.Update(keyPress('p'))
	drive(t, s, cmd)

	assert.Equal(t, VariantOriginal, s.Variant())
	assert.NotEmpty(t, s.notice)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	s, _ := testScreen(t, nil)

	s.personalizeToken = 5
	next, _ := s.Update(personalizedMsg{
		token: 3,
		resp:  &api.PersonalizedAssetResponse{Asset: course.Asset{Content: "old"}, MatchType: api.MatchGenerated},
	})
	require.Same(t, s, next)
	assert.Equal(t, VariantOriginal, s.Variant())
	assert.Empty(t, s.notice)
}

func TestNextAdvancesAndResetsVariants(t *testing.T) {
	s, calls := testScreen(t, nil)
	s.personalized = "tailored"
	s.translated = "anuvaad"
	s.language = "Hindi"

	_, cmd := s.Update(keyPress('n'))
	assert.Nil(t, cmd)
	assert.Equal(t, int32(0), calls.Load())

	assert.Equal(t, "Transformers", s.sel.Asset.Name)
	assert.True(t, s.sel.LastInModule)
	assert.Equal(t, VariantOriginal, s.Variant())
	assert.Empty(t, s.language)
}

func TestNextOnLastAssetResolvesExistingQuiz(t *testing.T) {
	s, calls := testScreen(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quiz/course/course-1", r.URL.Path)
		assert.Equal(t, "MOD1", r.URL.Query().Get("module_code"))
		json.NewEncoder(w).Encode(api.QuizListResponse{
			Quizzes: []quiz.Quiz{{ID: "q1", ModuleCode: "MOD1", Questions: []quiz.Question{
				{Question: "Q", Options: []string{"a", "b"}, CorrectAnswer: 0},
			}}},
		})
	}))

	var opened quiz.Quiz
	s.deps.OpenQuiz = func(q quiz.Quiz, _ string) screen.Screen {
		opened = q
		return nil
	}

	sel, ok := s.course.Next(s.sel)
	require.True(t, ok)
	s.setSelection(sel)

	_, cmd := s.Update(keyPress('n'))
	require.NotNil(t, cmd)
	msg := cmd()
	next, pushCmd := s.Update(msg)
	require.Same(t, s, next)

	assert.Equal(t, int32(1), calls.Load())
	require.NotNil(t, pushCmd)
	_, isPush := pushCmd().(router.PushScreenMsg)
	assert.True(t, isPush)
	assert.Equal(t, "q1", opened.ID)
}

func TestStoredQuizWithoutQuestionsIsNotOpened(t *testing.T) {
	s, _ := testScreen(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.QuizListResponse{
			Quizzes: []quiz.Quiz{{ID: "q-empty", ModuleCode: "MOD1"}},
		})
	}))

	s.deps.OpenQuiz = func(q quiz.Quiz, _ string) screen.Screen {
		t.Error("empty quiz must not open")
		return nil
	}

	sel, ok := s.course.Next(s.sel)
	require.True(t, ok)
	s.setSelection(sel)

	_, cmd := s.Update(keyPress('n'))
	require.NotNil(t, cmd)
	next, pushCmd := s.Update(cmd())
	require.Same(t, s, next)

	assert.Nil(t, pushCmd)
	assert.Contains(t, s.quizErr, "no quiz available")
	assert.False(t, s.resolvingQuiz)
}

func TestNextOnLastAssetGeneratesWhenNoneStored(t *testing.T) {
	s, _ := testScreen(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/quiz/course/course-1":
			json.NewEncoder(w).Encode(api.QuizListResponse{})
		case "/quiz/generate":
			var req api.GenerateQuizzesRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "MOD1", req.ModuleCode)
			assert.False(t, req.Overwrite)
			json.NewEncoder(w).Encode(api.GenerateQuizzesResponse{
				Success: true,
				GeneratedQuizzes: []quiz.Quiz{{ID: "fresh", Questions: []quiz.Question{
					{Question: "Q", Options: []string{"a", "b"}, CorrectAnswer: 1},
				}}},
			})
		default:
			http.NotFound(w, r)
		}
	}))

	var opened quiz.Quiz
	s.deps.OpenQuiz = func(q quiz.Quiz, _ string) screen.Screen {
		opened = q
		return nil
	}

	sel, _ := s.course.Next(s.sel)
	s.setSelection(sel)

	_, cmd := s.Update(keyPress('n'))
	msg := cmd()
	s.Update(msg)

	assert.Equal(t, "fresh", opened.ID)
}

func TestOriginalKeyDropsBothVariants(t *testing.T) {
	s, _ := testScreen(t, nil)
	s.personalized = "tailored"
	s.translated = "anuvaad"
	s.language = "Hindi"

	s.Update(keyPress('o'))

	assert.Equal(t, VariantOriginal, s.Variant())
	assert.Equal(t, "<p>Intro</p>", s.activeContent())
}

func TestPrecedencePersonalizedOverTranslated(t *testing.T) {
	s, _ := testScreen(t, nil)
	s.translated = "anuvaad"
	s.language = "Hindi"
	assert.Equal(t, VariantTranslated, s.Variant())

	s.personalized = "tailored"
	assert.Equal(t, VariantPersonalized, s.Variant())
	assert.Equal(t, "tailored", s.activeContent())
}

func TestTopicSlug(t *testing.T) {
	assert.Equal(t, "what-is-generative-ai", topicSlug("What is Generative AI"))
	assert.Equal(t, "nlp-basics", topicSlug("  NLP: Basics!  "))
	assert.Equal(t, "", topicSlug("---"))
}
