package login

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lurnix/internal/api"
	"lurnix/internal/config"
	"lurnix/internal/profile"
	"lurnix/internal/router"
	"lurnix/internal/screen"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

type stubScreen struct{ title string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

type fakeSession struct {
	saved []profile.Profile
}

func (f *fakeSession) Save(p profile.Profile) error {
	f.saved = append(f.saved, p)
	return nil
}

func testScreen(t *testing.T, handler http.Handler) (*LoginScreen, *fakeSession) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := api.New(config.Config{
		UserAPIBaseURL:    srv.URL,
		ContentAPIBaseURL: srv.URL,
	}, nil)

	sess := &fakeSession{}
	deps := Deps{
		Client:  client,
		Session: sess,
		OnKnownUser: func(p profile.Profile) screen.Screen {
			return &stubScreen{title: "home:" + p.Name}
		},
		OnNewUser: func(p profile.Profile) screen.Screen {
			return &stubScreen{title: "setup:" + p.Email}
		},
	}
	return New(deps), sess
}

func typeString(s *LoginScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

// submit presses enter and, when a lookup starts, feeds the result back.
func submit(t *testing.T, s *LoginScreen) tea.Cmd {
	t.Helper()
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		return nil
	}
	next, followup := s.Update(cmd())
	require.Same(t, s, next)
	return followup
}

func TestKnownUserReplacesWithHome(t *testing.T) {
	s, sess := testScreen(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users-collection/email/ada@example.com", r.URL.Path)
		json.NewEncoder(w).Encode(profile.Profile{
			ID: "u1", Name: "Ada", Email: "ada@example.com",
			Domain: "engineering-student", Hobbies: "cricket", LearningStyle: "storytelling",
		})
	}))

	typeString(s, "ada@example.com")
	cmd := submit(t, s)
	require.NotNil(t, cmd)

	repl, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "home:Ada", repl.Screen.Title())

	require.Len(t, sess.saved, 1)
	assert.Equal(t, "u1", sess.saved[0].ID)
}

func TestUnknownEmailStartsProfileSetup(t *testing.T) {
	s, sess := testScreen(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"User preferences not found for email: new@example.com"}`, http.StatusNotFound)
	}))

	typeString(s, "new@example.com")
	cmd := submit(t, s)
	require.NotNil(t, cmd)

	repl, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "setup:new@example.com", repl.Screen.Title())

	// The email-only profile persists so a restart resumes setup.
	require.Len(t, sess.saved, 1)
	assert.Equal(t, "new@example.com", sess.saved[0].Email)
	assert.Empty(t, sess.saved[0].ID)
}

func TestLookupErrorShowsMessage(t *testing.T) {
	s, sess := testScreen(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"internal error"}`, http.StatusInternalServerError)
	}))

	typeString(s, "ada@example.com")
	cmd := submit(t, s)
	assert.Nil(t, cmd)
	assert.Contains(t, s.errMsg, "internal error")
	assert.Empty(t, sess.saved)
	assert.False(t, s.busy)
}

func TestInvalidEmailRejectedLocally(t *testing.T) {
	s, sess := testScreen(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	typeString(s, "not-an-email")
	cmd := submit(t, s)
	assert.Nil(t, cmd)
	assert.NotEmpty(t, s.errMsg)
	assert.Empty(t, sess.saved)
}

func TestEmailNormalizedBeforeLookup(t *testing.T) {
	s, _ := testScreen(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users-collection/email/ada@example.com", r.URL.Path)
		json.NewEncoder(w).Encode(profile.Profile{ID: "u1", Name: "Ada", Email: "ada@example.com"})
	}))

	typeString(s, "Ada@Example.COM")
	cmd := submit(t, s)
	require.NotNil(t, cmd)
}

func TestValidEmail(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"ada@example.com", true},
		{"a@b.co", true},
		{"nope", false},
		{"@example.com", false},
		{"ada@example", false},
		{"ada@exa@mple.com", false},
		{"ada@example.com.", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, validEmail(c.in), c.in)
	}
}
