package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"lurnix/internal/profile"
	"lurnix/internal/session"
	"lurnix/internal/screens/home"
	"lurnix/internal/screens/login"
	"lurnix/internal/screens/profileform"
)

func completeProfile() profile.Profile {
	return profile.Profile{
		ID:            "u1",
		Name:          "Ada",
		Email:         "ada@example.com",
		Domain:        "engineering-student",
		Hobbies:       "cricket",
		LearningStyle: "storytelling",
	}
}

func TestRouteForNoProfile(t *testing.T) {
	assert.Equal(t, RouteLogin, RouteFor(nil, session.ErrNoProfile))
	assert.Equal(t, RouteLogin, RouteFor(nil, nil))
}

func TestRouteForLoadErrorCountsAsAbsence(t *testing.T) {
	p := completeProfile()
	assert.Equal(t, RouteLogin, RouteFor(&p, errors.New("parse stored profile")))
}

func TestRouteForIncompleteProfile(t *testing.T) {
	p := profile.Profile{Email: "ada@example.com"}
	assert.Equal(t, RouteProfileForm, RouteFor(&p, nil))

	p = completeProfile()
	p.LearningStyle = ""
	assert.Equal(t, RouteProfileForm, RouteFor(&p, nil))
}

func TestRouteForCompleteProfile(t *testing.T) {
	p := completeProfile()
	assert.Equal(t, RouteHome, RouteFor(&p, nil))
}

func TestStartScreenFollowsGuard(t *testing.T) {
	m := newAppModel(Options{Session: session.NewMemory()})
	_, ok := m.router.Active().(*login.LoginScreen)
	assert.True(t, ok, "empty session starts at sign-in")

	m = newAppModel(Options{Session: session.NewMemoryWith(profile.Profile{Email: "ada@example.com"})})
	_, ok = m.router.Active().(*profileform.FormScreen)
	assert.True(t, ok, "incomplete profile starts at the form")

	m = newAppModel(Options{Session: session.NewMemoryWith(completeProfile())})
	_, ok = m.router.Active().(*home.HomeScreen)
	assert.True(t, ok, "complete profile starts at home")
}

func TestMalformedSessionStartsAtSignIn(t *testing.T) {
	mem := session.NewMemoryWith(completeProfile())
	mem.FailLoads(errors.New("parse stored profile: unexpected end of JSON input"))

	m := newAppModel(Options{Session: mem})
	_, ok := m.router.Active().(*login.LoginScreen)
	assert.True(t, ok)
}
