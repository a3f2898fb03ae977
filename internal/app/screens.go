package app

import (
	"lurnix/internal/course"
	"lurnix/internal/profile"
	"lurnix/internal/quiz"
	"lurnix/internal/screen"
	"lurnix/internal/screens/asset"
	"lurnix/internal/screens/home"
	interviewscreen "lurnix/internal/screens/interview"
	"lurnix/internal/screens/login"
	"lurnix/internal/screens/profileform"
	"lurnix/internal/screens/quizpopup"
)

// Screen construction lives here so every screen gets its dependencies
// from one place. Screens receive builder closures, never the app
// itself.

func (m AppModel) newLogin() screen.Screen {
	return login.New(login.Deps{
		Client:      m.opts.Client,
		Session:     m.session,
		OnKnownUser: m.afterAuth,
		OnNewUser: func(p profile.Profile) screen.Screen {
			return m.newProfileFormMode(p, profileform.ModeCreate)
		},
	})
}

// afterAuth routes a returning user: straight home when the stored
// preferences are complete, back through the form when they are not.
func (m AppModel) afterAuth(p profile.Profile) screen.Screen {
	if len(p.MissingFields()) > 0 {
		return m.newProfileForm(p)
	}
	return m.newHome(p)
}

func (m AppModel) newProfileForm(p profile.Profile) screen.Screen {
	mode := profileform.ModeCreate
	if p.ID != "" {
		mode = profileform.ModeUpdate
	}
	return m.newProfileFormMode(p, mode)
}

func (m AppModel) newProfileFormMode(p profile.Profile, mode profileform.Mode) screen.Screen {
	return profileform.New(profileform.Deps{
		Client:  m.opts.Client,
		Session: m.session,
		OnSaved: func(saved profile.Profile) screen.Screen {
			return m.newHome(saved)
		},
	}, mode, p)
}

func (m AppModel) newHome(p profile.Profile) screen.Screen {
	return home.New(home.Deps{
		Client:   m.opts.Client,
		CourseID: m.opts.Config.CourseID,
		Profile:  p,
		Session:  m.session,
		OpenAsset: func(c *course.Course, sel course.Selection) screen.Screen {
			return m.newAsset(p, c, sel)
		},
		EditProfile: func(current profile.Profile) screen.Screen {
			return m.newProfileFormMode(current, profileform.ModeUpdate)
		},
		SignIn: func() screen.Screen {
			return m.newLogin()
		},
	})
}

func (m AppModel) newAsset(p profile.Profile, c *course.Course, sel course.Selection) screen.Screen {
	return asset.New(asset.Deps{
		Client:  m.opts.Client,
		Profile: p,
		OpenQuiz: func(q quiz.Quiz, moduleName string) screen.Screen {
			return quizpopup.New(q, moduleName)
		},
		OpenInterview: func(topic, title, content string) screen.Screen {
			return interviewscreen.New(interviewscreen.Deps{
				Generator: m.opts.Generator,
				Speech:    m.opts.Speech,
				Profile:   p,
				ExportDir: m.opts.ExportDir,
			}, topic, title, content)
		},
	}, c, sel)
}
