package app

import "lurnix/internal/profile"

// Route names the screen the app starts on.
type Route int

const (
	// RouteLogin is the email sign-in screen.
	RouteLogin Route = iota
	// RouteProfileForm is the preference setup form.
	RouteProfileForm
	// RouteHome is the course tree.
	RouteHome
)

// RouteFor decides the start screen from the stored profile. A load
// error counts as absence: the user signs in again rather than seeing
// a broken session.
func RouteFor(p *profile.Profile, err error) Route {
	if err != nil || p == nil {
		return RouteLogin
	}
	if len(p.MissingFields()) > 0 {
		return RouteProfileForm
	}
	return RouteHome
}
