package profile

import "strings"

// Profile holds the user's personalization preferences. The backend
// identifies a persisted profile by email; locally a profile exists as
// soon as the session store holds one.
type Profile struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Domain        string `json:"domain"`
	Hobbies       string `json:"hobbies"`
	LearningStyle string `json:"learningStyle"`
}

// Complete reports whether all five preference fields are set.
// An email-only profile is a valid transient state between login and
// profile setup, and is not complete.
func (p Profile) Complete() bool {
	return p.Name != "" && p.Email != "" && p.Domain != "" &&
		p.Hobbies != "" && p.LearningStyle != ""
}

// MissingFields returns the labels of required fields that are empty,
// in form order. Used for inline form validation.
func (p Profile) MissingFields() []string {
	var missing []string
	checks := []struct {
		label string
		value string
	}{
		{"name", p.Name},
		{"email", p.Email},
		{"domain", p.Domain},
		{"hobbies", p.Hobbies},
		{"learning style", p.LearningStyle},
	}
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			missing = append(missing, c.label)
		}
	}
	return missing
}
