package sprig

// EventPayload is a tracked event as handed to the surveys backend.
type EventPayload struct {
	Event      string
	UserID     string
	Properties map[string]interface{}
}

// Survey is a card the backend wants shown to the visitor.
type Survey struct {
	ID       string
	Event    string
	Question string
}

// Presenter shows surveys. It is the screen the user is looking at.
// Implementations must be comparable (a pointer type in practice) so the
// factory can tell screens apart.
type Presenter interface {
	PresentSurvey(s Survey)
}

// Surveys is the visitor-facing surveys backend the integration forwards to.
type Surveys interface {
	SetUserIdentifier(userID string)
	SetEmailAddress(email string)
	SetVisitorAttribute(key, value string)
	SetIntVisitorAttribute(key string, value int)
	SetBoolVisitorAttribute(key string, value bool)

	// Track records an event without presenting anything.
	Track(payload EventPayload)
	// TrackAndPresent records an event and presents any survey it triggers
	// on p.
	TrackAndPresent(payload EventPayload, p Presenter)

	Logout()
}
