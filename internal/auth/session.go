package auth

import "fmt"

// State is the session state of a [Manager].
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// EventKind identifies what triggered a refresh.
type EventKind int

const (
	EventLogin EventKind = iota
	EventLogout
)

func (k EventKind) String() string {
	if k == EventLogin {
		return "login"
	}
	return "logout"
}

// Event is delivered to listeners after a login or logout has completed.
type Event struct {
	Kind     EventKind
	Username string // Username is the user who logged in or out; empty for a logout while anonymous
}

// Listener reacts to session changes, typically by re-rendering favorite markers.
type Listener interface {
	HandleViewRefresh(Event)
}

// ListenerFunc adapts a function to [Listener].
type ListenerFunc func(Event)

func (f ListenerFunc) HandleViewRefresh(e Event) { f(e) }

// LoginUI is the visibility of the account controls for a session state.
type LoginUI struct {
	ShowLogin    bool
	ShowLogout   bool
	ShowUserInfo bool
	Username     string
}

// LoginUIFor derives the account controls from the current username ("" when anonymous).
func LoginUIFor(username string, state State) LoginUI {
	if state == Authenticated {
		return LoginUI{ShowLogout: true, ShowUserInfo: true, Username: username}
	}
	return LoginUI{ShowLogin: true}
}
