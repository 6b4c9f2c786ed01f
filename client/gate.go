package client

// GateDecision is the outcome of evaluating the admin route guard
type GateDecision int

const (
	// ShowPlaceholder renders nothing while the session is undetermined
	ShowPlaceholder GateDecision = iota
	// RedirectLogin bounces an unauthenticated visitor to the login entry
	RedirectLogin
	// RenderAdmin allows the protected subtree to render
	RenderAdmin
)

func (d GateDecision) String() string {
	switch d {
	case ShowPlaceholder:
		return "placeholder"
	case RedirectLogin:
		return "redirect-login"
	case RenderAdmin:
		return "render-admin"
	default:
		return "unknown"
	}
}

// EvaluateGate decides what the admin guard should do. While the startup
// verification is pending it must not redirect: bouncing before the token
// is checked would kick out a valid session.
func EvaluateGate(token string, authenticating bool) GateDecision {
	if authenticating {
		return ShowPlaceholder
	}
	if token == "" {
		return RedirectLogin
	}
	return RenderAdmin
}

// Gate evaluates the guard against the session's current state
func (s *Session) Gate() GateDecision {
	return EvaluateGate(s.Token(), s.Authenticating())
}
