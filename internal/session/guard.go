// Package session implements the single-active-session heuristic: every
// sign-in rotates an opaque marker on the user record, and any open session
// holding an older marker is forced out. This is best effort, not a
// distributed lock; two devices signing in back-to-back before either sees
// the other's update is an accepted race.
package session

// Action is the outcome of comparing a device-local marker against the
// server-held marker.
type Action int

const (
	// ActionNone: markers agree, or there is no server marker to compare.
	ActionNone Action = iota
	// ActionAdopt: no local marker yet; the server marker becomes local.
	// Covers the normal single-device fresh-login case.
	ActionAdopt
	// ActionSignOut: both markers present and different; this device has
	// been signed in elsewhere and must clear its marker and sign out.
	ActionSignOut
)

// Apply evaluates the marker transition table.
//
//	local ∅, server ∅ -> none
//	local ∅, server x -> adopt
//	local x, server x -> none
//	local x, server y -> sign out
func Apply(local, server string) Action {
	switch {
	case server == "":
		return ActionNone
	case local == "":
		return ActionAdopt
	case local != server:
		return ActionSignOut
	default:
		return ActionNone
	}
}

// Guard carries the device-local marker across a stream of profile updates.
type Guard struct {
	local string
}

// NewGuard starts a guard with the marker the device currently holds, which
// may be empty for a fresh session.
func NewGuard(local string) *Guard {
	return &Guard{local: local}
}

// Observe applies one server-side marker update, mutating the local marker
// on adopt and clearing it on forced sign-out.
func (g *Guard) Observe(server string) Action {
	action := Apply(g.local, server)
	switch action {
	case ActionAdopt:
		g.local = server
	case ActionSignOut:
		g.local = ""
	}
	return action
}

// Local returns the marker the guard currently holds.
func (g *Guard) Local() string {
	return g.local
}
