package state

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/foodrun/internal/api"
)

// Role is the mode a session is locked into.
type Role string

const (
	RoleUndecided Role = "undecided"
	RoleFetcher   Role = "fetcher"
	RoleReceiver  Role = "receiver"
)

// Session mirrors the server's view of the current user. Identity fields are
// meaningful only when LoggedIn is true.
type Session struct {
	LoggedIn  bool
	Username  string
	AvatarRef string
	UserID    string
}

// Identity returns the username and avatar to send with a mutation. ok is
// false until the profile has been applied.
func (s Session) Identity() (username, avatar string, ok bool) {
	if !s.LoggedIn || s.Username == "" {
		return "", "", false
	}
	return s.Username, s.AvatarRef, true
}

// State is the client's whole model.
type State struct {
	Session      Session
	Groups       []api.Group
	Snapshot     []api.Volunteer
	CurrentGroup string
	Role         Role
}

// New returns the initial model: logged out, nothing fetched, role undecided.
func New() State {
	return State{Role: RoleUndecided}
}

// View routes the current model.
func (s State) View() View {
	return Route(s.Session.LoggedIn, s.Role)
}

// ReplaceGroups swaps in a full server list. Earlier lists are discarded.
func (s *State) ReplaceGroups(groups []api.Group) {
	s.Groups = append([]api.Group(nil), groups...)
}

// ReplaceSnapshot swaps in a full server snapshot.
func (s *State) ReplaceSnapshot(vols []api.Volunteer) {
	s.Snapshot = append([]api.Volunteer(nil), vols...)
}

// SetAuthenticated applies a session check. It reports whether this was a
// logged-out to logged-in transition, which is when the profile should be fetched.
func (s *State) SetAuthenticated(ok bool) (became bool) {
	was := s.Session.LoggedIn
	if !ok {
		s.Session = Session{}
		return false
	}
	s.Session.LoggedIn = true
	return !was
}

// ApplyProfile sets the identity fields in one step. Ignored when logged out.
func (s *State) ApplyProfile(p api.Profile) {
	if !s.Session.LoggedIn {
		return
	}
	s.Session.Username = p.Username
	s.Session.AvatarRef = p.AvatarRef
	s.Session.UserID = p.ID
}

// LogOut forgets the identity, the role and the selected group. Groups and the
// snapshot are shared data and stay cached.
func (s *State) LogOut() {
	s.Session = Session{}
	s.Role = RoleUndecided
	s.CurrentGroup = ""
}

// ResolveGroupID returns the id of the group named name.
func (s State) ResolveGroupID(name string) (string, bool) {
	for _, g := range s.Groups {
		if g.Name == name {
			return g.ID, true
		}
	}
	return "", false
}

// SuggestGroup returns the known group name closest to name, or "" when
// nothing is close enough to be a plausible typo.
func (s State) SuggestGroup(name string) string {
	target := strings.ToLower(strings.TrimSpace(name))
	if target == "" {
		return ""
	}
	best, bestDist := "", -1
	for _, g := range s.Groups {
		d := levenshtein.ComputeDistance(target, strings.ToLower(g.Name))
		if bestDist < 0 || d < bestDist {
			best, bestDist = g.Name, d
		}
	}
	// more than half the name rewritten is not a typo
	if bestDist < 0 || bestDist*2 > len([]rune(target)) {
		return ""
	}
	return best
}

// VolunteersInGroup returns the slots belonging to groupID, in snapshot order.
func (s State) VolunteersInGroup(groupID string) []api.Volunteer {
	var out []api.Volunteer
	for _, v := range s.Snapshot {
		if v.GroupID == groupID {
			out = append(out, v)
		}
	}
	return out
}

// CurrentGroupVolunteers returns the slots of the selected group.
func (s State) CurrentGroupVolunteers() []api.Volunteer {
	id, ok := s.ResolveGroupID(s.CurrentGroup)
	if !ok {
		return nil
	}
	return s.VolunteersInGroup(id)
}

// VolunteersBy returns the slots offered by username.
func (s State) VolunteersBy(username string) []api.Volunteer {
	var out []api.Volunteer
	for _, v := range s.Snapshot {
		if v.Username == username {
			out = append(out, v)
		}
	}
	return out
}

// RequestWithSlot pairs a request with the slot it is attached to.
type RequestWithSlot struct {
	Request   api.Request
	Volunteer api.Volunteer
}

// RequestsBy returns the requests made by username across all slots.
func (s State) RequestsBy(username string) []RequestWithSlot {
	var out []RequestWithSlot
	for _, v := range s.Snapshot {
		for _, r := range v.Requests {
			if r.Username == username {
				out = append(out, RequestWithSlot{Request: r, Volunteer: v})
			}
		}
	}
	return out
}

// GroupName returns the display name for id, falling back to the id.
func (s State) GroupName(id string) string {
	for _, g := range s.Groups {
		if g.ID == id {
			return g.Name
		}
	}
	return id
}
