package state

// View is one of the mutually exclusive top-level screens.
type View int

const (
	AnonymousView View = iota
	GroupSelectionView
	AssignedRoleView
)

func (v View) String() string {
	switch v {
	case AnonymousView:
		return "anonymous"
	case GroupSelectionView:
		return "group-selection"
	case AssignedRoleView:
		return "assigned-role"
	default:
		return "unknown"
	}
}

// Route picks the view. A decided role wins over everything else, so group
// selection is only reachable while the role is undecided.
func Route(loggedIn bool, role Role) View {
	switch role {
	case RoleFetcher, RoleReceiver:
		return AssignedRoleView
	}
	if !loggedIn {
		return AnonymousView
	}
	return GroupSelectionView
}
