package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/foodrun/internal/api"
	"github.com/jask/foodrun/internal/state"
)

// session results carry the epoch they were issued in; logout bumps it
type sessionStatusMsg struct {
	epoch  int
	status api.SessionStatus
	err    error
}

type profileMsg struct {
	epoch   int
	profile api.Profile
	err     error
}

type groupsMsg struct {
	groups []api.Group
	err    error
}

type snapshotMsg struct {
	volunteers []api.Volunteer
	err        error
}

type mutationDoneMsg struct {
	cmd state.Command
	err error
}

type statusMsg string

// postingMsg follows a volunteer submit. It is shown only if the create with
// that order number was accepted.
type postingMsg struct {
	order string
}

// emit turns a command into a message for the controller.
func emit(cmd state.Command) tea.Cmd {
	return func() tea.Msg { return cmd }
}
