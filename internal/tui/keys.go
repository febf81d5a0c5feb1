package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/foodrun/internal/state"
)

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.modal != nil {
		next, cmd, closed := a.modal.Update(m)
		if closed {
			a.modal = nil
		} else {
			a.modal = next
		}
		return a, cmd
	}
	if m.String() == "q" {
		return a, tea.Quit
	}

	switch a.st.View() {
	case state.AnonymousView:
		return a.handleAnonymousKey(m)
	case state.GroupSelectionView:
		if a.st.CurrentGroup == "" {
			return a.handleGroupListKey(m)
		}
		return a.handleBoardKey(m)
	default:
		return a.handleRoleKey(m)
	}
}

// sessionKey handles the keys shared by every logged-in screen.
func (a *App) sessionKey(m tea.KeyMsg) (tea.Cmd, bool) {
	switch m.String() {
	case "L":
		return a.Dispatch(state.Logout{}), true
	case "R":
		a.setStatus("refreshing...")
		return a.Dispatch(state.Refresh{}), true
	}
	return nil, false
}

func (a *App) handleAnonymousKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "r":
		a.setStatus("checking session...")
		return a, a.Dispatch(state.RefreshSession{})
	case "R":
		return a, a.Dispatch(state.Refresh{})
	}
	return a, nil
}

func (a *App) handleGroupListKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := a.sessionKey(m); ok {
		return a, cmd
	}
	switch m.String() {
	case "up", "k":
		if a.groupCursor > 0 {
			a.groupCursor--
		}
	case "down", "j":
		if a.groupCursor < len(a.st.Groups)-1 {
			a.groupCursor++
		}
	case "enter":
		if len(a.st.Groups) == 0 {
			a.setStatus("no groups yet - press [n] to create one")
			return a, nil
		}
		return a, a.Dispatch(state.SelectGroup{Group: a.st.Groups[a.groupCursor].Name})
	case "n":
		a.modal = newGroupDialog()
	}
	return a, nil
}

func (a *App) handleBoardKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := a.sessionKey(m); ok {
		return a, cmd
	}
	slots := a.st.CurrentGroupVolunteers()
	switch m.String() {
	case "esc":
		return a, a.Dispatch(state.ClearSelectedGroup{})
	case "up", "k":
		if a.slotCursor > 0 {
			a.slotCursor--
		}
	case "down", "j":
		if a.slotCursor < len(slots)-1 {
			a.slotCursor++
		}
	case "v":
		a.modal = newVolunteerDialog(a.st.CurrentGroup, func(order string) tea.Msg {
			return postingMsg{order: order}
		})
	case "r", "enter":
		if len(slots) == 0 {
			a.setStatus("no deliveries in this group yet")
			return a, nil
		}
		v := slots[a.slotCursor]
		a.modal = newRequestInput(v.ID, fmt.Sprintf("%s (%s @ %s)", v.Username, v.Location, v.Time))
	}
	return a, nil
}

func (a *App) handleRoleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := a.sessionKey(m); ok {
		return a, cmd
	}
	if m.String() == "esc" {
		return a, a.Dispatch(state.SetRole{Role: state.RoleUndecided})
	}
	return a, nil
}
