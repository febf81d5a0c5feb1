package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/foodrun/internal/api"
	"github.com/jask/foodrun/internal/state"
)

// styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	selectedStyle = lipgloss.NewStyle().Bold(true)
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func (a *App) View() string {
	var body string
	switch a.st.View() {
	case state.AnonymousView:
		body = a.renderAnonymous()
	case state.GroupSelectionView:
		if a.st.CurrentGroup == "" {
			body = a.renderGroupList()
		} else {
			body = a.renderBoard()
		}
	default:
		body = a.renderRole()
	}
	if a.modal != nil {
		body += "\n\n" + modalStyle.Render(a.modal.View())
	}
	if a.status != "" {
		if a.statusErr {
			body += "\n" + errorStyle.Render(a.status)
		} else {
			body += "\n" + mutedStyle.Render(a.status)
		}
	}
	return body
}

func (a *App) renderAnonymous() string {
	out := titleStyle.Render("foodrun") + "\n"
	out += "Share the shopping trip: offer a run or ask someone who is going.\n\n"
	out += fmt.Sprintf("You are not logged in. Log in at %s,\nthen press [r] to check again.\n", a.ui.LoginURL)
	out += mutedStyle.Render("[r] Check session  [R] Refresh  [q] Quit")
	return out
}

func (a *App) renderGroupList() string {
	out := titleStyle.Render("Groups") + "\n"
	if name := a.st.Session.Username; name != "" {
		out += fmt.Sprintf("Hi, %s.\n", name)
	}
	out += "Please select a group.\n"
	if len(a.st.Groups) == 0 {
		out += "  (no groups yet)\n"
	}
	for i, g := range a.st.Groups {
		out += cursorLine(i == a.groupCursor, g.Name) + "\n"
	}
	out += mutedStyle.Render("[enter] Select  [n] New group  [R] Refresh  [L] Log out  [q] Quit")
	return out
}

func (a *App) renderBoard() string {
	out := titleStyle.Render(a.st.CurrentGroup) + "\n"
	slots := a.st.CurrentGroupVolunteers()
	if len(slots) == 0 {
		out += "Nobody is going yet. Press [v] to volunteer.\n"
	}
	for i, v := range slots {
		out += cursorLine(i == a.slotCursor, slotLine(v)) + "\n"
		out += requestLines(v.Requests)
	}
	out += mutedStyle.Render("[v] Volunteer  [r] Request from selected  [esc] Groups  [R] Refresh  [L] Log out  [q] Quit")
	return out
}

func (a *App) renderRole() string {
	var out string
	user, _, loggedIn := a.st.Session.Identity()
	switch a.st.Role {
	case state.RoleFetcher:
		out = titleStyle.Render("Your deliveries") + "\n"
		if !loggedIn {
			out += a.identityHint("deliveries")
			break
		}
		slots := a.st.VolunteersBy(user)
		if len(slots) == 0 {
			out += "Waiting for your delivery to appear...\n"
		}
		for _, v := range slots {
			out += "  " + slotLine(v) + fmt.Sprintf("  [%s]", a.st.GroupName(v.GroupID)) + "\n"
			out += requestLines(v.Requests)
		}
	case state.RoleReceiver:
		out = titleStyle.Render("Your requests") + "\n"
		if !loggedIn {
			out += a.identityHint("requests")
			break
		}
		reqs := a.st.RequestsBy(user)
		if len(reqs) == 0 {
			out += "Waiting for your request to appear...\n"
		}
		for _, r := range reqs {
			out += fmt.Sprintf("  %-24s from %s (%s @ %s)\n", r.Request.Text, r.Volunteer.Username, r.Volunteer.Location, r.Volunteer.Time)
		}
	}
	out += mutedStyle.Render("[esc] Change role  [R] Refresh  [L] Log out  [q] Quit")
	return out
}

func (a *App) identityHint(what string) string {
	if a.st.Session.LoggedIn {
		return "Loading your profile...\n"
	}
	return "Log in to see your " + what + ".\n"
}

func cursorLine(selected bool, text string) string {
	if selected {
		return selectedStyle.Render("▶ " + text)
	}
	return "  " + text
}

func slotLine(v api.Volunteer) string {
	return fmt.Sprintf("#%s  %s @ %s  by %s (%d requests)", v.OrderNumber, v.Location, v.Time, v.Username, len(v.Requests))
}

func requestLines(reqs []api.Request) string {
	var b strings.Builder
	for _, r := range reqs {
		fmt.Fprintf(&b, "      - %s (%s)\n", r.Text, r.Username)
	}
	return b.String()
}
