package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/foodrun/internal/api"
	"github.com/jask/foodrun/internal/state"
)

// collect runs cmd and returns the messages it produces, unpacking
// batches and sequences in order.
func collect(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if cmds, ok := cmdList(msg); ok {
		var out []tea.Msg
		for _, c := range cmds {
			out = append(out, collect(t, c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestGroupDialogEmitsCreate(t *testing.T) {
	d := newGroupDialog()

	_, cmd, closed := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, closed, "blank name keeps the dialog open")

	d.Update(keyRunes("  East  "))
	_, cmd, closed = d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, closed)
	assert.Equal(t, []tea.Msg{state.CreateGroup{Name: "East"}}, collect(t, cmd))
	assert.Empty(t, d.name.Value())
}

func TestGroupDialogEscCancels(t *testing.T) {
	d := newGroupDialog()
	d.Update(keyRunes("East"))
	_, cmd, closed := d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, closed)
	assert.Nil(t, cmd)
}

func TestVolunteerDialogEmissionOrder(t *testing.T) {
	var completed string
	d := newVolunteerDialog("North", func(order string) tea.Msg {
		completed = order
		return statusMsg("done " + order)
	})

	d.Update(keyRunes("Main St"))
	_, cmd, closed := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, closed, "missing time keeps the dialog open")
	assert.Equal(t, fieldTime, d.focus)

	d.Update(keyRunes("5pm"))
	_, cmd, closed = d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, closed)

	msgs := collect(t, cmd)
	require.Len(t, msgs, 3)
	assert.Equal(t, state.SetRole{Role: state.RoleFetcher}, msgs[0])
	create, ok := msgs[1].(state.CreateVolunteer)
	require.True(t, ok)
	assert.Equal(t, "Main St", create.Location)
	assert.Equal(t, "5pm", create.Time)
	assert.Equal(t, "North", create.GroupName)
	assert.Regexp(t, orderNumberRe, create.OrderNumber)
	assert.Equal(t, create.OrderNumber, completed)
	assert.Equal(t, statusMsg("done "+create.OrderNumber), msgs[2])

	for _, in := range d.inputs {
		assert.Empty(t, in.Value())
	}
	assert.Equal(t, fieldLocation, d.focus)
}

func TestVolunteerDialogFocusWraps(t *testing.T) {
	d := newVolunteerDialog("North", nil)
	d.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, fieldTime, d.focus)
	d.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, fieldLocation, d.focus)
	d.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, fieldTime, d.focus)
}

func TestRequestInputEmitsRoleThenCreate(t *testing.T) {
	r := newRequestInput("v1", "cy")
	_, cmd, closed := r.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, closed)

	r.Update(keyRunes("bread"))
	_, cmd, closed = r.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, closed)
	assert.Equal(t, []tea.Msg{
		state.SetRole{Role: state.RoleReceiver},
		state.CreateRequest{VolunteerID: "v1", Text: "bread"},
	}, collect(t, cmd))
}

func TestKeyFlowVolunteer(t *testing.T) {
	f := newFake()
	a := newTestApp(t, f)
	snapshotsBefore := f.snapshotCalls

	press(t, a, "enter") // select North
	require.Equal(t, "North", a.State().CurrentGroup)
	assert.Contains(t, a.View(), "Nobody is going yet")

	press(t, a, "v")
	require.NotNil(t, a.modal)
	typeText(t, a, "Main St")
	press(t, a, "tab")
	typeText(t, a, "5pm")
	press(t, a, "enter")

	assert.Nil(t, a.modal)
	require.Len(t, f.volunteers, 1)
	assert.Equal(t, "g1", f.volunteers[0].GroupID)
	assert.Equal(t, snapshotsBefore+1, f.snapshotCalls)
	assert.Equal(t, state.RoleFetcher, a.State().Role)
	assert.Equal(t, state.AssignedRoleView, a.State().View())

	view := a.View()
	assert.Contains(t, view, "Your deliveries")
	assert.Contains(t, view, "Main St @ 5pm")
	assert.Contains(t, view, f.volunteers[0].OrderNumber+" posted")
}

func TestKeyFlowRequest(t *testing.T) {
	f := newFake()
	f.snapshot = []api.Volunteer{{ID: "v1", Username: "cy", GroupID: "g1", Location: "Market", Time: "9am", OrderNumber: "123456789012345"}}
	a := newTestApp(t, f)

	press(t, a, "enter")
	press(t, a, "r")
	require.NotNil(t, a.modal)
	typeText(t, a, "bread")
	press(t, a, "enter")

	require.Len(t, f.requests, 1)
	assert.Equal(t, "v1", f.requests[0].VolunteerID)
	assert.Equal(t, state.RoleReceiver, a.State().Role)
	view := a.View()
	assert.Contains(t, view, "Your requests")
	assert.Contains(t, view, "bread")
	assert.Contains(t, view, "from cy (Market @ 9am)")

	press(t, a, "esc")
	assert.Equal(t, state.GroupSelectionView, a.State().View())
}

func TestKeyFlowCreateGroupAndLogout(t *testing.T) {
	f := newFake()
	a := newTestApp(t, f)
	groupCalls := f.groupCalls

	press(t, a, "n")
	typeText(t, a, "East")
	press(t, a, "enter")
	assert.Equal(t, []string{"East"}, f.createdGroups)
	assert.Equal(t, groupCalls+1, f.groupCalls)
	assert.Len(t, a.State().Groups, 2)
	assert.Contains(t, a.View(), `group "East" created`)

	press(t, a, "L")
	assert.False(t, a.State().Session.LoggedIn)
	assert.Equal(t, 1, f.endCalls)
	assert.Contains(t, a.View(), "You are not logged in")
}

func TestViewsFollowRoute(t *testing.T) {
	f := newFake()
	f.authenticated = false
	a := newTestApp(t, f)
	assert.Contains(t, a.View(), "You are not logged in")

	f.authenticated = true
	press(t, a, "r")
	view := a.View()
	assert.Contains(t, view, "Hi, ada.")
	assert.Contains(t, view, "Please select a group.")
	assert.Contains(t, view, "North")

	a.Dispatch(state.SetRole{Role: state.RoleFetcher})
	assert.True(t, strings.Contains(a.View(), "Your deliveries"))
}

func TestKeyFlowVolunteerGroupRemovedWhileTyping(t *testing.T) {
	f := newFake()
	f.groups = append(f.groups, api.Group{ID: "g2", Name: "South"})
	a := newTestApp(t, f)

	press(t, a, "enter")
	require.Equal(t, "North", a.State().CurrentGroup)
	press(t, a, "v")
	typeText(t, a, "Main St")
	press(t, a, "tab")
	typeText(t, a, "5pm")

	a.Update(groupsMsg{groups: []api.Group{{ID: "g2", Name: "South"}}})
	press(t, a, "enter")

	assert.Empty(t, f.volunteers)
	assert.True(t, a.statusErr)
	assert.Contains(t, a.status, `group "North" not found`)
	assert.Contains(t, a.status, `did you mean "South"`)
	assert.NotContains(t, a.View(), "posting delivery")
	assert.Equal(t, state.GroupSelectionView, a.State().View())
	assert.Empty(t, a.State().CurrentGroup)
}
