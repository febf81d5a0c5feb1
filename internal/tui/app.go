package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/foodrun/internal/api"
	"github.com/jask/foodrun/internal/config"
	"github.com/jask/foodrun/internal/state"
)

// App owns all client state. It is the only component that talks to the
// services and the only one that mutates the model; dialogs send it commands.
type App struct {
	ctx      context.Context
	services Services
	logger   *zap.Logger
	ui       config.UIConfig

	st    state.State
	epoch int
	// order number of the last volunteer create that was accepted
	lastPosted string

	groupCursor int
	slotCursor  int
	modal       dialog
	status      string
	statusErr   bool
	width       int
	height      int
}

func New(ctx context.Context, ui config.UIConfig, services Services, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		ctx:      ctx,
		services: services,
		logger:   logger,
		ui:       ui,
		st:       state.New(),
		width:    100,
		height:   32,
	}
}

// State returns a copy of the model.
func (a *App) State() state.State { return a.st }

// Init issues the three startup fetches. They are independent and may
// complete in any order.
func (a *App) Init() tea.Cmd {
	return a.refetch(state.AllSlices)
}

func (a *App) refetch(slices []state.Slice) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(slices))
	for _, s := range slices {
		switch s {
		case state.SliceSession:
			cmds = append(cmds, a.fetchSession())
		case state.SliceGroups:
			cmds = append(cmds, a.fetchGroups())
		case state.SliceSnapshot:
			cmds = append(cmds, a.fetchSnapshot())
		}
	}
	return tea.Batch(cmds...)
}

func (a *App) fetchSession() tea.Cmd {
	epoch := a.epoch
	return func() tea.Msg {
		st, err := a.services.Session.CheckSession(a.ctx)
		return sessionStatusMsg{epoch: epoch, status: st, err: err}
	}
}

func (a *App) fetchProfile() tea.Cmd {
	epoch := a.epoch
	return func() tea.Msg {
		p, err := a.services.Session.FetchProfile(a.ctx)
		return profileMsg{epoch: epoch, profile: p, err: err}
	}
}

func (a *App) fetchGroups() tea.Cmd {
	return func() tea.Msg {
		groups, err := a.services.Groups.ListGroups(a.ctx)
		return groupsMsg{groups: groups, err: err}
	}
}

func (a *App) fetchSnapshot() tea.Cmd {
	return func() tea.Msg {
		vols, err := a.services.Deliveries.ListSnapshot(a.ctx)
		return snapshotMsg{volunteers: vols, err: err}
	}
}

// Dispatch executes one command. Local transitions apply immediately; remote
// ones return a command whose completion triggers the invalidation rule.
func (a *App) Dispatch(cmd state.Command) tea.Cmd {
	if err := state.Validate(cmd); err != nil {
		a.reject(cmd, err)
		return nil
	}
	if state.NeedsIdentity(cmd) {
		if _, _, ok := a.st.Session.Identity(); !ok {
			err := state.ErrNotAuthenticated
			if a.st.Session.LoggedIn {
				err = state.ErrProfilePending
			}
			a.reject(cmd, err)
			return nil
		}
	}
	a.logger.Debug("dispatch", zap.String("command", cmd.Kind()), zap.Bool("remote", state.Remote(cmd)))

	if !state.Remote(cmd) {
		a.applyLocal(cmd)
		return a.refetch(cmd.Invalidates())
	}
	return a.send(cmd)
}

func (a *App) applyLocal(cmd state.Command) {
	switch c := cmd.(type) {
	case state.SelectGroup:
		a.st.CurrentGroup = c.Group
		a.slotCursor = 0
	case state.ClearSelectedGroup:
		a.st.CurrentGroup = ""
		a.slotCursor = 0
	case state.SetRole:
		a.st.Role = c.Role
	}
}

// send starts a server mutation. Invalidation waits for mutationDone.
func (a *App) send(cmd state.Command) tea.Cmd {
	switch c := cmd.(type) {
	case state.Logout:
		// session results already in flight must not undo the logout
		a.epoch++
		return a.mutate(c, func(ctx context.Context) error {
			return a.services.Session.EndSession(ctx)
		})
	case state.CreateGroup:
		return a.mutate(c, func(ctx context.Context) error {
			return a.services.Groups.CreateGroup(ctx, c.Name)
		})
	case state.CreateVolunteer:
		return a.createVolunteer(c)
	case state.CreateRequest:
		user, avatar, _ := a.st.Session.Identity()
		payload := api.RequestPayload{Username: user, AvatarRef: avatar, VolunteerID: c.VolunteerID, Text: c.Text}
		return a.mutate(c, func(ctx context.Context) error {
			return a.services.Deliveries.CreateRequest(ctx, payload)
		})
	}
	return nil
}

func (a *App) createVolunteer(c state.CreateVolunteer) tea.Cmd {
	groupID, ok := a.st.ResolveGroupID(c.GroupName)
	if !ok {
		miss := &state.LookupMissError{Name: c.GroupName, Suggestion: a.st.SuggestGroup(c.GroupName)}
		a.logger.Warn("group lookup miss", zap.String("group", c.GroupName), zap.String("suggestion", miss.Suggestion))
		// back to group selection so the user can pick a real group
		a.st.Role = state.RoleUndecided
		a.st.CurrentGroup = ""
		a.setError(miss)
		return nil
	}
	if c.OrderNumber == "" {
		c.OrderNumber = state.NewOrderNumber()
	}
	a.lastPosted = c.OrderNumber
	user, avatar, _ := a.st.Session.Identity()
	payload := api.VolunteerPayload{
		Username:    user,
		AvatarRef:   avatar,
		Location:    c.Location,
		Time:        c.Time,
		GroupID:     groupID,
		OrderNumber: c.OrderNumber,
	}
	return a.mutate(c, func(ctx context.Context) error {
		return a.services.Deliveries.CreateVolunteer(ctx, payload)
	})
}

func (a *App) mutate(cmd state.Command, call func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{cmd: cmd, err: call(a.ctx)}
	}
}

func (a *App) reject(cmd state.Command, err error) {
	a.logger.Warn("command rejected", zap.String("command", cmd.Kind()), zap.Error(err))
	a.setError(err)
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) setError(err error) {
	a.status = "error: " + err.Error()
	a.statusErr = true
}

func (a *App) fetchFailed(slice state.Slice, err error) {
	fe := &state.FetchError{Slice: slice, Err: err}
	a.logger.Warn("fetch failed", zap.String("slice", string(slice)), zap.Error(err))
	a.setError(fe)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case tea.KeyMsg:
		return a.handleKey(m)
	case sessionStatusMsg:
		if m.epoch != a.epoch {
			a.logger.Debug("stale session status dropped", zap.Int("epoch", m.epoch), zap.Int("current", a.epoch))
			return a, nil
		}
		if m.err != nil {
			a.fetchFailed(state.SliceSession, m.err)
			return a, nil
		}
		if a.st.SetAuthenticated(m.status.Authenticated) {
			return a, a.fetchProfile()
		}
	case profileMsg:
		if m.epoch != a.epoch {
			return a, nil
		}
		if m.err != nil {
			a.fetchFailed(state.SliceSession, m.err)
			return a, nil
		}
		a.st.ApplyProfile(m.profile)
	case groupsMsg:
		if m.err != nil {
			a.fetchFailed(state.SliceGroups, m.err)
			return a, nil
		}
		a.st.ReplaceGroups(m.groups)
		if a.groupCursor >= len(a.st.Groups) {
			a.groupCursor = 0
		}
	case snapshotMsg:
		if m.err != nil {
			a.fetchFailed(state.SliceSnapshot, m.err)
			return a, nil
		}
		a.st.ReplaceSnapshot(m.volunteers)
		if a.slotCursor >= len(a.st.CurrentGroupVolunteers()) {
			a.slotCursor = 0
		}
	case mutationDoneMsg:
		return a, a.mutationDone(m)
	case statusMsg:
		a.setStatus(string(m))
	case postingMsg:
		// a rejected create leaves its error on screen
		if m.order == a.lastPosted {
			a.setStatus(fmt.Sprintf("posting delivery %s...", m.order))
		}
	case state.Command:
		return a, a.Dispatch(m)
	}
	return a, nil
}

func (a *App) mutationDone(m mutationDoneMsg) tea.Cmd {
	if m.err != nil {
		me := &state.MutationError{Command: m.cmd.Kind(), Err: m.err}
		a.logger.Error("mutation failed", zap.String("command", m.cmd.Kind()), zap.Error(m.err))
		a.setError(me)
		// the logout dropped any profile still in flight; still logged in, so load it again
		if _, ok := m.cmd.(state.Logout); ok && a.st.Session.LoggedIn && a.st.Session.Username == "" {
			return a.fetchProfile()
		}
		return nil
	}
	a.logger.Info("mutation done", zap.String("command", m.cmd.Kind()))
	switch c := m.cmd.(type) {
	case state.Logout:
		a.st.LogOut()
		a.groupCursor, a.slotCursor = 0, 0
		a.modal = nil
		a.setStatus("logged out")
	case state.CreateGroup:
		a.setStatus(fmt.Sprintf("group %q created", c.Name))
	case state.CreateVolunteer:
		a.setStatus(fmt.Sprintf("delivery %s posted", c.OrderNumber))
	case state.CreateRequest:
		a.setStatus("request submitted")
	}
	return a.refetch(m.cmd.Invalidates())
}
