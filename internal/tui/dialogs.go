package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/foodrun/internal/state"
)

// dialog is a modal overlay. Update reports true when the dialog closes.
// Dialogs keep only the text being typed; their intents leave as commands.
type dialog interface {
	Update(msg tea.Msg) (dialog, tea.Cmd, bool)
	View() string
}

func newInput(prompt, placeholder string) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = placeholder
	in.CharLimit = 120
	return in
}

// groupDialog collects a new group name.
type groupDialog struct {
	name textinput.Model
}

func newGroupDialog() *groupDialog {
	d := &groupDialog{name: newInput("Group name: ", "e.g. North Street")}
	d.name.Focus()
	return d
}

func (d *groupDialog) Update(msg tea.Msg) (dialog, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.Type {
		case tea.KeyEsc:
			return d, nil, true
		case tea.KeyEnter:
			name := strings.TrimSpace(d.name.Value())
			if name == "" {
				return d, nil, false
			}
			d.name.Reset()
			return d, emit(state.CreateGroup{Name: name}), true
		}
	}
	var cmd tea.Cmd
	d.name, cmd = d.name.Update(msg)
	return d, cmd, false
}

func (d *groupDialog) View() string {
	return titleStyle.Render("New group") + "\n" + d.name.View() + "\n" + mutedStyle.Render("[enter] Create  [esc] Cancel")
}

// volunteerDialog collects where and when a delivery runs.
type volunteerDialog struct {
	group    string
	inputs   []textinput.Model
	focus    int
	onSubmit func(orderNumber string) tea.Msg
}

const (
	fieldLocation = iota
	fieldTime
)

func newVolunteerDialog(group string, onSubmit func(orderNumber string) tea.Msg) *volunteerDialog {
	d := &volunteerDialog{
		group: group,
		inputs: []textinput.Model{
			newInput("Where are you going? ", "shop or address"),
			newInput("What time? ", "e.g. 5pm"),
		},
		onSubmit: onSubmit,
	}
	d.inputs[fieldLocation].Focus()
	return d
}

func (d *volunteerDialog) setFocus(i int) {
	d.inputs[d.focus].Blur()
	d.focus = (i + len(d.inputs)) % len(d.inputs)
	d.inputs[d.focus].Focus()
}

func (d *volunteerDialog) Update(msg tea.Msg) (dialog, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.Type {
		case tea.KeyEsc:
			return d, nil, true
		case tea.KeyTab, tea.KeyDown:
			d.setFocus(d.focus + 1)
			return d, nil, false
		case tea.KeyShiftTab, tea.KeyUp:
			d.setFocus(d.focus - 1)
			return d, nil, false
		case tea.KeyEnter:
			for i, in := range d.inputs {
				if strings.TrimSpace(in.Value()) == "" {
					d.setFocus(i)
					return d, nil, false
				}
			}
			return d, d.submit(), true
		}
	}
	var cmd tea.Cmd
	d.inputs[d.focus], cmd = d.inputs[d.focus].Update(msg)
	return d, cmd, false
}

// submit generates the order number, then emits the role change, the create
// and the caller's completion message in that order. It does not wait for
// the create to finish.
func (d *volunteerDialog) submit() tea.Cmd {
	order := state.NewOrderNumber()
	create := state.CreateVolunteer{
		Location:    strings.TrimSpace(d.inputs[fieldLocation].Value()),
		Time:        strings.TrimSpace(d.inputs[fieldTime].Value()),
		GroupName:   d.group,
		OrderNumber: order,
	}
	cmds := []tea.Cmd{
		emit(state.SetRole{Role: state.RoleFetcher}),
		emit(create),
	}
	if d.onSubmit != nil {
		done := d.onSubmit
		cmds = append(cmds, func() tea.Msg { return done(order) })
	}
	for i := range d.inputs {
		d.inputs[i].Reset()
	}
	d.setFocus(fieldLocation)
	return tea.Sequence(cmds...)
}

func (d *volunteerDialog) View() string {
	lines := []string{titleStyle.Render("Volunteer for " + d.group)}
	for _, in := range d.inputs {
		lines = append(lines, in.View())
	}
	lines = append(lines, mutedStyle.Render("[enter] Submit  [tab] Next field  [esc] Cancel"))
	return strings.Join(lines, "\n")
}

// requestInput collects a free-text food request for one slot.
type requestInput struct {
	volunteerID string
	label       string
	food        textinput.Model
}

func newRequestInput(volunteerID, label string) *requestInput {
	r := &requestInput{volunteerID: volunteerID, label: label, food: newInput("What do you want? ", "bread, milk...")}
	r.food.Focus()
	return r
}

func (r *requestInput) Update(msg tea.Msg) (dialog, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.Type {
		case tea.KeyEsc:
			return r, nil, true
		case tea.KeyEnter:
			text := strings.TrimSpace(r.food.Value())
			if text == "" {
				return r, nil, false
			}
			r.food.Reset()
			return r, tea.Sequence(
				emit(state.SetRole{Role: state.RoleReceiver}),
				emit(state.CreateRequest{VolunteerID: r.volunteerID, Text: text}),
			), true
		}
	}
	var cmd tea.Cmd
	r.food, cmd = r.food.Update(msg)
	return r, cmd, false
}

func (r *requestInput) View() string {
	return titleStyle.Render("Request from "+r.label) + "\n" + r.food.View() + "\n" + mutedStyle.Render("[enter] Request  [esc] Cancel")
}
