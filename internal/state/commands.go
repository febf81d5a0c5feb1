package state

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Slice names an independently fetched part of the model.
type Slice string

const (
	SliceSession  Slice = "session"
	SliceGroups   Slice = "groups"
	SliceSnapshot Slice = "snapshot"
)

// AllSlices lists every slice in fetch order.
var AllSlices = []Slice{SliceSession, SliceGroups, SliceSnapshot}

// Command is a write or transition intent. Leaf components emit commands; only
// the controller executes them.
type Command interface {
	// Kind identifies the command in logs.
	Kind() string
	// Invalidates lists the slices to refetch after the command succeeds.
	Invalidates() []Slice
}

// CreateGroup adds a group by name.
type CreateGroup struct {
	Name string `validate:"required"`
}

// CreateVolunteer offers a delivery slot in the named group.
type CreateVolunteer struct {
	Location  string `validate:"required"`
	Time      string `validate:"required"`
	GroupName string `validate:"required"`
	// OrderNumber is generated by the controller when empty.
	OrderNumber string `validate:"omitempty,len=15,numeric"`
}

// CreateRequest attaches a food request to a slot.
type CreateRequest struct {
	VolunteerID string `validate:"required"`
	Text        string `validate:"required"`
}

// Logout ends the server session.
type Logout struct{}

// RefreshSession re-runs the session check, e.g. after logging in through the browser.
type RefreshSession struct{}

// Refresh refetches every slice.
type Refresh struct{}

// SelectGroup opens the delivery board of a group.
type SelectGroup struct {
	Group string `validate:"required"`
}

// ClearSelectedGroup goes back to the group list.
type ClearSelectedGroup struct{}

// SetRole locks the session into fetching or receiving, or releases it.
type SetRole struct {
	Role Role `validate:"required,oneof=undecided fetcher receiver"`
}

func (CreateGroup) Kind() string        { return "create-group" }
func (CreateVolunteer) Kind() string    { return "create-volunteer" }
func (CreateRequest) Kind() string      { return "create-request" }
func (Logout) Kind() string             { return "logout" }
func (RefreshSession) Kind() string     { return "refresh-session" }
func (Refresh) Kind() string            { return "refresh" }
func (SelectGroup) Kind() string        { return "select-group" }
func (ClearSelectedGroup) Kind() string { return "clear-selected-group" }
func (SetRole) Kind() string            { return "set-role" }

func (CreateGroup) Invalidates() []Slice        { return []Slice{SliceGroups} }
func (CreateVolunteer) Invalidates() []Slice    { return []Slice{SliceSnapshot} }
func (CreateRequest) Invalidates() []Slice      { return []Slice{SliceSnapshot} }
func (Logout) Invalidates() []Slice             { return nil }
func (RefreshSession) Invalidates() []Slice     { return []Slice{SliceSession} }
func (Refresh) Invalidates() []Slice            { return AllSlices }
func (SelectGroup) Invalidates() []Slice        { return nil }
func (ClearSelectedGroup) Invalidates() []Slice { return nil }
func (SetRole) Invalidates() []Slice            { return nil }

// Remote reports whether cmd needs a server round trip before its
// invalidations run.
func Remote(cmd Command) bool {
	switch cmd.(type) {
	case CreateGroup, CreateVolunteer, CreateRequest, Logout:
		return true
	}
	return false
}

// NeedsIdentity reports whether cmd sends the user's identity and therefore
// requires a logged-in session.
func NeedsIdentity(cmd Command) bool {
	switch cmd.(type) {
	case CreateGroup, CreateVolunteer, CreateRequest:
		return true
	}
	return false
}

var validate = validator.New()

// Validate checks a command's fields.
func Validate(cmd Command) error {
	if err := validate.Struct(cmd); err != nil {
		return fmt.Errorf("invalid %s: %w", cmd.Kind(), err)
	}
	return nil
}
