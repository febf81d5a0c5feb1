package tui

import (
	"context"

	"github.com/jask/foodrun/internal/api"
)

// SessionService checks, describes and ends the server session.
type SessionService interface {
	CheckSession(ctx context.Context) (api.SessionStatus, error)
	FetchProfile(ctx context.Context) (api.Profile, error)
	EndSession(ctx context.Context) error
}

// GroupService lists and creates groups.
type GroupService interface {
	ListGroups(ctx context.Context) ([]api.Group, error)
	CreateGroup(ctx context.Context, name string) error
}

// DeliveryService lists the volunteer snapshot and creates slots and requests.
type DeliveryService interface {
	ListSnapshot(ctx context.Context) ([]api.Volunteer, error)
	CreateVolunteer(ctx context.Context, p api.VolunteerPayload) error
	CreateRequest(ctx context.Context, p api.RequestPayload) error
}

type Services struct {
	Session    SessionService
	Groups     GroupService
	Deliveries DeliveryService
}

// NewServices uses one client for every contract.
func NewServices(c *api.Client) Services {
	return Services{Session: c, Groups: c, Deliveries: c}
}
