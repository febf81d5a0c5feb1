package api

import (
	"context"
	"net/http"
)

// ListSnapshot returns every volunteer slot with its nested requests.
func (c *Client) ListSnapshot(ctx context.Context) ([]Volunteer, error) {
	var out envelope[[]Volunteer]
	if err := c.do(ctx, http.MethodGet, pathVolunteer, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) CreateVolunteer(ctx context.Context, p VolunteerPayload) error {
	return c.do(ctx, http.MethodPost, pathVolunteer, envelope[VolunteerPayload]{Data: p}, nil)
}

func (c *Client) CreateRequest(ctx context.Context, p RequestPayload) error {
	return c.do(ctx, http.MethodPost, pathRequest, envelope[RequestPayload]{Data: p}, nil)
}
