package api

import (
	"context"
	"net/http"
)

// ListGroups returns every group.
func (c *Client) ListGroups(ctx context.Context) ([]Group, error) {
	var out envelope[[]Group]
	if err := c.do(ctx, http.MethodGet, pathGroups, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateGroup creates a group. The new id is not returned; callers refetch.
func (c *Client) CreateGroup(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, pathGroups, envelope[groupPayload]{Data: groupPayload{GroupName: name}}, nil)
}
