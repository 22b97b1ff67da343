package backend

import (
	"context"

	"github.com/yourname/moveup/internal"
)

// FetchUserProfile replaces the cached profile wholesale; there is no
// partial merge on the client.
func (c *Client) FetchUserProfile(ctx context.Context, userID string) (*internal.UserProfile, error) {
	var profile internal.UserProfile
	if err := c.getJSON(ctx, "/api/user/"+userID, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) FetchMetricTypes(ctx context.Context) ([]internal.MetricType, error) {
	var types []internal.MetricType
	if err := c.getJSON(ctx, "/api/datatype", &types); err != nil {
		return nil, err
	}
	return types, nil
}
