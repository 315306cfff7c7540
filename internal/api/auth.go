package api

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a bearer token and attaches it to
// the client for subsequent requests.
func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &out); err != nil {
		return LoginResponse{}, err
	}
	c.SetToken(out.Token)
	return out, nil
}

// DashboardStats fetches the dashboard summary. Older backend
// revisions lack the endpoint; that surfaces as ErrNotFound and the
// stats service computes the figures from the list endpoints instead.
func (c *Client) DashboardStats(ctx context.Context) (DashboardStats, error) {
	var out DashboardStats
	if err := c.do(ctx, http.MethodGet, "/statistics/dashboard", nil, &out); err != nil {
		return DashboardStats{}, err
	}
	return out, nil
}
