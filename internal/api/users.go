package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ihoflaz/opca-admin-dashboard/internal/domain"
)

// ListUsersParams filter and sort the admin user listing.
type ListUsersParams struct {
	Page      int
	Limit     int
	Role      domain.Role
	Search    string
	SortBy    string
	SortOrder string
}

func (p ListUsersParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Role != "" {
		q.Set("role", string(p.Role))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.SortBy != "" {
		q.Set("sortBy", p.SortBy)
	}
	if p.SortOrder != "" {
		q.Set("sortOrder", p.SortOrder)
	}
	return q
}

// Users lists accounts with pagination. Admin only.
func (c *Client) Users(ctx context.Context, p ListUsersParams) (*domain.Page[domain.User], error) {
	env, err := c.doJSON(ctx, http.MethodGet, "/api/users", p.values(), nil)
	if err != nil {
		return nil, err
	}
	page, err := decodeData[domain.Page[domain.User]](env)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// UserByID fetches one account.
func (c *Client) UserByID(ctx context.Context, id string) (*domain.User, error) {
	env, err := c.doJSON(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	u, err := decodeData[domain.User](env)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser adds an account. Admin only.
func (c *Client) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	env, err := c.doJSON(ctx, http.MethodPost, "/api/users", nil, req)
	if err != nil {
		return nil, err
	}
	u, err := decodeData[domain.User](env)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser modifies an account. Admin only.
func (c *Client) UpdateUser(ctx context.Context, id string, req domain.UpdateUserRequest) (*domain.User, error) {
	env, err := c.doJSON(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id), nil, req)
	if err != nil {
		return nil, err
	}
	u, err := decodeData[domain.User](env)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser removes an account. Admin only.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id), nil, nil)
	return err
}

// UserStats returns account aggregates for the dashboard. Admin only.
func (c *Client) UserStats(ctx context.Context) (*domain.UserStats, error) {
	env, err := c.doJSON(ctx, http.MethodGet, "/api/users/stats", nil, nil)
	if err != nil {
		return nil, err
	}
	stats, err := decodeData[domain.UserStats](env)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
