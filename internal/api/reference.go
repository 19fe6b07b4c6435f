package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ihoflaz/opca-admin-dashboard/internal/domain"
)

// The parasite and digit reference endpoints offer GET, POST and PUT only;
// the backend has no DELETE for reference data.

// Parasites lists all parasite reference entries.
func (c *Client) Parasites(ctx context.Context) ([]domain.Parasite, error) {
	env, err := c.doJSON(ctx, http.MethodGet, "/api/parasites", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]domain.Parasite](env)
}

// ParasiteByType fetches one parasite entry by its type identifier.
func (c *Client) ParasiteByType(ctx context.Context, parasiteType string) (*domain.Parasite, error) {
	env, err := c.doJSON(ctx, http.MethodGet, "/api/parasites/"+url.PathEscape(parasiteType), nil, nil)
	if err != nil {
		return nil, err
	}
	p, err := decodeData[domain.Parasite](env)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateParasite adds a reference entry. Admin only.
func (c *Client) CreateParasite(ctx context.Context, p domain.Parasite) (*domain.Parasite, error) {
	env, err := c.doJSON(ctx, http.MethodPost, "/api/parasites", nil, p)
	if err != nil {
		return nil, err
	}
	created, err := decodeData[domain.Parasite](env)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateParasite replaces the entry stored under parasiteType. Admin only.
func (c *Client) UpdateParasite(ctx context.Context, parasiteType string, p domain.Parasite) (*domain.Parasite, error) {
	env, err := c.doJSON(ctx, http.MethodPut, "/api/parasites/"+url.PathEscape(parasiteType), nil, p)
	if err != nil {
		return nil, err
	}
	updated, err := decodeData[domain.Parasite](env)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Digits lists all digit reference entries.
func (c *Client) Digits(ctx context.Context) ([]domain.Digit, error) {
	env, err := c.doJSON(ctx, http.MethodGet, "/api/digits", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]domain.Digit](env)
}

// DigitByValue fetches one digit entry.
func (c *Client) DigitByValue(ctx context.Context, value int) (*domain.Digit, error) {
	env, err := c.doJSON(ctx, http.MethodGet, "/api/digits/"+strconv.Itoa(value), nil, nil)
	if err != nil {
		return nil, err
	}
	d, err := decodeData[domain.Digit](env)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateDigit adds a digit entry. Admin only.
func (c *Client) CreateDigit(ctx context.Context, d domain.Digit) (*domain.Digit, error) {
	env, err := c.doJSON(ctx, http.MethodPost, "/api/digits", nil, d)
	if err != nil {
		return nil, err
	}
	created, err := decodeData[domain.Digit](env)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateDigit replaces the entry for value. Admin only.
func (c *Client) UpdateDigit(ctx context.Context, value int, d domain.Digit) (*domain.Digit, error) {
	env, err := c.doJSON(ctx, http.MethodPut, "/api/digits/"+strconv.Itoa(value), nil, d)
	if err != nil {
		return nil, err
	}
	updated, err := decodeData[domain.Digit](env)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
