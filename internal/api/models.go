package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ihoflaz/opca-admin-dashboard/internal/domain"
)

func modelPath(modelType domain.AnalysisType, name, version, suffix string) string {
	return "/api/models/" + url.PathEscape(string(modelType)) + "/" + url.PathEscape(name) + "/" + url.PathEscape(version) + suffix
}

// Models lists every published model version.
func (c *Client) Models(ctx context.Context) ([]domain.ModelVersion, error) {
	env, err := c.doJSON(ctx, http.MethodGet, "/api/models", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]domain.ModelVersion](env)
}

// ModelMetadata fetches the metadata of one model build.
func (c *Client) ModelMetadata(ctx context.Context, modelType domain.AnalysisType, name, version string) (*domain.ModelVersion, error) {
	env, err := c.doJSON(ctx, http.MethodGet, modelPath(modelType, name, version, "/metadata"), nil, nil)
	if err != nil {
		return nil, err
	}
	m, err := decodeData[domain.ModelVersion](env)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CheckModelUpdate asks whether a newer build exists for the given model.
func (c *Client) CheckModelUpdate(ctx context.Context, modelType domain.AnalysisType, name, version string) (*domain.ModelUpdateCheck, error) {
	env, err := c.doJSON(ctx, http.MethodGet, modelPath(modelType, name, version, "/check-update"), nil, nil)
	if err != nil {
		return nil, err
	}
	u, err := decodeData[domain.ModelUpdateCheck](env)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
