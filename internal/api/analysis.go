package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ihoflaz/opca-admin-dashboard/internal/domain"
	"github.com/ihoflaz/opca-admin-dashboard/internal/metrics"
)

// HistoryParams filter the caller's own analysis history.
type HistoryParams struct {
	Page      int
	Limit     int
	Type      domain.AnalysisType
	StartDate string
	EndDate   string
}

func (p HistoryParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Type != "" {
		q.Set("type", string(p.Type))
	}
	if p.StartDate != "" {
		q.Set("startDate", p.StartDate)
	}
	if p.EndDate != "" {
		q.Set("endDate", p.EndDate)
	}
	return q
}

// AnalysisHistory lists the authenticated user's analyses.
func (c *Client) AnalysisHistory(ctx context.Context, p HistoryParams) (*domain.Page[domain.Analysis], error) {
	env, err := c.doJSON(ctx, http.MethodGet, "/api/analysis/history", p.values(), nil)
	if err != nil {
		return nil, err
	}
	page, err := decodeData[domain.Page[domain.Analysis]](env)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// AnalysisByID fetches one analysis result.
func (c *Client) AnalysisByID(ctx context.Context, id string) (*domain.Analysis, error) {
	env, err := c.doJSON(ctx, http.MethodGet, "/api/analysis/results/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	a, err := decodeData[domain.Analysis](env)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// AnalysisUpload bundles a locally processed analysis image and its
// classifier output for submission.
type AnalysisUpload struct {
	Filename         string
	Image            io.Reader
	ParasiteResults  []domain.ParasiteResult
	DigitResults     []domain.DigitResult
	ProcessingTimeMs int
	Location         string
	Notes            string
	ModelName        string
	ModelVersion     string
	DeviceInfo       string
}

// UploadParasiteAnalysis submits a parasite analysis as multipart form data.
func (c *Client) UploadParasiteAnalysis(ctx context.Context, up AnalysisUpload) (*domain.Analysis, error) {
	return c.uploadAnalysis(ctx, "/api/analysis/mobile/parasite", up, up.ParasiteResults)
}

// UploadMNISTAnalysis submits an MNIST analysis as multipart form data.
func (c *Client) UploadMNISTAnalysis(ctx context.Context, up AnalysisUpload) (*domain.Analysis, error) {
	return c.uploadAnalysis(ctx, "/api/analysis/mobile/mnist", up, up.DigitResults)
}

func (c *Client) uploadAnalysis(ctx context.Context, path string, up AnalysisUpload, results any) (*domain.Analysis, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	if err := writeAnalysisForm(w, up, results); err != nil {
		rerr := &RequestError{Err: err}
		metrics.APIRequestFailures.WithLabelValues("construction").Inc()
		c.runInbound(nil, rerr)
		return nil, rerr
	}

	env, err := c.doMultipart(ctx, http.MethodPost, path, w.FormDataContentType(), body.Bytes())
	if err != nil {
		return nil, err
	}
	a, err := decodeData[domain.Analysis](env)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func writeAnalysisForm(w *multipart.Writer, up AnalysisUpload, results any) error {
	part, err := w.CreateFormFile("image", up.Filename)
	if err != nil {
		return fmt.Errorf("creating image part: %w", err)
	}
	if _, err := io.Copy(part, up.Image); err != nil {
		return fmt.Errorf("copying image: %w", err)
	}

	rawResults, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}

	fields := map[string]string{
		"results":          string(rawResults),
		"processingTimeMs": strconv.Itoa(up.ProcessingTimeMs),
		"location":         up.Location,
		"notes":            up.Notes,
		"modelName":        up.ModelName,
		"modelVersion":     up.ModelVersion,
		"deviceInfo":       up.DeviceInfo,
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("writing field %s: %w", name, err)
		}
	}
	return w.Close()
}

// BatchUpload submits several locally stored analyses in one call.
func (c *Client) BatchUpload(ctx context.Context, req domain.BatchUploadRequest) (*domain.BatchUploadResult, error) {
	env, err := c.doJSON(ctx, http.MethodPost, "/api/analysis/batch-upload", nil, req)
	if err != nil {
		return nil, err
	}
	res, err := decodeData[domain.BatchUploadResult](env)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// AdminAnalysesParams filter the admin listing across all users.
type AdminAnalysesParams struct {
	Page              int
	Limit             int
	Type              domain.AnalysisType
	UserID            string
	ProcessedOnMobile *bool
	StartDate         string
	EndDate           string
	SortBy            string
	SortOrder         string
}

func (p AdminAnalysesParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Type != "" {
		q.Set("type", string(p.Type))
	}
	if p.UserID != "" {
		q.Set("userId", p.UserID)
	}
	if p.ProcessedOnMobile != nil {
		q.Set("processedOnMobile", strconv.FormatBool(*p.ProcessedOnMobile))
	}
	if p.StartDate != "" {
		q.Set("startDate", p.StartDate)
	}
	if p.EndDate != "" {
		q.Set("endDate", p.EndDate)
	}
	if p.SortBy != "" {
		q.Set("sortBy", p.SortBy)
	}
	if p.SortOrder != "" {
		q.Set("sortOrder", p.SortOrder)
	}
	return q
}

// AllAnalyses lists analyses across every user. Admin only.
func (c *Client) AllAnalyses(ctx context.Context, p AdminAnalysesParams) (*domain.Page[domain.Analysis], error) {
	env, err := c.doJSON(ctx, http.MethodGet, "/api/analysis/admin/all", p.values(), nil)
	if err != nil {
		return nil, err
	}
	page, err := decodeData[domain.Page[domain.Analysis]](env)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// AnalysisStats returns the admin dashboard aggregates.
func (c *Client) AnalysisStats(ctx context.Context) (*domain.AnalysisStats, error) {
	env, err := c.doJSON(ctx, http.MethodGet, "/api/analysis/admin/stats", nil, nil)
	if err != nil {
		return nil, err
	}
	stats, err := decodeData[domain.AnalysisStats](env)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
