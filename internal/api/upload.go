package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/ihoflaz/opca-admin-dashboard/internal/metrics"
)

// UploadedImage is the backend's record of a stored image.
type UploadedImage struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// UploadImage sends a standalone image as multipart form data. The
// multipart writer supplies its own boundary content type, which replaces
// the client's JSON default for this request.
func (c *Client) UploadImage(ctx context.Context, filename string, image io.Reader) (*UploadedImage, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	part, err := w.CreateFormFile("image", filename)
	if err == nil {
		_, err = io.Copy(part, image)
	}
	if err == nil {
		err = w.Close()
	}
	if err != nil {
		rerr := &RequestError{Err: fmt.Errorf("building upload form: %w", err)}
		metrics.APIRequestFailures.WithLabelValues("construction").Inc()
		c.runInbound(nil, rerr)
		return nil, rerr
	}

	env, err := c.doMultipart(ctx, http.MethodPost, "/api/upload/image", w.FormDataContentType(), body.Bytes())
	if err != nil {
		return nil, err
	}
	img, err := decodeData[UploadedImage](env)
	if err != nil {
		return nil, err
	}
	return &img, nil
}
