package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihoflaz/opca-admin-dashboard/internal/domain"
	"github.com/ihoflaz/opca-admin-dashboard/internal/tokenstore"
)

func okEnvelope(data any) []byte {
	raw, _ := json.Marshal(data)
	env, _ := json.Marshal(map[string]any{"success": true, "data": json.RawMessage(raw)})
	return env
}

func TestClient_DefaultBaseURL(t *testing.T) {
	c := NewClient("", tokenstore.NewMemoryStore())
	assert.Equal(t, "http://localhost:5002", c.BaseURL())
}

func TestClient_BearerInjection(t *testing.T) {
	var gotAuth, gotContentType, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write(okEnvelope(domain.User{ID: "u1"}))
	}))
	defer server.Close()

	store := tokenstore.NewMemoryStore()
	store.Save(tokenstore.KindAccessToken, "tok-123")

	c := NewClient(server.URL, store)
	_, err := c.Me(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Empty(t, gotContentType, "GET without body must not claim a content type")
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_NoTokenNoAuthHeader(t *testing.T) {
	var sawAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		w.Write(okEnvelope(domain.User{ID: "u1"}))
	}))
	defer server.Close()

	c := NewClient(server.URL, tokenstore.NewMemoryStore())
	_, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.False(t, sawAuth)
}

func TestClient_JSONContentTypeOnPost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "vet@example.com", req["email"])
		assert.Equal(t, "hunter2", req["password"])

		w.Write(okEnvelope(domain.LoginData{
			Token:        "abc",
			RefreshToken: "def",
			User:         &domain.User{ID: "u1", Role: domain.RoleUser},
		}))
	}))
	defer server.Close()

	c := NewClient(server.URL, tokenstore.NewMemoryStore())
	data, err := c.Login(context.Background(), "vet@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "abc", data.Token)
	assert.Equal(t, "def", data.RefreshToken)
	assert.Equal(t, domain.RoleUser, data.User.Role)
}

func TestClient_MultipartOverridesContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		assert.True(t, strings.HasPrefix(ct, "multipart/form-data; boundary="), "got content type %q", ct)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("image")
		require.NoError(t, err)
		assert.Equal(t, "sample.jpg", header.Filename)

		w.Write(okEnvelope(UploadedImage{URL: "https://cdn/img.jpg"}))
	}))
	defer server.Close()

	c := NewClient(server.URL, tokenstore.NewMemoryStore())
	img, err := c.UploadImage(context.Background(), "sample.jpg", strings.NewReader("fake-jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/img.jpg", img.URL)
}

func TestClient_StatusErrorCarriesBackendMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"bad credentials"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, tokenstore.NewMemoryStore())
	_, err := c.Login(context.Background(), "vet@example.com", "wrong")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Equal(t, "bad credentials", statusErr.Message)
	assert.Equal(t, "bad credentials", UserMessage(err))
}

func TestClient_ConnectivityError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", tokenstore.NewMemoryStore(), WithTimeout(time.Second))
	_, err := c.Me(context.Background())
	require.Error(t, err)

	var connErr *ConnectivityError
	require.ErrorAs(t, err, &connErr)

	// The connectivity message must be distinguishable from a rejection.
	assert.Contains(t, UserMessage(err), "Cannot reach")
}

func TestClient_RequestConstructionError(t *testing.T) {
	// An invalid percent escape in the base URL makes request construction
	// fail before anything is sent.
	c := NewClient("http://example.com/%zz", tokenstore.NewMemoryStore())
	_, err := c.Me(context.Background())
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Contains(t, UserMessage(err), "client-side")
}

func TestClient_MalformedEnvelope(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing success flag", `{"data":{"token":"abc"}}`},
		{"missing data", `{"success":true}`},
		{"data without token", `{"success":true,"data":{"refreshToken":"def","user":{"id":"u1"}}}`},
		{"data without user", `{"success":true,"data":{"token":"abc","refreshToken":"def"}}`},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewClient(server.URL, tokenstore.NewMemoryStore())
			_, err := c.Login(context.Background(), "a@b.c", "pw")
			require.Error(t, err)

			var malformed *MalformedResponseError
			assert.ErrorAs(t, err, &malformed)
		})
	}
}

func TestClient_ResponseStageObservesClassifiedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	}))
	defer server.Close()

	var observed []error
	c := NewClient(server.URL, tokenstore.NewMemoryStore(), WithResponseStage(func(resp *http.Response, err error) {
		observed = append(observed, err)
	}))

	_, err := c.Me(context.Background())
	require.Error(t, err)

	require.Len(t, observed, 1)
	var statusErr *StatusError
	assert.ErrorAs(t, observed[0], &statusErr)
}

func TestClient_RequestStageRunsAfterAuth(t *testing.T) {
	var order []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(okEnvelope(domain.User{ID: "u1"}))
	}))
	defer server.Close()

	store := tokenstore.NewMemoryStore()
	store.Save(tokenstore.KindAccessToken, "tok")

	c := NewClient(server.URL, store, WithRequestStage(func(req *http.Request) {
		if req.Header.Get("Authorization") != "" {
			order = append(order, "auth-already-set")
		}
	}))

	_, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"auth-already-set"}, order)
}

func TestClient_ListQueryParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "20", q.Get("limit"))
		assert.Equal(t, "veterinarian", q.Get("role"))
		assert.Equal(t, "smith", q.Get("search"))

		w.Write(okEnvelope(domain.Page[domain.User]{
			Data:       []domain.User{{ID: "u1"}},
			Pagination: domain.Pagination{Total: 1, CurrentPage: 2, TotalPages: 1, Limit: 20},
		}))
	}))
	defer server.Close()

	c := NewClient(server.URL, tokenstore.NewMemoryStore())
	page, err := c.Users(context.Background(), ListUsersParams{
		Page: 2, Limit: 20, Role: domain.RoleVeterinarian, Search: "smith",
	})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, 2, page.Pagination.CurrentPage)
}

func TestClient_AnalysisUploadForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "parasite-model", r.FormValue("modelName"))
		assert.Equal(t, "1.2.0", r.FormValue("modelVersion"))
		assert.Equal(t, "250", r.FormValue("processingTimeMs"))

		var results []domain.ParasiteResult
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("results")), &results))
		require.Len(t, results, 1)
		assert.Equal(t, "giardia", results[0].Type)

		w.Write(okEnvelope(domain.Analysis{ID: "a1", AnalysisType: domain.AnalysisParasite}))
	}))
	defer server.Close()

	c := NewClient(server.URL, tokenstore.NewMemoryStore())
	a, err := c.UploadParasiteAnalysis(context.Background(), AnalysisUpload{
		Filename:         "scan.jpg",
		Image:            strings.NewReader("img"),
		ParasiteResults:  []domain.ParasiteResult{{Type: "giardia", Confidence: 0.93}},
		ProcessingTimeMs: 250,
		ModelName:        "parasite-model",
		ModelVersion:     "1.2.0",
		DeviceInfo:       "test-device",
	})
	require.NoError(t, err)
	assert.Equal(t, "a1", a.ID)
}
