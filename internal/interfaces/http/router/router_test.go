package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-image-studio/internal/application/generation"
	"z-image-studio/internal/config"
	"z-image-studio/internal/infrastructure/stability"
	"z-image-studio/internal/interfaces/http/handler"
)

type stubUpstream struct {
	resp *stability.TextToImageResponse
	err  error
}

func (s *stubUpstream) Name() string { return "stub" }

func (s *stubUpstream) TextToImage(context.Context, string, *stability.TextToImageRequest) (*stability.TextToImageResponse, error) {
	return s.resp, s.err
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "z-image-studio"
	cfg.App.Env = "test"
	cfg.Server.HTTP.MaxBodyBytes = 10 << 20
	cfg.Observability.Metrics.Enabled = true
	cfg.Observability.Metrics.Path = "/metrics"
	return cfg
}

func newTestRouter(t *testing.T, cfg *config.Config, upstream generation.UpstreamClient, apiKey string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := generation.NewService(upstream, apiKey)
	r := New(cfg,
		handler.NewGenerationHandler(svc),
		handler.NewHealthHandler(svc.Configured, "v1.2.3"),
	)
	return r.Engine()
}

func do(engine *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestRouter_Health(t *testing.T) {
	engine := newTestRouter(t, testConfig(), &stubUpstream{}, "sk-test")

	w := do(engine, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "AI Image Generator Backend is running", body["message"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_Ready(t *testing.T) {
	t.Run("configured", func(t *testing.T) {
		engine := newTestRouter(t, testConfig(), &stubUpstream{}, "sk-test")
		w := do(engine, http.MethodGet, "/ready", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", decode(t, w)["status"])
	})

	t.Run("missing key is degraded", func(t *testing.T) {
		engine := newTestRouter(t, testConfig(), &stubUpstream{}, "")
		w := do(engine, http.MethodGet, "/ready", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "degraded", decode(t, w)["status"])
	})

	t.Run("live", func(t *testing.T) {
		engine := newTestRouter(t, testConfig(), &stubUpstream{}, "")
		w := do(engine, http.MethodGet, "/live", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRouter_GenerateImage(t *testing.T) {
	upstream := &stubUpstream{resp: &stability.TextToImageResponse{
		Artifacts: []stability.Artifact{{Base64: "iVBORw0KGgo=", Seed: 987654321}},
	}}
	engine := newTestRouter(t, testConfig(), upstream, "sk-test")

	w := do(engine, http.MethodPost, "/generate-image", `{"prompt":"A red fox in snow"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgo=", body["image"])
	assert.Equal(t, "A red fox in snow", body["prompt"])
	assert.Equal(t, float64(987654321), body["seed"])
}

func TestRouter_GenerateImage_Errors(t *testing.T) {
	tests := []struct {
		name       string
		upstream   *stubUpstream
		apiKey     string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "empty prompt",
			upstream:   &stubUpstream{},
			apiKey:     "sk-test",
			body:       `{"prompt":"   "}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Prompt is required",
		},
		{
			name:       "missing prompt field",
			upstream:   &stubUpstream{},
			apiKey:     "sk-test",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Prompt is required",
		},
		{
			name:       "malformed body",
			upstream:   &stubUpstream{},
			apiKey:     "sk-test",
			body:       `{"prompt":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Prompt is required",
		},
		{
			name:       "non-string prompt",
			upstream:   &stubUpstream{},
			apiKey:     "sk-test",
			body:       `{"prompt":42}`,
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to generate image. Please try again.",
		},
		{
			name:       "missing api key",
			upstream:   &stubUpstream{},
			apiKey:     "",
			body:       `{"prompt":"a castle"}`,
			wantStatus: http.StatusInternalServerError,
			wantError:  "Stability AI API key not configured",
		},
		{
			name:       "upstream unauthorized",
			upstream:   &stubUpstream{err: &stability.StatusError{StatusCode: http.StatusUnauthorized}},
			apiKey:     "sk-bad",
			body:       `{"prompt":"a castle"}`,
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid API key. Please check your Stability AI API key.",
		},
		{
			name:       "upstream rate limited",
			upstream:   &stubUpstream{err: &stability.StatusError{StatusCode: http.StatusTooManyRequests}},
			apiKey:     "sk-test",
			body:       `{"prompt":"a castle"}`,
			wantStatus: http.StatusTooManyRequests,
			wantError:  "Rate limit exceeded. Please try again later.",
		},
		{
			name:       "upstream rejected",
			upstream:   &stubUpstream{err: &stability.StatusError{StatusCode: http.StatusBadRequest, Message: "invalid prompt"}},
			apiKey:     "sk-test",
			body:       `{"prompt":"a castle"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid prompt",
		},
		{
			name:       "no artifacts",
			upstream:   &stubUpstream{resp: &stability.TextToImageResponse{}},
			apiKey:     "sk-test",
			body:       `{"prompt":"a castle"}`,
			wantStatus: http.StatusInternalServerError,
			wantError:  "No image generated",
		},
		{
			name:       "upstream server error",
			upstream:   &stubUpstream{err: &stability.StatusError{StatusCode: http.StatusBadGateway}},
			apiKey:     "sk-test",
			body:       `{"prompt":"a castle"}`,
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to generate image. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestRouter(t, testConfig(), tt.upstream, tt.apiKey)

			w := do(engine, http.MethodPost, "/generate-image", tt.body, nil)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			body := decode(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}

func TestRouter_BodyLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Server.HTTP.MaxBodyBytes = 32
	engine := newTestRouter(t, cfg, &stubUpstream{}, "sk-test")

	w := do(engine, http.MethodPost, "/generate-image", `{"prompt":"`+strings.Repeat("x", 64)+`"}`, nil)
	require.Equal(t, http.StatusInternalServerError, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Internal server error", body["error"])
}

func TestRouter_NotFound(t *testing.T) {
	engine := newTestRouter(t, testConfig(), &stubUpstream{}, "sk-test")

	for _, path := range []string{"/nope", "/generate-image/extra", "/api/v1/images"} {
		w := do(engine, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusNotFound, w.Code, path)

		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Endpoint not found", body["error"])
	}
}

func TestRouter_PanicRecovery(t *testing.T) {
	cfg := testConfig()
	gin.SetMode(gin.TestMode)
	r := New(cfg,
		handler.NewGenerationHandler(panicGenerator{}),
		handler.NewHealthHandler(func() bool { return true }, ""),
	)

	w := do(r.Engine(), http.MethodPost, "/generate-image", `{"prompt":"boom"}`, nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Internal server error", body["error"])
}

type panicGenerator struct{}

func (panicGenerator) Generate(context.Context, string) (*generation.Result, error) {
	panic("unexpected")
}

func TestRouter_CORS(t *testing.T) {
	t.Run("single configured origin", func(t *testing.T) {
		cfg := testConfig()
		cfg.Security.CORS.FrontendURL = "http://localhost:5173"
		upstream := &stubUpstream{resp: &stability.TextToImageResponse{
			Artifacts: []stability.Artifact{{Base64: "iVBORw0KGgo=", Seed: 7}},
		}}
		engine := newTestRouter(t, cfg, upstream, "sk-test")

		w := do(engine, http.MethodGet, "/health", "", map[string]string{"Origin": "http://localhost:5173"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

		w = do(engine, http.MethodGet, "/health", "", map[string]string{"Origin": "http://evil.example"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))

		w = do(engine, http.MethodPost, "/generate-image", `{"prompt":"a castle"}`, map[string]string{"Origin": "http://evil.example"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("any origin reflected when unset", func(t *testing.T) {
		engine := newTestRouter(t, testConfig(), &stubUpstream{}, "sk-test")

		w := do(engine, http.MethodGet, "/health", "", map[string]string{"Origin": "http://anywhere.example"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://anywhere.example", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight", func(t *testing.T) {
		engine := newTestRouter(t, testConfig(), &stubUpstream{}, "sk-test")

		w := do(engine, http.MethodOptions, "/generate-image", "", map[string]string{
			"Origin":                         "http://localhost:3000",
			"Access-Control-Request-Method":  "POST",
			"Access-Control-Request-Headers": "Content-Type",
		})
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	})
}

func TestRouter_Metrics(t *testing.T) {
	engine := newTestRouter(t, testConfig(), &stubUpstream{}, "sk-test")

	_ = do(engine, http.MethodGet, "/health", "", nil)
	_ = do(engine, http.MethodGet, "/no-such-route", "", nil)
	_ = do(engine, http.MethodGet, "/metrics", "", nil)
	w := do(engine, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	out := w.Body.String()
	assert.Contains(t, out, `z_image_http_requests_total{method="GET",path="/health",status="200"}`)
	assert.Contains(t, out, `z_image_http_requests_total{method="GET",path="unmatched",status="404"}`)
	assert.Contains(t, out, "z_image_http_response_size_bytes")
	assert.NotContains(t, out, `path="/metrics"`)
	assert.NotContains(t, out, "/no-such-route")
}
