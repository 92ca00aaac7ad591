package detection

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestRouter(model *fakeModel, configured bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := NewService(model, "gemini", "gemini-2.5-flash", configured, 5*time.Second)
	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func multipartBody(t *testing.T, fieldFile []byte, filename, analysisType string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if fieldFile != nil {
		fw, err := mw.CreateFormFile("image", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(fieldFile); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if analysisType != "" {
		if err := mw.WriteField("type", analysisType); err != nil {
			t.Fatalf("write type field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func postAnalyze(t *testing.T, router *gin.Engine, body *bytes.Buffer, contentType string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var payload map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response json: %v (body %q)", err, resp.Body.String())
	}
	return resp, payload
}

func TestAnalyzeEndpointSuccess(t *testing.T) {
	model := &fakeModel{reply: "Probability: 85%. Shows strong generator artifacts."}
	router := newTestRouter(model, true)

	body, ct := multipartBody(t, pngBytes(t, 200, 200), "photo.png", "")
	resp, payload := postAnalyze(t, router, body, ct)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", resp.Code, resp.Body.String())
	}
	if payload["success"] != true {
		t.Fatalf("expected success true: %v", payload)
	}
	if payload["probability"] != float64(85) {
		t.Fatalf("probability = %v, want 85", payload["probability"])
	}
	if payload["classification"] != string(ClassVeryLikelyAI) {
		t.Fatalf("unexpected classification: %v", payload["classification"])
	}
}

func TestAnalyzeEndpointMissingFile(t *testing.T) {
	router := newTestRouter(&fakeModel{reply: "85"}, true)

	body, ct := multipartBody(t, nil, "", "standard")
	resp, payload := postAnalyze(t, router, body, ct)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
	if payload["error_code"] != "NO_IMAGE_PROVIDED" {
		t.Fatalf("error_code = %v", payload["error_code"])
	}
	if payload["success"] != false {
		t.Fatalf("expected success false: %v", payload)
	}
}

func TestAnalyzeEndpointNonImageUpload(t *testing.T) {
	router := newTestRouter(&fakeModel{reply: "85"}, true)

	body, ct := multipartBody(t, []byte("plain text, not pixels"), "notes.txt", "")
	resp, payload := postAnalyze(t, router, body, ct)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
	if payload["error_code"] != "INVALID_IMAGE" {
		t.Fatalf("error_code = %v", payload["error_code"])
	}
}

func TestAnalyzeEndpointModelFailure(t *testing.T) {
	router := newTestRouter(&fakeModel{err: errors.New("upstream down")}, true)

	body, ct := multipartBody(t, pngBytes(t, 200, 200), "photo.png", "")
	resp, payload := postAnalyze(t, router, body, ct)

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.Code)
	}
	if payload["error_code"] != "ANALYSIS_FAILED" {
		t.Fatalf("error_code = %v", payload["error_code"])
	}
}

func TestAnalyzeEndpointUnconfigured(t *testing.T) {
	router := newTestRouter(&fakeModel{reply: "85"}, false)

	body, ct := multipartBody(t, pngBytes(t, 200, 200), "photo.png", "")
	resp, payload := postAnalyze(t, router, body, ct)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.Code)
	}
	if payload["error_code"] != "API_KEY_MISSING" {
		t.Fatalf("error_code = %v", payload["error_code"])
	}
}

func TestAnalyzeEndpointFastType(t *testing.T) {
	model := &fakeModel{reply: "91\nwith a verbose explanation\nacross lines"}
	router := newTestRouter(model, true)

	body, ct := multipartBody(t, pngBytes(t, 200, 200), "photo.png", "fast")
	resp, payload := postAnalyze(t, router, body, ct)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}
	if model.lastPrompt != fastPrompt {
		t.Fatal("fast type should select the terse prompt")
	}
	analysis, _ := payload["analysis"].(string)
	if analysis == "" || bytes.ContainsRune([]byte(analysis), '\n') {
		t.Fatalf("fast analysis should be a single line: %q", analysis)
	}
}

func TestAnalysisTypesEndpoint(t *testing.T) {
	router := newTestRouter(&fakeModel{}, true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analysis-types", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}
	var payload struct {
		Types []struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"types"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Types) != 3 {
		t.Fatalf("expected 3 analysis types, got %d", len(payload.Types))
	}
	ids := map[string]bool{}
	for _, at := range payload.Types {
		ids[at.ID] = true
	}
	for _, want := range []string{"standard", "fast", "detailed"} {
		if !ids[want] {
			t.Fatalf("missing analysis type %q", want)
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(&fakeModel{}, true)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}

	degraded := newTestRouter(&fakeModel{}, false)
	resp = httptest.NewRecorder()
	degraded.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["api_configured"] != false {
		t.Fatalf("expected api_configured false: %v", payload)
	}
}
