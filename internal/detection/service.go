package detection

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"aidetect-backend/internal/llm"
	"aidetect-backend/internal/shared/metrics"
	"aidetect-backend/internal/shared/telemetry"
)

// Service is the single entry point used by the boundary layer. It validates
// input, selects a strategy variant, invokes it, and maps every failure into
// the DetectionError taxonomy. The only shared state is the read-only model
// configuration, so concurrent requests need no coordination.
type Service struct {
	client     llm.Client
	provider   string
	model      string
	configured bool
	timeout    time.Duration
}

// NewService constructs the detection service. configured reflects whether
// the provider credential is present; an unconfigured service still boots and
// reports the condition per request instead of refusing to start.
func NewService(client llm.Client, provider, model string, configured bool, timeout time.Duration) *Service {
	return &Service{
		client:     client,
		provider:   provider,
		model:      model,
		configured: configured,
		timeout:    timeout,
	}
}

// Model returns the configured external model name.
func (s *Service) Model() string {
	return s.model
}

// IsConfigured reports whether the model credential is available.
func (s *Service) IsConfigured() bool {
	return s.configured
}

// HealthStatus describes the service for the health endpoint.
type HealthStatus struct {
	Status        string `json:"status"`
	Service       string `json:"service"`
	Provider      string `json:"provider"`
	Model         string `json:"model"`
	APIConfigured bool   `json:"api_configured"`
}

// Health reports the current service status.
func (s *Service) Health() HealthStatus {
	status := "ok"
	if !s.configured {
		status = "error"
	}
	return HealthStatus{
		Status:        status,
		Service:       "AI Detection Service",
		Provider:      s.provider,
		Model:         s.model,
		APIConfigured: s.configured,
	}
}

// AnalyzeImage runs one full analysis: validate the payload, decode it into
// an ImageRecord, pick the variant, invoke the model, and return the result
// unchanged. Every returned error is a *DetectionError.
func (s *Service) AnalyzeImage(ctx context.Context, rawImage []byte, filename, analysisType string) (AnalysisResult, error) {
	if !s.configured {
		return AnalysisResult{}, APIKeyMissing()
	}
	if len(rawImage) == 0 {
		return AnalysisResult{}, NoImageProvided("")
	}

	img, err := NewImageRecord(rawImage, filename)
	if err != nil {
		return AnalysisResult{}, InvalidImage("could not open image: "+err.Error(), err)
	}

	variant := ParseVariant(analysisType)
	analyzer := NewAnalyzer(variant, s.client)
	analysisID := uuid.NewString()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	metrics.IncAnalysisStarted()
	start := time.Now()
	result, err := analyzer.Analyze(ctx, img)
	durationMs := float64(time.Since(start).Microseconds()) / 1000.0
	metrics.ObserveAnalysisDurationMs(durationMs)

	if err != nil {
		metrics.IncAnalysisFailed()
		derr := toAnalysisError(err)
		telemetry.Error("analysis.failed", map[string]any{
			"analysis_id": analysisID,
			"file_name":   img.Filename(),
			"variant":     string(variant),
			"error_code":  derr.Code(),
			"error":       derr.Error(),
			"duration_ms": durationMs,
		})
		return AnalysisResult{}, derr
	}

	metrics.IncAnalysisCompleted()
	telemetry.Info("analysis.complete", map[string]any{
		"analysis_id":    analysisID,
		"file_name":      img.Filename(),
		"format":         img.Format(),
		"variant":        string(variant),
		"probability":    result.Probability(),
		"classification": string(result.Classification()),
		"duration_ms":    durationMs,
	})
	return result, nil
}

// toAnalysisError passes typed errors through and re-wraps anything else as
// AnalysisFailed, preserving the cause for diagnostics.
func toAnalysisError(err error) *DetectionError {
	var derr *DetectionError
	if errors.As(err, &derr) {
		return derr
	}
	return AnalysisFailed("image analysis failed", err)
}
