package detection

import (
	"encoding/json"
	"testing"
)

func TestClassifyCoversEveryProbability(t *testing.T) {
	for p := 0; p <= 100; p++ {
		matches := 0
		var label Classification
		for i, band := range classBands {
			upper := 100
			if i > 0 {
				upper = classBands[i-1].min - 1
			}
			if p >= band.min && p <= upper {
				matches++
				label = band.label
			}
		}
		if matches != 1 {
			t.Fatalf("probability %d matched %d bands, want exactly 1", p, matches)
		}
		if got := Classify(p); got != label {
			t.Fatalf("Classify(%d) = %q, want %q", p, got, label)
		}
	}
}

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		probability int
		want        Classification
	}{
		{100, ClassVeryLikelyAI},
		{80, ClassVeryLikelyAI},
		{79, ClassLikelyAI},
		{60, ClassLikelyAI},
		{59, ClassUncertain},
		{40, ClassUncertain},
		{39, ClassLikelyReal},
		{20, ClassLikelyReal},
		{19, ClassVeryLikelyReal},
		{0, ClassVeryLikelyReal},
	}
	for _, tc := range cases {
		if got := Classify(tc.probability); got != tc.want {
			t.Fatalf("Classify(%d) = %q, want %q", tc.probability, got, tc.want)
		}
	}
}

func TestNewAnalysisResultClampsProbability(t *testing.T) {
	low := NewAnalysisResult(-10, "x")
	if low.Probability() != 0 || low.Classification() != ClassVeryLikelyReal {
		t.Fatalf("got probability=%d classification=%q", low.Probability(), low.Classification())
	}

	high := NewAnalysisResult(150, "x")
	if high.Probability() != 100 || high.Classification() != ClassVeryLikelyAI {
		t.Fatalf("got probability=%d classification=%q", high.Probability(), high.Classification())
	}
}

func TestConfidenceLevel(t *testing.T) {
	cases := []struct {
		probability int
		want        string
	}{
		{95, "High"},
		{80, "High"},
		{10, "High"},
		{20, "High"},
		{65, "Medium"},
		{35, "Medium"},
		{50, "Low"},
		{45, "Low"},
	}
	for _, tc := range cases {
		r := NewAnalysisResult(tc.probability, "")
		if got := r.ConfidenceLevel(); got != tc.want {
			t.Fatalf("ConfidenceLevel at %d = %q, want %q", tc.probability, got, tc.want)
		}
	}
}

func TestIsLikelyAI(t *testing.T) {
	if !NewAnalysisResult(60, "").IsLikelyAI() {
		t.Fatal("expected 60 to be likely AI")
	}
	if NewAnalysisResult(59, "").IsLikelyAI() {
		t.Fatal("expected 59 not to be likely AI")
	}
}

func TestResultRecordShape(t *testing.T) {
	r := NewAnalysisResult(85, "Shows strong generator artifacts.")
	data, err := json.Marshal(r.Record())
	if err != nil {
		t.Fatalf("marshal record: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode record json: %v", err)
	}
	if payload["success"] != true {
		t.Fatalf("expected success true, got %v", payload["success"])
	}
	if payload["probability"] != float64(85) {
		t.Fatalf("expected probability 85, got %v", payload["probability"])
	}
	if payload["classification"] != string(ClassVeryLikelyAI) {
		t.Fatalf("unexpected classification: %v", payload["classification"])
	}
	if payload["analysis"] != "Shows strong generator artifacts." {
		t.Fatalf("unexpected analysis: %v", payload["analysis"])
	}
	if payload["is_likely_ai"] != true {
		t.Fatalf("expected is_likely_ai true, got %v", payload["is_likely_ai"])
	}
	if payload["confidence_level"] != "High" {
		t.Fatalf("unexpected confidence_level: %v", payload["confidence_level"])
	}
}
