package detection

// Classification is the five-bucket verdict label.
type Classification string

// Classification labels, ordered high probability to low.
const (
	ClassVeryLikelyAI   Classification = "Very likely AI-generated"
	ClassLikelyAI       Classification = "Likely AI-generated"
	ClassUncertain      Classification = "Uncertain"
	ClassLikelyReal     Classification = "Likely real"
	ClassVeryLikelyReal Classification = "Very likely real"
)

type classBand struct {
	min   int
	label Classification
}

// classBands maps probability to label. Bands are contiguous and
// non-overlapping; the first matching lower bound wins.
var classBands = []classBand{
	{min: 80, label: ClassVeryLikelyAI},
	{min: 60, label: ClassLikelyAI},
	{min: 40, label: ClassUncertain},
	{min: 20, label: ClassLikelyReal},
	{min: 0, label: ClassVeryLikelyReal},
}

// Classify maps a probability to its classification label. The probability is
// clamped into [0,100] first.
func Classify(probability int) Classification {
	probability = clampProbability(probability)
	for _, band := range classBands {
		if probability >= band.min {
			return band.label
		}
	}
	return ClassVeryLikelyReal
}

func clampProbability(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// AnalysisResult is the immutable outcome of a successful analysis. Failures
// are represented by DetectionError, never by this type.
type AnalysisResult struct {
	probability    int
	classification Classification
	analysisText   string
}

// NewAnalysisResult builds a result, clamping the probability into [0,100]
// and deriving the classification from it.
func NewAnalysisResult(probability int, analysisText string) AnalysisResult {
	probability = clampProbability(probability)
	return AnalysisResult{
		probability:    probability,
		classification: Classify(probability),
		analysisText:   analysisText,
	}
}

// Probability returns the 0-100 likelihood that the image is AI-generated.
func (r AnalysisResult) Probability() int {
	return r.probability
}

// Classification returns the label derived from the probability.
func (r AnalysisResult) Classification() Classification {
	return r.classification
}

// AnalysisText returns the human-readable explanation.
func (r AnalysisResult) AnalysisText() string {
	return r.analysisText
}

// IsLikelyAI reports whether the verdict leans toward AI generation.
func (r AnalysisResult) IsLikelyAI() bool {
	return r.probability >= 60
}

// ConfidenceLevel describes how decisive the probability is. Values near
// either end of the scale are high confidence, the middle is low.
func (r AnalysisResult) ConfidenceLevel() string {
	switch {
	case r.probability >= 80 || r.probability <= 20:
		return "High"
	case r.probability >= 60 || r.probability <= 40:
		return "Medium"
	default:
		return "Low"
	}
}

// ResultRecord is the success shape sent to the boundary layer.
type ResultRecord struct {
	Success         bool   `json:"success"`
	Probability     int    `json:"probability"`
	Classification  string `json:"classification"`
	Analysis        string `json:"analysis"`
	IsLikelyAI      bool   `json:"is_likely_ai"`
	ConfidenceLevel string `json:"confidence_level"`
}

// Record converts the result into its transport representation.
func (r AnalysisResult) Record() ResultRecord {
	return ResultRecord{
		Success:         true,
		Probability:     r.probability,
		Classification:  string(r.classification),
		Analysis:        r.analysisText,
		IsLikelyAI:      r.IsLikelyAI(),
		ConfidenceLevel: r.ConfidenceLevel(),
	}
}
