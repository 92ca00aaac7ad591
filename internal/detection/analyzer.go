package detection

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"aidetect-backend/internal/llm"
)

// Variant selects an analysis strategy.
type Variant string

const (
	VariantStandard Variant = "standard"
	VariantFast     Variant = "fast"
	VariantDetailed Variant = "detailed"
)

// ParseVariant maps a request selector to a known variant. Unrecognized
// values fall back to the standard variant; selection never fails.
func ParseVariant(raw string) Variant {
	switch Variant(strings.ToLower(strings.TrimSpace(raw))) {
	case VariantFast:
		return VariantFast
	case VariantDetailed:
		return VariantDetailed
	default:
		return VariantStandard
	}
}

// defaultProbability is returned when the model reply contains no digits at
// all. A malformed-but-present reply lands in the "Uncertain" bucket instead
// of failing the whole analysis.
const defaultProbability = 50

// standardAnalysisMaxRunes bounds the explanation kept by the standard
// variant.
const standardAnalysisMaxRunes = 600

// detailedMinDimension is the smallest image edge the detailed variant will
// accept; fine-grained artifact inspection needs some resolution to work
// with.
const detailedMinDimension = 100

const standardPrompt = `Carefully examine this image and estimate the probability that it was produced by an AI image generator (Imagen, DALL-E, Midjourney, Stable Diffusion or similar).

Consider typical AI artifacts (extra fingers, garbled text, physical inconsistencies), unnaturally perfect textures, inconsistent lighting and shadows, and the overall rendering style. If you detect evidence of an invisible provenance watermark such as SynthID, say so explicitly.

Start your reply with a single integer from 0 (certainly a real photograph) to 100 (certainly AI-generated), then give a brief explanation of 2-3 sentences covering the main indicators behind your estimate.`

const fastPrompt = `Quickly judge this image: AI-generated or a real photograph?
Reply with ONLY a number from 0 (certainly real) to 100 (certainly AI-generated). No explanation.`

const detailedPrompt = `Perform a DEEP and DETAILED analysis of this image to determine whether it was produced by an AI image generator.

Examine carefully:
1. Anatomy and proportions (hands, fingers, faces in particular)
2. Physics and lighting (shadows, reflections, perspective)
3. Textures and patterns (repetition, artifacts, distortions)
4. Text and lettering (legibility, coherence)
5. Global scene coherence
6. Fine detail and edges
7. Invisible provenance watermarks (SynthID or similar) and stylistic fingerprints of specific generator families

Be critical and precise. Start your reply with a single integer from 0 to 100, then give an extended multi-paragraph rationale covering rendering artifacts, stylistic fingerprints and any watermark evidence.`

// variantSpec carries everything a variant overrides: the prompt it sends and
// how it turns the raw reply into the stored explanation.
type variantSpec struct {
	prompt       string
	format       func(probability int, raw string) string
	minDimension int
}

var variantSpecs = map[Variant]variantSpec{
	VariantStandard: {
		prompt: standardPrompt,
		format: formatStandard,
	},
	VariantFast: {
		prompt: fastPrompt,
		format: formatFast,
	},
	VariantDetailed: {
		prompt:       detailedPrompt,
		format:       formatDetailed,
		minDimension: detailedMinDimension,
	},
}

var digitRun = regexp.MustCompile(`\d+`)

// ExtractProbability pulls the verdict out of a free-text model reply: the
// whole trimmed reply if it is a bare integer (a trailing "%" is tolerated),
// otherwise the first digit run anywhere in the text. Values outside [0,100]
// are clamped; a reply with no digits yields defaultProbability.
func ExtractProbability(raw string) int {
	trimmed := strings.TrimSuffix(strings.TrimSpace(raw), "%")
	if v, err := strconv.Atoi(trimmed); err == nil {
		return clampProbability(v)
	}
	if m := digitRun.FindString(raw); m != "" {
		if v, err := strconv.Atoi(m); err == nil {
			return clampProbability(v)
		}
		// Digit run too long for an int: certainly above 100.
		return 100
	}
	return defaultProbability
}

func formatStandard(probability int, raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return fmt.Sprintf("Analysis estimates a %d%% probability of AI generation.", probability)
	}
	runes := []rune(text)
	if len(runes) > standardAnalysisMaxRunes {
		text = strings.TrimSpace(string(runes[:standardAnalysisMaxRunes])) + "..."
	}
	return text
}

// formatFast synthesizes a one-line summary from the probability alone; the
// terse prompt means the reply carries no explanation worth keeping.
func formatFast(probability int, raw string) string {
	switch {
	case probability >= 70:
		return fmt.Sprintf("Fast analysis puts the probability of AI generation at %d%%. Typical generator characteristics identified.", probability)
	case probability >= 30:
		return fmt.Sprintf("Fast analysis is inconclusive at %d%%. Mixed characteristics detected.", probability)
	default:
		return fmt.Sprintf("Fast analysis puts the probability of AI generation at %d%%. Predominantly natural characteristics.", probability)
	}
}

func formatDetailed(probability int, raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return fmt.Sprintf("Analysis estimates a %d%% probability of AI generation.", probability)
	}
	return text
}

// Analyzer produces an AnalysisResult from an ImageRecord by delegating
// visual judgment to the external vision model. It keeps no state between
// calls.
type Analyzer struct {
	variant Variant
	spec    variantSpec
	client  llm.Client
}

// NewAnalyzer builds the analyzer for a variant. Unknown variants get the
// standard configuration.
func NewAnalyzer(variant Variant, client llm.Client) *Analyzer {
	spec, ok := variantSpecs[variant]
	if !ok {
		variant = VariantStandard
		spec = variantSpecs[VariantStandard]
	}
	return &Analyzer{variant: variant, spec: spec, client: client}
}

// Variant returns the strategy this analyzer runs.
func (a *Analyzer) Variant() Variant {
	return a.variant
}

// Prompt returns the instruction sent alongside the image.
func (a *Analyzer) Prompt() string {
	return a.spec.prompt
}

// Analyze makes one call to the external model, extracts the probability from
// the reply, and formats the explanation per the variant.
func (a *Analyzer) Analyze(ctx context.Context, img ImageRecord) (AnalysisResult, error) {
	if min := a.spec.minDimension; min > 0 && (img.Width() < min || img.Height() < min) {
		return AnalysisResult{}, AnalysisFailed(
			fmt.Sprintf("image too small for detailed analysis, minimum %dx%d pixels", min, min), nil)
	}

	raw, err := a.client.GenerateFromImage(ctx, a.spec.prompt, img.Data(), img.Format())
	if err != nil {
		return AnalysisResult{}, AnalysisFailed("vision model call failed", err)
	}

	probability := ExtractProbability(raw)
	return NewAnalysisResult(probability, a.spec.format(probability, raw)), nil
}
