package textquality

import (
	"regexp"
	"strings"

	"github.com/trackback/reviewlens/internal/model"
)

// Composite weights. Calibration constants: empirically chosen, preserved
// for behavioral compatibility with historical scores.
const (
	weightSpecificity    = 0.35
	weightActionability  = 0.40
	weightTechnicalDepth = 0.25
)

// minTextLength is the trimmed length below which a field scores zero
const minTextLength = 5

// ScoreText scores a single free-text field. It is total: any input,
// including empty text, yields a valid all-zero-or-better score.
func ScoreText(text string) model.TextQualityScore {
	specificity := scoreSpecificity(text)
	actionability := scoreActionability(text)
	technicalDepth := scoreTechnicalDepth(text)

	overall := specificity*weightSpecificity +
		actionability*weightActionability +
		technicalDepth*weightTechnicalDepth

	return model.TextQualityScore{
		Specificity:    specificity,
		Actionability:  actionability,
		TechnicalDepth: technicalDepth,
		Overall:        overall,
	}
}

// ScoreReview scores every non-empty text field of a review and produces
// unweighted per-dimension means across them.
func ScoreReview(fields map[string]string) model.ReviewTextQualityResult {
	scored := make(map[string]model.TextQualityScore)
	var all []model.TextQualityScore

	for key, value := range fields {
		if strings.TrimSpace(value) == "" {
			continue
		}
		s := ScoreText(value)
		scored[key] = s
		all = append(all, s)
	}

	result := model.ReviewTextQualityResult{Fields: scored}
	if len(all) == 0 {
		return result
	}

	n := float64(len(all))
	for _, s := range all {
		result.CompositeSpecificity += s.Specificity / n
		result.CompositeActionability += s.Actionability / n
		result.CompositeTechnicalDepth += s.TechnicalDepth / n
		result.CompositeOverall += s.Overall / n
	}
	return result
}

// scoreSpecificity rewards references to concrete places and elements in the
// track. Each bonus category contributes to a running max so the final score
// normalizes to [0,1] even though not every category is always reachable.
func scoreSpecificity(text string) float64 {
	if len(strings.TrimSpace(text)) < minTextLength {
		return 0
	}

	lower := strings.ToLower(text)
	words := strings.Fields(lower)
	score := 0.0
	maxScore := 0.0

	// Timestamp references (strong signal)
	maxScore += 0.25
	timestamps := countMatches(timestampPattern, text)
	if timestamps >= 2 {
		score += 0.25
	} else if timestamps == 1 {
		score += 0.15
	}

	// Frequency / dB references
	maxScore += 0.15
	freqRefs := countMatches(frequencyPattern, text) + countMatches(dbPattern, text)
	if freqRefs > 0 {
		score += 0.15
	}

	// Element references (kick, snare, vocal, etc.)
	maxScore += 0.25
	elementHits := 0
	for _, w := range words {
		if elementRefs[stripWord(w, false)] {
			elementHits++
		}
	}
	switch {
	case elementHits >= 3:
		score += 0.25
	case elementHits >= 2:
		score += 0.18
	case elementHits >= 1:
		score += 0.1
	}

	// Section references (verse, chorus, bridge, etc.)
	maxScore += 0.2
	sectionHits := 0
	for _, w := range words {
		if sectionRefs[stripWord(w, false)] {
			sectionHits++
		}
	}
	for _, s := range multiWordSections {
		if strings.Contains(lower, s) {
			sectionHits++
		}
	}
	if sectionHits >= 2 {
		score += 0.2
	} else if sectionHits >= 1 {
		score += 0.12
	}

	// Word count bonus (longer text is more likely to be specific)
	maxScore += 0.15
	switch {
	case len(words) >= 40:
		score += 0.15
	case len(words) >= 25:
		score += 0.1
	case len(words) >= 15:
		score += 0.05
	}

	return normalize(score, maxScore)
}

// scoreActionability rewards concrete suggestions, causal reasoning, and
// comparisons, and withholds a bonus when the text leans on generic praise.
func scoreActionability(text string) float64 {
	if len(strings.TrimSpace(text)) < minTextLength {
		return 0
	}

	score := 0.0
	maxScore := 0.0

	// Suggestion phrasing
	maxScore += 0.35
	suggestionHits := 0
	for _, p := range suggestionPatterns {
		suggestionHits += countMatches(p, text)
	}
	switch {
	case suggestionHits >= 3:
		score += 0.35
	case suggestionHits >= 2:
		score += 0.25
	case suggestionHits >= 1:
		score += 0.15
	}

	// Causal reasoning
	maxScore += 0.25
	causalHits := 0
	for _, p := range causalPatterns {
		causalHits += countMatches(p, text)
	}
	if causalHits >= 2 {
		score += 0.25
	} else if causalHits >= 1 {
		score += 0.15
	}

	// Comparison phrasing
	maxScore += 0.2
	comparisonHits := 0
	for _, p := range comparisonPatterns {
		comparisonHits += countMatches(p, text)
	}
	if comparisonHits >= 1 {
		score += 0.2
	}

	// Generic-praise check: full bonus only when no filler phrases appear,
	// none at two or more
	maxScore += 0.2
	genericHits := 0
	for _, p := range genericPhrases {
		genericHits += countMatches(p, text)
	}
	if genericHits == 0 {
		score += 0.2
	} else if genericHits == 1 {
		score += 0.1
	}

	return normalize(score, maxScore)
}

// scoreTechnicalDepth rewards production vocabulary, breadth across
// observation aspects, and explicit frequency/dB references.
func scoreTechnicalDepth(text string) float64 {
	if len(strings.TrimSpace(text)) < minTextLength {
		return 0
	}

	lower := strings.ToLower(text)
	words := strings.Fields(lower)
	score := 0.0
	maxScore := 0.0

	// Production terminology
	maxScore += 0.5
	termHits := 0
	for _, w := range words {
		if productionTerms[stripWord(w, true)] {
			termHits++
		}
	}
	for _, t := range multiWordTerms {
		if strings.Contains(lower, t) {
			termHits++
		}
	}
	switch {
	case termHits >= 6:
		score += 0.5
	case termHits >= 4:
		score += 0.35
	case termHits >= 2:
		score += 0.2
	case termHits >= 1:
		score += 0.1
	}

	// Breadth across observation aspects
	maxScore += 0.3
	aspects := 0
	for _, keywords := range aspectCategories {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				aspects++
				break
			}
		}
	}
	switch {
	case aspects >= 3:
		score += 0.3
	case aspects >= 2:
		score += 0.2
	case aspects >= 1:
		score += 0.1
	}

	// Frequency / dB references are highly technical
	maxScore += 0.2
	techRefs := countMatches(frequencyPattern, text) + countMatches(dbPattern, text)
	if techRefs >= 2 {
		score += 0.2
	} else if techRefs >= 1 {
		score += 0.12
	}

	return normalize(score, maxScore)
}

func countMatches(p *regexp.Regexp, text string) int {
	return len(p.FindAllString(text, -1))
}

// stripWord drops everything outside [a-z-] (plus '/' for terms like "a/b")
// so punctuation-adjacent words still hit the lexicons.
func stripWord(w string, keepSlash bool) string {
	var b strings.Builder
	for _, r := range w {
		if (r >= 'a' && r <= 'z') || r == '-' || (keepSlash && r == '/') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func normalize(score, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	return model.Clamp01(score / maxScore)
}
