// Package heuristic provides deterministic, offline stand-ins for every
// AI-backed analysis stage, so a deployment with no provider credential (or a
// failing provider) still completes every pipeline run.
package heuristic

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/joseph-ayodele/study-tracker/constants"
	"github.com/joseph-ayodele/study-tracker/internal/entity"
)

const (
	// MaxTopics caps keyword extraction to keep downstream content bounded.
	MaxTopics = 10
	// MaxChallenging is the fixed prefix length for the challenging-topic guess.
	MaxChallenging = 3
)

// Analyzer is stateless; the zero value is ready to use.
type Analyzer struct{}

// Topics extracts keyword-like topics: whitespace-delimited alphabetic tokens
// longer than 5 characters, deduplicated case-insensitively in first-seen
// order, capped at MaxTopics. The output is labeled a topic list but carries
// no semantic coherence guarantee; callers must not assume it matches what an
// AI pass would produce.
func (Analyzer) Topics(text string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, word := range strings.Fields(text) {
		if len(word) <= 5 || !alphabetic(word) {
			continue
		}
		key := strings.ToLower(word)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, word)
		if len(out) >= MaxTopics {
			break
		}
	}
	return out
}

// ChallengingTopics is a fixed order-preserving truncation, not a relevance
// judgment: the first MaxChallenging topics, or fewer if the list is smaller.
func (Analyzer) ChallengingTopics(topics []string) []string {
	if len(topics) <= MaxChallenging {
		return topics
	}
	return topics[:MaxChallenging]
}

// Memorandum synthesizes the templated summary sentence naming the top 5 topics.
func (Analyzer) Memorandum(topics []string) string {
	return fmt.Sprintf("This memorandum summarizes the key topics: %s.", strings.Join(head(topics, 5), ", "))
}

// StudyPlan synthesizes the templated plan for the given challenging topics.
func (Analyzer) StudyPlan(challenging []string) (title, content string) {
	title = fmt.Sprintf("Study Plan for %s", strings.Join(head(challenging, 3), ", "))
	content = fmt.Sprintf(
		"Focus on these challenging topics: %s. Spend extra time practicing problems related to these concepts.",
		strings.Join(challenging, ", "),
	)
	return title, content
}

// CareerAnalysis returns the fixed fallback triple.
func (Analyzer) CareerAnalysis() entity.CareerAnalysis {
	return entity.CareerAnalysis{
		Careers:             constants.FallbackCareers,
		Strengths:           constants.FallbackStrengths,
		AreasForImprovement: constants.FallbackImprovements,
	}
}

func alphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func head(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
