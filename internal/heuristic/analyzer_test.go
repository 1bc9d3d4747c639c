package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/study-tracker/constants"
)

func TestTopics_FiltersShortAndNonAlphabetic(t *testing.T) {
	a := Analyzer{}
	topics := a.Topics("The quick photosynthesis reaction uses chlorophyll and h2o at 37C")

	assert.Equal(t, []string{"photosynthesis", "reaction", "chlorophyll"}, topics)
}

func TestTopics_DedupeCaseInsensitivePreservesFirst(t *testing.T) {
	a := Analyzer{}
	topics := a.Topics("Mitosis explains mitosis and MITOSIS again alongside meiosis")

	assert.Equal(t, []string{"Mitosis", "explains", "alongside", "meiosis"}, topics)
}

func TestTopics_CapsAtMaxTopics(t *testing.T) {
	a := Analyzer{}
	text := "alphaaa bravooo charlie deltaaa echoooo foxtrot golfing hotelll indiaaa juliett kiloooo limaaaa"
	topics := a.Topics(text)

	require.Len(t, topics, MaxTopics)
	assert.Equal(t, "alphaaa", topics[0])
}

func TestTopics_EmptyText(t *testing.T) {
	a := Analyzer{}
	assert.Empty(t, a.Topics(""))
	assert.Empty(t, a.Topics("a an at the un owl"))
}

func TestChallengingTopics_PrefixSemantics(t *testing.T) {
	a := Analyzer{}

	topics := []string{"algebra", "geometry", "calculus", "trigonometry"}
	assert.Equal(t, []string{"algebra", "geometry", "calculus"}, a.ChallengingTopics(topics))

	short := []string{"algebra"}
	assert.Equal(t, short, a.ChallengingTopics(short))
	assert.Empty(t, a.ChallengingTopics(nil))
}

func TestMemorandum_Template(t *testing.T) {
	a := Analyzer{}
	memo := a.Memorandum([]string{"algebra", "geometry"})
	assert.Equal(t, "This memorandum summarizes the key topics: algebra, geometry.", memo)
}

func TestMemorandum_NamesOnlyTopFive(t *testing.T) {
	a := Analyzer{}
	memo := a.Memorandum([]string{"one", "two", "three", "four", "five", "six"})
	assert.Equal(t, "This memorandum summarizes the key topics: one, two, three, four, five.", memo)
}

func TestStudyPlan_Template(t *testing.T) {
	a := Analyzer{}
	title, content := a.StudyPlan([]string{"calculus", "optics"})

	assert.Equal(t, "Study Plan for calculus, optics", title)
	assert.Equal(t,
		"Focus on these challenging topics: calculus, optics. Spend extra time practicing problems related to these concepts.",
		content)
}

func TestCareerAnalysis_FixedTriple(t *testing.T) {
	a := Analyzer{}
	analysis := a.CareerAnalysis()

	assert.Equal(t, constants.FallbackCareers, analysis.Careers)
	assert.Equal(t, constants.FallbackStrengths, analysis.Strengths)
	assert.Equal(t, constants.FallbackImprovements, analysis.AreasForImprovement)
}

func TestAnalyzer_Deterministic(t *testing.T) {
	a := Analyzer{}
	text := "Thermodynamics entropy enthalpy kinetics catalysis equilibrium"

	first := a.Topics(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, a.Topics(text))
	}
}
