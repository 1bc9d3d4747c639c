package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTopicList_StripsListMarkers(t *testing.T) {
	resp := "- Algebra\n* Geometry\n• Calculus\n  Trigonometry  "
	topics := ParseTopicList(resp, 10)
	assert.Equal(t, []string{"Algebra", "Geometry", "Calculus", "Trigonometry"}, topics)
}

func TestParseTopicList_DedupesCaseInsensitive(t *testing.T) {
	resp := "Algebra\nalgebra\nALGEBRA\nGeometry"
	topics := ParseTopicList(resp, 10)
	assert.Equal(t, []string{"Algebra", "Geometry"}, topics)
}

func TestParseTopicList_SkipsBlankLines(t *testing.T) {
	resp := "\n\nAlgebra\n\n   \nGeometry\n"
	topics := ParseTopicList(resp, 10)
	assert.Equal(t, []string{"Algebra", "Geometry"}, topics)
}

func TestParseTopicList_CapsAtMax(t *testing.T) {
	resp := "one\ntwo\nthree\nfour"
	topics := ParseTopicList(resp, 2)
	assert.Equal(t, []string{"one", "two"}, topics)
}

func TestParseTopicList_EmptyCompletion(t *testing.T) {
	assert.Empty(t, ParseTopicList("", 10))
	assert.Empty(t, ParseTopicList("  \n- \n", 10))
}

func TestExtractJSONObject(t *testing.T) {
	raw, ok := ExtractJSONObject("```json\n{\"a\": 1}\n```")
	require.True(t, ok)
	assert.Equal(t, `{"a": 1}`, raw)

	_, ok = ExtractJSONObject("no json here")
	assert.False(t, ok)

	_, ok = ExtractJSONObject("} backwards {")
	assert.False(t, ok)
}

func TestParseCareerAnalysis_Valid(t *testing.T) {
	completion := `Here you go:
{"careers": ["Engineer", "Analyst"], "strengths": ["Mathematics"], "areas_for_improvement": ["Writing"]}`

	analysis, err := ParseCareerAnalysis(completion)
	require.NoError(t, err)
	assert.Equal(t, []string{"Engineer", "Analyst"}, analysis.Careers)
	assert.Equal(t, []string{"Mathematics"}, analysis.Strengths)
	assert.Equal(t, []string{"Writing"}, analysis.AreasForImprovement)
}

func TestParseCareerAnalysis_MissingField(t *testing.T) {
	_, err := ParseCareerAnalysis(`{"careers": ["Engineer"], "strengths": ["Mathematics"]}`)
	assert.Error(t, err)
}

func TestParseCareerAnalysis_EmptyArray(t *testing.T) {
	_, err := ParseCareerAnalysis(`{"careers": [], "strengths": ["a"], "areas_for_improvement": ["b"]}`)
	assert.Error(t, err)
}

func TestParseCareerAnalysis_NotJSON(t *testing.T) {
	_, err := ParseCareerAnalysis("I recommend becoming a teacher.")
	assert.Error(t, err)
}

func TestParseCareerAnalysis_WrongTypes(t *testing.T) {
	_, err := ParseCareerAnalysis(`{"careers": "Engineer", "strengths": ["a"], "areas_for_improvement": ["b"]}`)
	assert.Error(t, err)
}
