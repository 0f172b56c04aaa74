package analyses

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-ats/resume/model"
)

func TestExplainScore(t *testing.T) {
	score := model.ATSScore{
		Breakdown: model.ATSBreakdown{Formatting: 25, SectionHeaders: 20, Parseability: 15, KeywordOptimization: 18},
		Issues: []model.Issue{
			{Category: "Summary", Message: "No professional summary found"},
			{Category: "Contact Info", Message: "No phone number found"},
			{Category: "Experience", Message: "Experience dates are missing"},
		},
	}

	got := explainScore(score)
	require.Len(t, got.Components, 4)

	formatting := got.Components[0]
	assert.Equal(t, "formatting", formatting.Key)
	assert.Equal(t, model.MaxSubScore, formatting.Max)
	assert.Empty(t, formatting.Dragged)
	assert.NotNil(t, formatting.Dragged)
	assert.Equal(t, "Formatting earned the full 25 points.", formatting.Explanation)

	headers := got.Components[1]
	assert.Equal(t, []string{"No professional summary found"}, headers.Dragged)
	assert.Equal(t, "Section Headers earned 20 of 25 points; 1 finding(s) held it back.", headers.Explanation)

	parseability := got.Components[2]
	assert.Equal(t, []string{"No phone number found", "Experience dates are missing"}, parseability.Dragged)

	keywords := got.Components[3]
	assert.Empty(t, keywords.Dragged)
	assert.Equal(t, "Keyword Optimization earned 18 of 25 points.", keywords.Explanation)
}
