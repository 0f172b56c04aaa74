package ats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-ats/resume/model"
	"resume-ats/resume/parse"
)

const sampleResume = "Jane Doe\nSoftware Engineer\njane@example.com\n555-123-4567\n\n" +
	"EXPERIENCE\nSenior Engineer | Acme Corp\nJan 2020 - Present\n- Built scalable APIs\n- Reduced latency by 40%\n\n" +
	"EDUCATION\nMIT\nBachelor of Science in Computer Science, 2018\n\n" +
	"SKILLS\nPython, Go, Docker"

func parsed(t *testing.T, text string) model.Document {
	t.Helper()
	doc, err := parse.Parse(text)
	require.NoError(t, err)
	return doc
}

func TestScoreSampleResume(t *testing.T) {
	t.Parallel()

	got := Score(sampleResume, parsed(t, sampleResume))

	assert.Equal(t, model.ATSBreakdown{
		Formatting:          22,
		SectionHeaders:      20,
		Parseability:        23,
		KeywordOptimization: 8,
	}, got.Breakdown)
	assert.Equal(t, 73, got.OverallScore)

	var messages []string
	for _, issue := range got.Issues {
		messages = append(messages, issue.Message)
	}
	assert.Equal(t, []string{
		"Skills section only contains 3 items, which is quite sparse.",
		"No professional summary or objective detected.",
		"Bullet points use few strong action verbs.",
		"No certifications section detected.",
	}, messages)

	assert.Contains(t, got.Passed, `"Experience" section header found with standard naming.`)
	assert.Contains(t, got.Passed, "All experience entries include date ranges.")
	assert.NotContains(t, got.Passed, "Location information is provided.")
	assert.Len(t, got.Passed, 9)
}

func TestSummaryPassCountsRunes(t *testing.T) {
	t.Parallel()

	const passed = "Professional summary/objective is present."
	text := "Jane Doe\nSummary\n"

	short := model.Document{Name: "Jane Doe", Summary: strings.Repeat("é", 20), RawText: text}
	assert.NotContains(t, Score(text, short).Passed, passed)

	long := model.Document{Name: "Jane Doe", Summary: strings.Repeat("é", 31), RawText: text}
	assert.Contains(t, Score(text, long).Passed, passed)
}

func TestScoreEmptyResumeIsLow(t *testing.T) {
	t.Parallel()

	doc := model.Document{
		Name:           model.UnknownName,
		Skills:         []string{},
		Experience:     []model.WorkEntry{},
		Education:      []model.EducationEntry{},
		Certifications: []string{},
		RawText:        "lorem ipsum",
	}
	got := Score(doc.RawText, doc)

	assert.Less(t, got.OverallScore, 50)
	assert.Equal(t, 22, got.Breakdown.Formatting)
	assert.Zero(t, got.Breakdown.Parseability)

	critical := map[string]bool{}
	for _, issue := range got.Issues {
		if issue.Severity == model.SeverityCritical {
			critical[issue.Message] = true
		}
	}
	assert.True(t, critical["Name could not be detected at the top of the resume."])
	assert.True(t, critical["Email address not found in the resume."])
	assert.True(t, critical[`No "Experience" or "Work Experience" section header found.`])
}

func TestScoreFormattingPenalties(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"short text only", "hello", 22},
		{"images capped at ten", "[image] [logo] [photo] data:image", 12},
		{"tables by pattern type", "a | b | c | d\nx\t\t\ty", 12},
		{"decorative symbols", strings.Repeat("★", 11), 19},
		{"everything clamps at zero", "[image]\n[logo]\na | b | c | d\nx\t\t\ty\n" + strings.Repeat("a          b          c\n", 6), 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Score(tt.text, model.Document{Name: model.UnknownName, RawText: tt.text})
			assert.Equal(t, tt.want, got.Breakdown.Formatting)
		})
	}
}

func TestScoreImageIssueRaisedOnce(t *testing.T) {
	t.Parallel()

	text := "[image] [logo]"
	got := Score(text, model.Document{Name: model.UnknownName, RawText: text})

	count := 0
	for _, issue := range got.Issues {
		if issue.Category == "Formatting" && issue.Severity == model.SeverityCritical {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.NotContains(t, got.Passed, "No images or embedded graphics detected, ATS-safe.")
}

func TestScoreSectionHeaderCasing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want int
	}{
		{"Experience\nEDUCATION", 15},
		{"EXPERIENCE\nEDUCATION", 15},
		{"experience\nEducation", 10},
		{"Experience", 5},
		{"Skills\nSummary\nEducation\nWork History", 25},
	}
	for _, tt := range tests {
		got := Score(tt.text, model.Document{Name: model.UnknownName, RawText: tt.text})
		assert.Equal(t, tt.want, got.Breakdown.SectionHeaders, tt.text)
	}
}

func TestScoreKeywordOptimizationTiers(t *testing.T) {
	t.Parallel()

	doc := model.Document{
		Name:    "Jane Doe",
		Summary: "Platform engineer with a decade of distributed systems work.",
		Skills:  []string{"Go", "Python", "Docker", "Kubernetes", "AWS", "Terraform", "Redis", "Kafka", "gRPC", "Linux"},
		Experience: []model.WorkEntry{{
			Company: "Acme", Title: "Engineer", StartDate: "2020",
			Bullets: []string{
				"Led a team of 6 engineers",
				"Reduced costs by 30%",
				"Built APIs serving 200 requests per second",
				"Designed the event pipeline",
				"Automated deploys 10x faster ",
				"Migrated 40 applications to Kubernetes",
				"Mentored new hires",
				"Optimized queries",
				"Launched billing",
				"Improved on-call health",
			},
		}},
		RawText: "x",
	}
	got := Score(doc.RawText, doc)
	assert.Equal(t, 25, got.Breakdown.KeywordOptimization)
}

func TestScoreInvariants(t *testing.T) {
	t.Parallel()

	inputs := []string{
		sampleResume,
		"x",
		strings.Repeat("word ", 2100),
		"[image]\n" + strings.Repeat("a | b | c | d\n", 3),
	}
	for _, text := range inputs {
		doc := parsed(t, text)
		first := Score(text, doc)
		second := Score(text, doc)

		assert.Equal(t, first, second)
		assert.Equal(t, first.Breakdown.Total(), first.OverallScore)
		for _, v := range []int{first.Breakdown.Formatting, first.Breakdown.SectionHeaders, first.Breakdown.Parseability, first.Breakdown.KeywordOptimization} {
			assert.GreaterOrEqual(t, v, 0)
			assert.LessOrEqual(t, v, model.MaxSubScore)
		}
	}
}

func TestScoreLongResumeWarning(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("word ", 1600)
	got := Score(text, parsed(t, text))

	found := false
	for _, issue := range got.Issues {
		if issue.Category == "Length" {
			found = true
			assert.Equal(t, "Resume is approximately 1600 words, which may be too long.", issue.Message)
		}
	}
	assert.True(t, found)
}
