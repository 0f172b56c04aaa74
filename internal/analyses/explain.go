package analyses

import (
	"fmt"

	"resume-ats/resume/model"
)

// ScoreExplanation explains how the ATS score is made up.
type ScoreExplanation struct {
	Components []ScoreComponent `json:"components"`
}

// ScoreComponent is one ATS sub-score with the findings that cost it points.
type ScoreComponent struct {
	Key         string   `json:"key"`
	Label       string   `json:"label"`
	Score       int      `json:"score"`
	Max         int      `json:"max"`
	Explanation string   `json:"explanation"`
	Dragged     []string `json:"dragged"`
}

var componentCategories = map[string][]string{
	"formatting":          {"Formatting", "Length"},
	"sectionHeaders":      {"Section Headers", "Education", "Summary", "Certifications"},
	"parseability":        {"Contact Info", "Experience"},
	"keywordOptimization": {"Skills", "Language", "Impact"},
}

func explainScore(score model.ATSScore) ScoreExplanation {
	components := []ScoreComponent{
		{Key: "formatting", Label: "Formatting", Score: score.Breakdown.Formatting},
		{Key: "sectionHeaders", Label: "Section Headers", Score: score.Breakdown.SectionHeaders},
		{Key: "parseability", Label: "Parseability", Score: score.Breakdown.Parseability},
		{Key: "keywordOptimization", Label: "Keyword Optimization", Score: score.Breakdown.KeywordOptimization},
	}

	for i := range components {
		c := &components[i]
		c.Max = model.MaxSubScore
		c.Dragged = []string{}
		categories := componentCategories[c.Key]
		for _, issue := range score.Issues {
			for _, category := range categories {
				if issue.Category == category {
					c.Dragged = append(c.Dragged, issue.Message)
					break
				}
			}
		}
		switch {
		case c.Score == c.Max:
			c.Explanation = fmt.Sprintf("%s earned the full %d points.", c.Label, c.Max)
		case len(c.Dragged) == 0:
			c.Explanation = fmt.Sprintf("%s earned %d of %d points.", c.Label, c.Score, c.Max)
		default:
			c.Explanation = fmt.Sprintf("%s earned %d of %d points; %d finding(s) held it back.", c.Label, c.Score, c.Max, len(c.Dragged))
		}
	}
	return ScoreExplanation{Components: components}
}
