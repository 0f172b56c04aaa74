package model

// Severity ranks an ATS issue.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// MaxSubScore caps each ATS sub-score.
const MaxSubScore = 25

// ATSScore is the outcome of scoring a document for machine readability.
type ATSScore struct {
	OverallScore int          `json:"overallScore"`
	Breakdown    ATSBreakdown `json:"breakdown"`
	Issues       []Issue      `json:"issues"`
	Passed       []string     `json:"passed"`
}

// ATSBreakdown holds the four capped sub-scores.
type ATSBreakdown struct {
	Formatting          int `json:"formatting"`
	SectionHeaders      int `json:"sectionHeaders"`
	Parseability        int `json:"parseability"`
	KeywordOptimization int `json:"keywordOptimization"`
}

// Total sums the sub-scores.
func (b ATSBreakdown) Total() int {
	return b.Formatting + b.SectionHeaders + b.Parseability + b.KeywordOptimization
}

// Issue is a single finding raised by the scorer.
type Issue struct {
	Severity Severity `json:"severity"`
	Category string   `json:"category"`
	Message  string   `json:"message"`
	Fix      string   `json:"fix"`
}

// KeywordAnalysis classifies the skills mentioned in a job posting.
type KeywordAnalysis struct {
	RequiredSkills []string `json:"required_skills"`
	NiceToHave     []string `json:"nice_to_have"`
	ActionVerbs    []string `json:"action_verbs"`
	TechnicalTerms []string `json:"technical_terms"`
	SoftSkills     []string `json:"soft_skills"`
}

// Section names a part of the resume a suggestion targets.
type Section string

const (
	SectionSkills     Section = "skills"
	SectionExperience Section = "experience"
	SectionSummary    Section = "summary"
	SectionTitle      Section = "title"
)

// OptimizationSuggestion is one concrete edit proposed for a target job.
type OptimizationSuggestion struct {
	Section   Section `json:"section"`
	Current   string  `json:"current"`
	Suggested string  `json:"suggested"`
	Reason    string  `json:"reason"`
}

// OptimizationReport describes how well a document fits a job posting.
type OptimizationReport struct {
	FitScore            int                      `json:"fitScore"`
	MatchedKeywords     []string                 `json:"matchedKeywords"`
	MissingKeywords     []string                 `json:"missingKeywords"`
	KeywordDensity      float64                  `json:"keywordDensity"`
	Suggestions         []OptimizationSuggestion `json:"suggestions"`
	ReorderedExperience []string                 `json:"reorderedExperience"`
}

// Recommendation is a prioritized fix derived from ATS issues.
type Recommendation struct {
	ID       string   `json:"id"`
	Severity Severity `json:"severity"`
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Fix      string   `json:"fix"`
	Order    int      `json:"order"`
}
