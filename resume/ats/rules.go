package ats

import "regexp"

type standardSection struct {
	name     string
	patterns []*regexp.Regexp
}

// standardSections are the headings every ATS expects, in reporting order.
var standardSections = []standardSection{
	{"Experience", compileAll(`(?i)experience`, `(?i)employment`, `(?i)work\s+history`)},
	{"Education", compileAll(`(?i)education`, `(?i)academic`)},
	{"Skills", compileAll(`(?i)skills`, `(?i)competencies`, `(?i)technologies`, `(?i)tech\s+stack`)},
	{"Summary", compileAll(`(?i)summary`, `(?i)profile`, `(?i)objective`, `(?i)about\s+me`)},
}

var imageIndicators = compileAll(
	`(?i)\[image\]`,
	`(?i)\[logo\]`,
	`(?i)\[photo\]`,
	`(?i)\[picture\]`,
	`(?i)data:image`,
)

// tableIndicators are checked per line; each pattern type is penalized once.
var tableIndicators = compileAll(
	`\t{3,}`,
	`\|.*\|.*\|`,
)

var multiColumnIndicators = compileAll(`\s{10,}\S+\s{10,}`)

var quantifiable = regexp.MustCompile(`(?i)\d+%|\$[\d,.]+[KkMmBb]?|\d+[xX]\s|\d+\+?\s*(?:users|customers|clients|employees|team|engineers|developers|people|members|projects|applications|servers|requests|transactions|records|endpoints)`)

const decorativeSymbols = "★☆⭐✦✧◆◇●○►▶▷▸◄◁▽△▲▼♦♠♣♥♡♢♤♧✔✓✗✘✕✖×÷"

var decorative = func() map[rune]struct{} {
	set := make(map[rune]struct{})
	for _, r := range decorativeSymbols {
		set[r] = struct{}{}
	}
	return set
}()

const (
	imagePenalty       = 5
	maxImagePenalty    = 10
	tablePenalty       = 5
	maxTablePenalty    = 10
	multiColumnPenalty = 5
	multiColumnLines   = 5
	shortWordCount     = 100
	shortPenalty       = 3
	longWordCount      = 2000
	longPenalty        = 2
	decorativeLimit    = 10
	decorativePenalty  = 3
	headerMaxLen       = 60
	verboseWordCount   = 1500
)

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

func anyMatch(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// IsQuantified reports whether a bullet states a measurable result such as a
// percentage, a money amount, a multiplier or a counted audience.
func IsQuantified(bullet string) bool {
	return quantifiable.MatchString(bullet)
}
