package keywords

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// shortTermLen is the longest term matched with strict word boundaries and exact casing.
const shortTermLen = 2

type term struct {
	canonical string
	lower     string
}

func (t term) short() bool {
	return utf8.RuneCountInString(t.lower) <= shortTermLen
}

type dictionary struct {
	terms      []term
	canonical  map[string]string
	verbs      map[string]struct{}
	softSkills []string
}

// dict is built once at package init and never mutated.
var dict = buildDictionary()

func buildDictionary() *dictionary {
	d := &dictionary{
		canonical: make(map[string]string),
		verbs:     make(map[string]struct{}, len(actionVerbs)),
	}
	for _, category := range categoryOrder {
		for _, skill := range techSkills[category] {
			lower := strings.ToLower(skill)
			if _, seen := d.canonical[lower]; seen {
				continue
			}
			d.canonical[lower] = skill
			d.terms = append(d.terms, term{canonical: skill, lower: lower})
		}
	}
	for _, verb := range actionVerbs {
		d.verbs[strings.ToLower(verb)] = struct{}{}
	}
	for _, skill := range softSkills {
		d.softSkills = append(d.softSkills, strings.ToLower(skill))
	}
	return d
}

// Canonical returns the catalog casing of a term and whether the catalog knows it.
func Canonical(s string) (string, bool) {
	c, ok := dict.canonical[strings.ToLower(strings.TrimSpace(s))]
	return c, ok
}

// Terms returns every catalog term of a category in canonical casing.
func Terms(category Category) []string {
	return append([]string(nil), techSkills[category]...)
}

// ExtractKeywords returns the sorted catalog terms present in text.
func ExtractKeywords(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	lower := strings.ToLower(text)
	found := make(map[string]struct{})
	for _, t := range dict.terms {
		if t.matches(text, lower) {
			found[t.canonical] = struct{}{}
		}
	}
	return sortedKeys(found)
}

// ExtractActionVerbs returns the sorted action verbs used as whole words in text.
func ExtractActionVerbs(text string) []string {
	found := make(map[string]struct{})
	for _, word := range strings.Fields(text) {
		cleaned := strings.Map(func(r rune) rune {
			r = unicode.ToLower(r)
			if (r >= 'a' && r <= 'z') || r == '-' {
				return r
			}
			return -1
		}, word)
		if _, ok := dict.verbs[cleaned]; ok {
			found[cleaned] = struct{}{}
		}
	}
	return sortedKeys(found)
}

// ExtractSoftSkills returns the sorted soft skills mentioned in text.
func ExtractSoftSkills(text string) []string {
	lower := strings.ToLower(text)
	found := make(map[string]struct{})
	for _, skill := range dict.softSkills {
		if containsFold(lower, skill) {
			found[skill] = struct{}{}
		}
	}
	return sortedKeys(found)
}

// ContainsTerm reports whether term occurs in text on word boundaries.
// Short terms are compared with their exact casing.
func ContainsTerm(text, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return false
	}
	t := term{canonical: needle, lower: strings.ToLower(needle)}
	if c, ok := dict.canonical[t.lower]; ok {
		t.canonical = c
	}
	return t.matches(text, strings.ToLower(text))
}

// Match partitions job keywords by presence in a resume.
type Match struct {
	Matched []string
	Missing []string
}

// MatchKeywords splits jobKeywords into those the resume text mentions and those it lacks.
// Order of the input is preserved in both lists.
func MatchKeywords(resumeText string, jobKeywords []string) Match {
	present := make(map[string]struct{})
	for _, kw := range ExtractKeywords(resumeText) {
		present[strings.ToLower(kw)] = struct{}{}
	}
	out := Match{Matched: []string{}, Missing: []string{}}
	for _, kw := range jobKeywords {
		if _, ok := present[strings.ToLower(kw)]; ok {
			out.Matched = append(out.Matched, kw)
		} else {
			out.Missing = append(out.Missing, kw)
		}
	}
	return out
}

// Density returns matched/total as a percentage rounded to one decimal.
func Density(matched, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(matched)/float64(total)*1000) / 10
}

func (t term) matches(text, lower string) bool {
	if t.short() {
		if containsWord(text, t.canonical) {
			return true
		}
		upper := strings.ToUpper(t.canonical)
		return upper != t.canonical && containsWord(text, upper)
	}
	return containsFold(lower, t.lower)
}

// containsFold searches every occurrence of needle in an already lowercased haystack
// and accepts the first one flanked by boundary characters.
func containsFold(lower, needle string) bool {
	return scan(lower, needle, isBoundaryRune)
}

// containsWord is an exact-case search where neighbours must not be word characters.
func containsWord(text, needle string) bool {
	return scan(text, needle, func(r rune) bool { return !isWordRune(r) })
}

func scan(haystack, needle string, boundary func(rune) bool) bool {
	if needle == "" {
		return false
	}
	for start := 0; start < len(haystack); {
		i := strings.Index(haystack[start:], needle)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(needle)
		if boundaryBefore(haystack, i, boundary) && boundaryAfter(haystack, end, boundary) {
			return true
		}
		start = i + 1
	}
	return false
}

func boundaryBefore(s string, i int, boundary func(rune) bool) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return boundary(r)
}

func boundaryAfter(s string, end int, boundary func(rune) bool) bool {
	if end >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[end:])
	return boundary(r)
}

func isBoundaryRune(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
