package parse

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"resume-ats/resume/model"
)

const maxDegreeFallback = 100

func parseEducation(lines []string) []model.EducationEntry {
	var out []model.EducationEntry
	for _, block := range splitBlocks(lines) {
		if entry, ok := parseEducationBlock(block, false); ok {
			out = append(out, entry)
		}
	}
	if len(out) == 0 {
		var whole []string
		for _, l := range lines {
			if l = strings.TrimSpace(l); l != "" {
				whole = append(whole, l)
			}
		}
		if entry, ok := parseEducationBlock(whole, true); ok {
			out = append(out, entry)
		}
	}
	if out == nil {
		return []model.EducationEntry{}
	}
	return out
}

// splitBlocks groups trimmed non-empty lines separated by blank lines.
func splitBlocks(lines []string) [][]string {
	var blocks [][]string
	var cur []string
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			if len(cur) > 0 {
				blocks = append(blocks, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, l)
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}

// parseEducationBlock reads one block. Without lenient set, a block needs a
// degree keyword or a year to count as an entry.
func parseEducationBlock(block []string, lenient bool) (model.EducationEntry, bool) {
	if len(block) == 0 {
		return model.EducationEntry{}, false
	}
	text := strings.Join(block, " ")

	phrase := findDegree(block)
	years := re.year.FindAllString(text, -1)
	if phrase == "" && len(years) == 0 && !lenient {
		return model.EducationEntry{}, false
	}

	entry := model.EducationEntry{Degree: phrase}
	if len(years) > 0 {
		entry.Year = years[len(years)-1]
	}
	if phrase != "" {
		entry.Field = fieldOf(phrase)
	}

	entry.Institution = institutionFrom(block[0], phrase)
	if entry.Institution == "" && len(block) > 1 {
		entry.Institution = institutionFrom(block[1], phrase)
	}
	if entry.Institution == "" && entry.Degree == "" {
		return model.EducationEntry{}, false
	}
	if entry.Institution == "" {
		entry.Institution = model.UnknownInstitution
	}
	if entry.Degree == "" {
		entry.Degree = truncateRunes(text, maxDegreeFallback)
	}
	return entry, true
}

// findDegree returns the first degree phrase in the block, running from the
// keyword to the next comma, pipe, paren, digit or dash.
func findDegree(block []string) string {
	for _, line := range block {
		for _, loc := range re.degree.FindAllStringIndex(line, -1) {
			if !followedByNonLetter(line, loc[1]) {
				continue
			}
			tail := re.degreeTail.FindString(line[loc[0]:])
			if i := strings.Index(tail, " - "); i >= 0 {
				tail = tail[:i]
			}
			phrase := strings.TrimSpace(re.trailingPunc.ReplaceAllString(tail, ""))
			if phrase != "" {
				return phrase
			}
		}
	}
	return ""
}

func followedByNonLetter(s string, at int) bool {
	if at >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[at:])
	return !unicode.IsLetter(r)
}

// fieldOf takes the text after the last "in"/"for" in a degree phrase, falling back to the last "of".
func fieldOf(phrase string) string {
	for _, pattern := range []*regexp.Regexp{re.fieldIn, re.fieldOf} {
		locs := pattern.FindAllStringIndex(phrase, -1)
		if len(locs) == 0 {
			continue
		}
		field := strings.TrimSpace(re.trailingPunc.ReplaceAllString(phrase[locs[len(locs)-1][1]:], ""))
		if field != "" {
			return field
		}
	}
	return ""
}

func institutionFrom(line, phrase string) string {
	if phrase != "" {
		line = strings.Replace(line, phrase, " ", 1)
	}
	line = re.year.ReplaceAllString(line, " ")
	line = re.dash.ReplaceAllString(line, " ")
	line = re.edgeSep.ReplaceAllString(strings.TrimSpace(line), "")
	line = re.trailingPunc.ReplaceAllString(line, "")
	return strings.TrimSpace(re.spaces.ReplaceAllString(line, " "))
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n]))
}
