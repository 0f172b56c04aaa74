package parse

import (
	"strings"
	"unicode/utf8"

	"resume-ats/resume/model"
)

const (
	// headerLookahead is how far an idle line may look for the date that makes it an entry header.
	headerLookahead = 3
	// nextHeaderLookahead is how many non-empty lines an open entry looks ahead for the next header's date.
	nextHeaderLookahead = 2
	// maxHeaderLen bounds lines that may fill a missing title or company.
	maxHeaderLen = 79
	// minProseBulletLen is the shortest unmarked line promoted to an implicit bullet.
	minProseBulletLen = 21
)

type lineKind int

const (
	kindBlank lineKind = iota
	kindBullet
	kindDated
	kindPlain
)

type expState int

const (
	expIdle    expState = iota // no entry open
	expPending                 // header text seen, waiting for its date line
	expInEntry                 // dated entry open
)

type dateRange struct {
	start string
	end   string
}

func classifyLine(line string) lineKind {
	switch {
	case line == "":
		return kindBlank
	case re.bullet.MatchString(line):
		return kindBullet
	case re.dateRange.MatchString(line):
		return kindDated
	default:
		return kindPlain
	}
}

func parseDateRange(line string) (dateRange, string, bool) {
	loc := re.dateRange.FindStringSubmatchIndex(line)
	if loc == nil {
		return dateRange{}, line, false
	}
	group := func(n int) string {
		if loc[2*n] < 0 {
			return ""
		}
		return line[loc[2*n]:loc[2*n+1]]
	}
	dr := dateRange{
		start: buildDate(group(1), group(2)),
		end:   buildDate(group(3), group(4)),
	}
	rest := line[:loc[0]] + " " + line[loc[1]:]
	rest = re.edgeSep.ReplaceAllString(strings.TrimSpace(rest), "")
	rest = re.spaces.ReplaceAllString(rest, " ")
	return dr, strings.TrimSpace(rest), true
}

func buildDate(month, year string) string {
	year = normalizeOpenEnd(year)
	if month == "" {
		return year
	}
	return month + " " + year
}

func normalizeOpenEnd(year string) string {
	switch strings.ToLower(year) {
	case "present", "now":
		return "Present"
	case "current":
		return "Current"
	}
	return year
}

func stripBullet(line string) string {
	return strings.TrimSpace(re.bullet.ReplaceAllString(line, ""))
}

// splitCompanyTitle applies the pair rules to a header fragment: a two-part
// pipe or dash split (company first), then "<title> at <company>".
func splitCompanyTitle(fragment string) (company, title string, ok bool) {
	if fragment == "" {
		return "", "", false
	}
	parts := re.pairSplit.Split(fragment, -1)
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) >= 2 {
		return kept[0], kept[1], true
	}
	if m := re.titleAt.FindStringSubmatch(fragment); m != nil {
		return strings.TrimSpace(m[2]), strings.TrimSpace(m[1]), true
	}
	return "", "", false
}

// experienceParser accumulates work entries over the lines of the experience section.
type experienceParser struct {
	lines   []string
	state   expState
	current model.WorkEntry
	entries []model.WorkEntry
}

func parseExperience(lines []string) []model.WorkEntry {
	p := &experienceParser{lines: make([]string, 0, len(lines))}
	for _, l := range lines {
		p.lines = append(p.lines, strings.TrimSpace(l))
	}
	for i, line := range p.lines {
		switch classifyLine(line) {
		case kindBlank:
			continue
		case kindDated:
			p.onDated(line)
		case kindBullet:
			p.onBullet(line)
		case kindPlain:
			p.onPlain(i, line)
		}
	}
	p.flush()
	if p.entries == nil {
		return []model.WorkEntry{}
	}
	return p.entries
}

func (p *experienceParser) onDated(line string) {
	dates, fragment, _ := parseDateRange(line)

	var entry model.WorkEntry
	switch p.state {
	case expPending:
		if len(p.current.Bullets) > 0 {
			p.flush()
			entry = newEntry(fragment)
		} else {
			entry = adoptHeader(p.current, fragment)
		}
	case expInEntry:
		p.flush()
		entry = newEntry(fragment)
	default:
		entry = newEntry(fragment)
	}
	entry.StartDate = dates.start
	entry.EndDate = dates.end
	p.current = entry
	p.state = expInEntry
}

func (p *experienceParser) onBullet(line string) {
	switch p.state {
	case expIdle:
		return
	case expPending:
		p.state = expInEntry
	}
	if text := stripBullet(line); text != "" {
		p.current.Bullets = append(p.current.Bullets, text)
	}
}

func (p *experienceParser) onPlain(i int, line string) {
	switch p.state {
	case expIdle:
		if p.dateWithin(i, headerLookahead) {
			p.current = model.WorkEntry{Company: line, Bullets: []string{}}
			p.state = expPending
		}
	case expPending:
		if p.current.Title == "" && utf8.RuneCountInString(line) <= maxHeaderLen {
			p.current.Title = line
			return
		}
		p.appendProse(line)
	case expInEntry:
		if p.headerAhead(i) && utf8.RuneCountInString(line) <= maxHeaderLen {
			p.flush()
			p.current = model.WorkEntry{Company: line, Bullets: []string{}}
			p.state = expPending
			return
		}
		if utf8.RuneCountInString(line) <= maxHeaderLen {
			if p.current.Title == "" {
				p.current.Title = line
				return
			}
			if p.current.Company == "" {
				p.current.Company = line
				return
			}
		}
		p.appendProse(line)
	}
}

func (p *experienceParser) appendProse(line string) {
	if utf8.RuneCountInString(line) >= minProseBulletLen {
		p.current.Bullets = append(p.current.Bullets, line)
	}
}

func (p *experienceParser) flush() {
	if p.state != expIdle {
		p.entries = append(p.entries, p.current)
	}
	p.current = model.WorkEntry{}
	p.state = expIdle
}

// dateWithin reports whether a dated, non-bullet line occurs within the next n lines.
func (p *experienceParser) dateWithin(i, n int) bool {
	for j := i + 1; j <= i+n && j < len(p.lines); j++ {
		if classifyLine(p.lines[j]) == kindDated {
			return true
		}
	}
	return false
}

// headerAhead reports whether a dated line follows within the next few
// non-empty lines with only plain lines in between.
func (p *experienceParser) headerAhead(i int) bool {
	seen := 0
	for j := i + 1; j < len(p.lines) && seen < nextHeaderLookahead; j++ {
		switch classifyLine(p.lines[j]) {
		case kindBlank:
			continue
		case kindDated:
			return true
		case kindBullet:
			return false
		}
		seen++
	}
	return false
}

// newEntry builds an entry from the text around a date when no header is pending.
func newEntry(fragment string) model.WorkEntry {
	entry := model.WorkEntry{Bullets: []string{}}
	if company, title, ok := splitCompanyTitle(fragment); ok {
		entry.Company, entry.Title = company, title
		return entry
	}
	entry.Company = fragment
	return entry
}

// adoptHeader completes a pending header with the fragment found on its date line.
func adoptHeader(pending model.WorkEntry, fragment string) model.WorkEntry {
	entry := pending
	if entry.Bullets == nil {
		entry.Bullets = []string{}
	}
	if fragment != "" {
		if company, title, ok := splitCompanyTitle(fragment); ok {
			entry.Company, entry.Title = company, title
			return entry
		}
		if entry.Title == "" {
			entry.Title = fragment
		}
		return entry
	}
	if entry.Title == "" {
		if company, title, ok := splitCompanyTitle(entry.Company); ok {
			entry.Company, entry.Title = company, title
		}
	}
	return entry
}
