package parse

import (
	"strings"
	"unicode/utf8"

	"resume-ats/resume/model"
)

// headerLines bounds the block scanned for contact details.
const headerLines = 15

// titleWindow is how many lines after the name may hold the headline title.
const titleWindow = 4

const (
	minTitleLen = 4
	maxTitleLen = 79
)

type contact struct {
	name      string
	nameIndex int
	email     string
	phone     string
	location  string
}

func extractContact(lines []string) contact {
	c := contact{name: model.UnknownName, nameIndex: -1}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || re.email.MatchString(line) || re.phoneLine.MatchString(line) {
			continue
		}
		if _, heading := detectHeading(line); heading {
			continue
		}
		c.name = line
		c.nameIndex = i
		break
	}

	header := lines
	if len(header) > headerLines {
		header = header[:headerLines]
	}
	for _, raw := range header {
		line := strings.TrimSpace(raw)
		if c.email == "" {
			c.email = re.email.FindString(line)
		}
		if c.phone == "" {
			c.phone = strings.TrimSpace(re.phone.FindString(line))
		}
	}
	c.location = findLocation(header)
	return c
}

// findLocation tries each location shape in order across the header block.
func findLocation(header []string) string {
	for _, pattern := range re.locations {
		for _, raw := range header {
			line := strings.TrimSpace(raw)
			if line == "" || re.email.MatchString(line) {
				continue
			}
			if m := pattern.FindStringSubmatch(line); m != nil {
				return strings.TrimSpace(m[1])
			}
		}
	}
	return ""
}

func isLocationLine(line string) bool {
	for _, pattern := range re.locations {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// extractTitle picks the first plausible headline below the name, stopping at the first heading.
func extractTitle(lines []string, nameIndex, firstHeading int) string {
	if nameIndex < 0 {
		return ""
	}
	limit := nameIndex + 1 + titleWindow
	if firstHeading < limit {
		limit = firstHeading
	}
	if len(lines) < limit {
		limit = len(lines)
	}
	for i := nameIndex + 1; i < limit; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || re.email.MatchString(line) || re.phone.MatchString(line) || isLocationLine(line) {
			continue
		}
		if n := utf8.RuneCountInString(line); n >= minTitleLen && n <= maxTitleLen {
			return line
		}
	}
	return ""
}
