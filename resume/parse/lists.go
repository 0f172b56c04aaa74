package parse

import (
	"strings"
	"unicode/utf8"
)

const maxSkillLen = 60

func parseSkills(lines []string) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, raw := range lines {
		line := stripBullet(strings.TrimSpace(raw))
		if i := strings.Index(line, ":"); i >= 0 {
			line = line[i+1:]
		}
		for _, frag := range re.skillSplit.Split(line, -1) {
			skill := strings.Trim(frag, "-* \t")
			if skill == "" || utf8.RuneCountInString(skill) > maxSkillLen {
				continue
			}
			key := strings.ToLower(skill)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, skill)
		}
	}
	return out
}

func parseCertifications(lines []string) []string {
	out := []string{}
	for _, raw := range lines {
		if line := stripBullet(strings.TrimSpace(raw)); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func parseSummary(lines []string) string {
	parts := make([]string, 0, len(lines))
	for _, raw := range lines {
		if line := strings.TrimSpace(raw); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
