package parse

import "regexp"

const monthOrSeason = `(Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|June?|July?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?|Winter|Spring|Summer|Fall)\.?`

// patterns holds every compiled expression the extractor uses. It is built once.
type patterns struct {
	email        *regexp.Regexp
	phone        *regexp.Regexp
	phoneLine    *regexp.Regexp
	locations    []*regexp.Regexp
	dateRange    *regexp.Regexp
	bullet       *regexp.Regexp
	degree       *regexp.Regexp
	degreeTail   *regexp.Regexp
	fieldIn      *regexp.Regexp
	fieldOf      *regexp.Regexp
	year         *regexp.Regexp
	dash         *regexp.Regexp
	pairSplit    *regexp.Regexp
	titleAt      *regexp.Regexp
	skillSplit   *regexp.Regexp
	edgeSep      *regexp.Regexp
	spaces       *regexp.Regexp
	trailingPunc *regexp.Regexp
}

var re = patterns{
	email:     regexp.MustCompile(`[\w.+-]+@[\w-]+\.[\w.-]+`),
	phone:     regexp.MustCompile(`(?:\+?\d{1,3}[ .-]?)?\(?\d{2,4}\)?[ .-]?\d{3,4}[ .-]?\d{3,4}`),
	phoneLine: regexp.MustCompile(`^\+?\d[\d\s.()-]{7,}$`),
	locations: []*regexp.Regexp{
		regexp.MustCompile(`([A-Z][a-zA-Z ]+,[ \t]*[A-Z]{2})\b`),
		regexp.MustCompile(`([A-Z][a-zA-Z ]+,[ \t]*[A-Z][a-zA-Z]+[ \t]+\d{5})`),
		regexp.MustCompile(`([A-Z][a-zA-Z ]+,[ \t]*[A-Z][a-zA-Z ]+)`),
	},
	dateRange: regexp.MustCompile(`(?i)(?:` + monthOrSeason + `[\s,]*)?(\d{4})\s*(?:[-–—]+|to)\s*(?:` + monthOrSeason + `[\s,]*)?(\d{4}|present|current|now)\b`),
	bullet:    regexp.MustCompile(`^(?:[•·●■▪►▸]\s*|[-*–]\s+|\d+[.)]\s+)`),
	degree: regexp.MustCompile(`\b(?:(?i:bachelor(?:'?s)?|master(?:'?s)?|doctor(?:ate)?|associate(?:'?s)?|diploma|certificate)|` +
		`Ph\.?D\.?|M\.?B\.?A\.?|B\.?Sc\.?|M\.?Sc\.?|B\.?Eng\.?|M\.?Eng\.?|M\.?S\.?|B\.?S\.?|B\.?A\.?|A\.?S\.?|A\.?A\.?)`),
	degreeTail:   regexp.MustCompile(`^[^,|()\d–—]*`),
	fieldIn:      regexp.MustCompile(`(?i)\b(?:in|for)\s+`),
	fieldOf:      regexp.MustCompile(`(?i)\bof\s+`),
	year:         regexp.MustCompile(`\b(?:19|20)\d{2}\b`),
	dash:         regexp.MustCompile(`\s*[-–—]+\s*`),
	pairSplit:    regexp.MustCompile(`\s*[|–—]\s*|\s+-\s+`),
	titleAt:      regexp.MustCompile(`^(.+?)\s+at\s+(.+)$`),
	skillSplit:   regexp.MustCompile(`[,|;•·●■▪►▸–—]`),
	edgeSep:      regexp.MustCompile(`^[\s|,\-–—@()]+|[\s|,\-–—@()]+$`),
	spaces:       regexp.MustCompile(`\s{2,}`),
	trailingPunc: regexp.MustCompile(`[\s,|;:]+$`),
}
