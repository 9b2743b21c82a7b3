// Package extract implements the deterministic half of the extraction
// pipeline: regex-based indicator recovery and parsing of the model's
// semi-structured response into labeled sections.
package extract

import "regexp"

// minIOCLength filters out trivially short matches such as bare TLD fragments
const minIOCLength = 4

var iocPatterns = []*regexp.Regexp{
	// IPv4, optionally with a port suffix
	regexp.MustCompile(`\b(?:[0-9]{1,3}\.){3}[0-9]{1,3}(?::\d{2,5})?\b`),
	// MD5
	regexp.MustCompile(`(?i)\b[a-f0-9]{32}\b`),
	// SHA1
	regexp.MustCompile(`(?i)\b[a-f0-9]{40}\b`),
	// SHA256
	regexp.MustCompile(`(?i)\b[a-f0-9]{64}\b`),
	// URLs, defanged (hxxp) included
	regexp.MustCompile(`(?i)\b(?:hxxp|https?)://[^\s"']+`),
	// Domains
	regexp.MustCompile(`(?i)\b(?:[a-z0-9-]+\.)+[a-z]{2,}`),
}

// FallbackIOCs scans raw text with a fixed set of indicator recognizers and
// returns the deduplicated union of all matches, in order of first
// appearance. Matches of length 4 or less are dropped. It never fails; empty
// input yields an empty result.
func FallbackIOCs(text string) []string {
	if text == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var iocs []string
	for _, pattern := range iocPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			if len(match) <= minIOCLength {
				continue
			}
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			iocs = append(iocs, match)
		}
	}

	return iocs
}
