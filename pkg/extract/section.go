package extract

import (
	"regexp"
	"strings"
)

// Sections holds the four logical sections of a model response. Missing
// labels leave the corresponding section empty; this is not an error.
type Sections struct {
	Title   string
	Summary string
	IOCs    string
	Mitre   string
}

// sectionLabel matches a line-anchored section label, case-insensitive,
// followed by ':' or '-' and the remainder of the line.
var sectionLabel = regexp.MustCompile(`(?i)^(title|summary|iocs|mitre)[:\-][ \t]*(.*)$`)

// ParseSections splits a model response into Title/Summary/IOCs/MITRE
// sections. Each section's content runs from just after its label to just
// before the next recognized label, or to the end of the text. The function
// is pure: the same input always yields the same sections.
func ParseSections(output string) Sections {
	var sections Sections
	var current *string
	var buf []string

	flush := func() {
		if current != nil {
			*current = strings.TrimSpace(strings.Join(buf, "\n"))
		}
		buf = buf[:0]
	}

	for _, line := range strings.Split(output, "\n") {
		if m := sectionLabel.FindStringSubmatch(line); m != nil {
			flush()
			switch strings.ToLower(m[1]) {
			case "title":
				current = &sections.Title
			case "summary":
				current = &sections.Summary
			case "iocs":
				current = &sections.IOCs
			case "mitre":
				current = &sections.Mitre
			}
			buf = append(buf, m[2])
			continue
		}
		if current != nil {
			buf = append(buf, line)
		}
	}
	flush()

	return sections
}

// CleanListItems splits a section body into list entries: one per non-empty
// line, stripped of leading dashes and whitespace, filtered by keep.
func CleanListItems(block string, keep func(string) bool) []string {
	if block == "" {
		return nil
	}

	var items []string
	for _, line := range strings.Split(block, "\n") {
		item := strings.TrimLeft(strings.TrimSpace(line), "- \t")
		if item == "" {
			continue
		}
		if keep != nil && !keep(item) {
			continue
		}
		items = append(items, item)
	}
	return items
}

// mitreLinePattern accepts a whole line that is exactly a technique ID
var mitreLinePattern = regexp.MustCompile(`(?i)^T\d{4}(\.\d{3})?$`)

// IsMitreLine reports whether a cleaned list entry is exactly a MITRE
// technique ID, case permitted to vary.
func IsMitreLine(item string) bool {
	return mitreLinePattern.MatchString(item)
}

var mitreScanPattern = regexp.MustCompile(`(?i)\bT\d{4}(\.\d{3})?\b`)

// ScanMitreTags scans raw text for technique IDs, deduplicates them, and
// returns them upper-cased in order of first appearance.
func ScanMitreTags(text string) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, match := range mitreScanPattern.FindAllString(text, -1) {
		tag := strings.ToUpper(match)
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
