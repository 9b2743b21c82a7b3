package types

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// MitreTag is a MITRE ATT&CK technique identifier, e.g. T1059 or T1059.001
type MitreTag string

var mitreTagPattern = regexp.MustCompile(`^T\d{4}(\.\d{3})?$`)

// ParseMitreTag normalizes a candidate to upper case and validates it against
// the technique ID pattern. Non-matching candidates are rejected, not coerced.
func ParseMitreTag(raw string) (MitreTag, error) {
	tag := MitreTag(strings.ToUpper(strings.TrimSpace(raw)))
	if err := tag.Validate(); err != nil {
		return "", err
	}
	return tag, nil
}

// Validate checks if the MitreTag matches T\d{4}(\.\d{3})?
func (m MitreTag) Validate() error {
	if m == "" {
		return goerr.New("MITRE tag cannot be empty")
	}
	if !mitreTagPattern.MatchString(string(m)) {
		return goerr.New("MITRE tag must match Txxxx or Txxxx.yyy", goerr.V("tag", m))
	}
	return nil
}

// String returns the string representation of MitreTag
func (m MitreTag) String() string {
	return string(m)
}
