package reports

import (
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// reportCodePattern matches the public code format shown to reporters.
var reportCodePattern = regexp.MustCompile(`^CR-[A-F0-9]{8}$`)

// NewReportCode returns a fresh report code of the form CR-XXXXXXXX,
// where the suffix is 8 uppercase hex characters taken from a random
// UUID. Collisions are possible and handled by the unique index plus
// a retry at insert time.
func NewReportCode() string {
	id := uuid.New()
	return "CR-" + strings.ToUpper(hex.EncodeToString(id[:4]))
}

// IsReportCode reports whether s looks like a report code. Used by
// search to decide between an exact code lookup and a text match.
func IsReportCode(s string) bool {
	return reportCodePattern.MatchString(strings.ToUpper(s))
}

// normalizeCode uppercases a user-supplied code for the exact lookup.
func normalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// regexQuote escapes user input before it is embedded in a $regex match.
func regexQuote(s string) string {
	return regexp.QuoteMeta(s)
}
