package rendering

import (
	"regexp"
	"strings"
)

// DefaultFileStem is used when the company name has no usable characters.
const DefaultFileStem = "client_content"

// FileSuffix ends every report file name.
const FileSuffix = "_lead_content.xlsx"

var unsafeFileChars = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)

// OutputFileName derives the report file name from a company name. Characters other
// than letters, digits, underscores, whitespace and hyphens are removed, the result is
// trimmed and each space becomes "_".
func OutputFileName(company string) string {
	stem := strings.TrimSpace(unsafeFileChars.ReplaceAllString(company, ""))
	stem = strings.ReplaceAll(stem, " ", "_")
	if stem == "" {
		stem = DefaultFileStem
	}
	return stem + FileSuffix
}
